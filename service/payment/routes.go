package payment

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"github.com/mrashed-dev/doctors-portal-server/cmd/utils"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	db     *gorm.DB
	client *Client
}

func NewPaymentHandler(db *gorm.DB, client *Client) *PaymentHandler {
	return &PaymentHandler{db: db, client: client}
}

func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/create-payment-intent", h.CreatePaymentIntent).Methods("POST")
	router.HandleFunc("/payments", h.CreatePayment).Methods("POST")
}

// CreatePaymentIntent relays a price to the provider and hands the client
// secret back for the client-side card flow.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var intentRequest struct {
		Price float64 `json:"price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&intentRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if intentRequest.Price <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Price must be greater than zero")
		return
	}

	amount := int64(intentRequest.Price * 100)

	intent, err := h.client.CreateIntent(amount)
	if err != nil {
		log.Printf("Error creating payment intent: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error creating payment intent")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}

// CreatePayment records a confirmed payment and marks the referenced booking
// paid. A booking id that matches nothing fails with 404 instead of
// acknowledging a payment against a missing booking.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payment.BookingID == 0 || payment.TransactionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	tx := h.db.Begin()

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error recording payment")
		return
	}

	result := tx.Model(&models.Booking{}).Where("id = ?", payment.BookingID).
		Updates(map[string]interface{}{
			"paid":           true,
			"transaction_id": payment.TransactionID,
		})
	if result.Error != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error updating booking")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.WriteError(w, http.StatusNotFound, "Booking not found")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error completing payment")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   payment.ID,
	})
}
