package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"github.com/mrashed-dev/doctors-portal-server/cmd/utils"
	"gorm.io/gorm"
)

type BookingHandler struct {
	db *gorm.DB
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

func (h *BookingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/bookings", utils.AuthMiddleware(h.GetBookings)).Methods("GET")
	router.HandleFunc("/bookings/{id}", h.GetBooking).Methods("GET")
	router.HandleFunc("/bookings", h.CreateBooking).Methods("POST")
}

// GetBookings lists the bookings of one user. The email queried must match
// the token identity; nobody reads another patient's bookings.
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	decodedEmail, err := utils.GetEmailFromContext(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	if email != decodedEmail {
		utils.WriteError(w, http.StatusForbidden, "forbidden access")
		return
	}

	bookings := []models.Booking{}
	if err := h.db.Where("email = ?", email).Order("id").Find(&bookings).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving bookings")
		return
	}

	utils.WriteJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Booking not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving booking")
		return
	}

	utils.WriteJSON(w, http.StatusOK, booking)
}

// CreateBooking inserts a booking unless the patient already holds one for
// the same date and treatment. The duplicate case is a 200 with
// acknowledged=false, not an HTTP error; clients inspect the flag.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if booking.AppointmentDate == "" || booking.Email == "" || booking.Treatment == "" || booking.Slot == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	var existing models.Booking
	err := h.db.Where("appointment_date = ? AND email = ? AND treatment = ?",
		booking.AppointmentDate, booking.Email, booking.Treatment).
		First(&existing).Error
	if err == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"acknowledged": false,
			"message":      fmt.Sprintf("you already have a booking on %s", booking.AppointmentDate),
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(w, http.StatusInternalServerError, "Error checking existing bookings")
		return
	}

	if err := h.db.Create(&booking).Error; err != nil {
		// The composite unique index backstops the check above when two
		// identical requests race past it.
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "duplicate key") {
			utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
				"acknowledged": false,
				"message":      fmt.Sprintf("you already have a booking on %s", booking.AppointmentDate),
			})
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error creating booking")
		return
	}

	go func() {
		if err := sendBookingEmail(booking); err != nil {
			log.Printf("Error sending booking confirmation email: %v", err)
		}
	}()

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   booking.ID,
	})
}
