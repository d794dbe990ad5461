package appointment

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"github.com/mrashed-dev/doctors-portal-server/cmd/utils"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	db *gorm.DB
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{db: db}
}

func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointmentOptions", h.GetAppointmentOptions).Methods("GET")
	router.HandleFunc("/doctorsspecialty", h.GetSpecialties).Methods("GET")
}

// GetAppointmentOptions returns every treatment option with the slots still
// bookable on the requested date. A slot is taken once a booking exists for
// the same date and treatment name.
func (h *AppointmentHandler) GetAppointmentOptions(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	options := []models.AppointmentOption{}
	if err := h.db.Order("id").Find(&options).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving appointment options")
		return
	}

	var alreadyBooked []models.Booking
	if err := h.db.Where("appointment_date = ?", date).Find(&alreadyBooked).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving bookings")
		return
	}

	bookedSlots := make(map[string]map[string]bool)
	for _, booking := range alreadyBooked {
		if bookedSlots[booking.Treatment] == nil {
			bookedSlots[booking.Treatment] = make(map[string]bool)
		}
		bookedSlots[booking.Treatment][booking.Slot] = true
	}

	for i := range options {
		options[i].Slots = remainingSlots(options[i].Slots, bookedSlots[options[i].Name])
	}

	utils.WriteJSON(w, http.StatusOK, options)
}

// remainingSlots filters taken slots out, preserving the catalog order.
func remainingSlots(slots []string, taken map[string]bool) []string {
	remaining := []string{}
	for _, slot := range slots {
		if !taken[slot] {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}

// GetSpecialties returns the treatment names only.
func (h *AppointmentHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties := []struct {
		Name string `json:"name"`
	}{}

	if err := h.db.Model(&models.AppointmentOption{}).Select("name").Order("id").Find(&specialties).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving specialties")
		return
	}

	utils.WriteJSON(w, http.StatusOK, specialties)
}
