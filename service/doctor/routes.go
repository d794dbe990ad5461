package doctor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"github.com/mrashed-dev/doctors-portal-server/cmd/utils"
	"gorm.io/gorm"
)

type DoctorHandler struct {
	db *gorm.DB
}

func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{db: db}
}

// RegisterRoutes gates every doctor-management route behind a valid token
// and the admin role.
func (h *DoctorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/doctors", utils.AuthMiddleware(utils.RequireAdmin(h.db, h.CreateDoctor))).Methods("POST")
	router.HandleFunc("/doctors", utils.AuthMiddleware(utils.RequireAdmin(h.db, h.GetDoctors))).Methods("GET")
	router.HandleFunc("/doctors/{id}", utils.AuthMiddleware(utils.RequireAdmin(h.db, h.DeleteDoctor))).Methods("DELETE")
}

// CreateDoctor adds a doctor. A doctor email already on file is acknowledged
// with acknowledged=false rather than an HTTP error, same as bookings.
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if doctor.Name == "" || doctor.Email == "" || doctor.Specialty == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	var existing models.Doctor
	err := h.db.Where("email = ?", doctor.Email).First(&existing).Error
	if err == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"acknowledged": false,
			"message":      fmt.Sprintf("a doctor with email %s already exists", doctor.Email),
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(w, http.StatusInternalServerError, "Error checking existing doctors")
		return
	}

	if err := h.db.Create(&doctor).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating doctor")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   doctor.ID,
	})
}

func (h *DoctorHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := []models.Doctor{}
	if err := h.db.Order("id").Find(&doctors).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving doctors")
		return
	}

	utils.WriteJSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	result := h.db.Delete(&models.Doctor{}, doctorID)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting doctor")
		return
	}

	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"deletedCount": result.RowsAffected,
	})
}
