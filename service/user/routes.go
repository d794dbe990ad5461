package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"github.com/mrashed-dev/doctors-portal-server/cmd/utils"
	"gorm.io/gorm"
)

const accessTokenTTL = 2 * time.Hour

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/jwt", h.HandleGetToken).Methods("GET")
	router.HandleFunc("/users", h.CreateUser).Methods("POST")
	router.HandleFunc("/users", h.GetUsers).Methods("GET")
	router.HandleFunc("/users/admin/{email}", h.CheckAdmin).Methods("GET")
	router.HandleFunc("/users/admin/{id}", utils.AuthMiddleware(utils.RequireAdmin(h.db, h.MakeAdmin))).Methods("PUT")
}

// HandleGetToken issues an access token for a known user. Unknown emails get
// a 403 with an empty token, never a signed one.
func (h *Handler) HandleGetToken(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusForbidden, map[string]string{"accessToken": ""})
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving user")
		return
	}

	token, err := generateAccessToken(user.Email)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error generating access token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

func generateAccessToken(email string) (string, error) {
	claims := &utils.AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

// CreateUser records a user on first login. Posting an email that already
// exists acknowledges the existing record instead of duplicating it.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if user.Email == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required field: email")
		return
	}

	var existing models.User
	err := h.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"acknowledged": true,
			"insertedId":   existing.ID,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(w, http.StatusInternalServerError, "Error checking existing users")
		return
	}

	if err := h.db.Create(&user).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   user.ID,
	})
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users := []models.User{}
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving users")
		return
	}

	utils.WriteJSON(w, http.StatusOK, users)
}

// CheckAdmin reports whether the given email holds the admin role. An
// unknown email is simply not an admin.
func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := vars["email"]

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusOK, map[string]bool{"isAdmin": false})
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"isAdmin": user.IsAdmin()})
}

// MakeAdmin grants the admin role to a user by id, creating the record when
// it does not exist yet (upsert).
func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result := h.db.Model(&models.User{}).Where("id = ?", userID).Update("role", "admin")
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating user role")
		return
	}

	if result.RowsAffected == 0 {
		user := models.User{Role: "admin"}
		user.ID = uint(userID)
		if err := h.db.Create(&user).Error; err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Error updating user role")
			return
		}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged":  true,
		"modifiedCount": result.RowsAffected,
	})
}
