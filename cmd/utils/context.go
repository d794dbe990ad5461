package utils

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"gorm.io/gorm"
)

type contextKey string

const UserEmailKey contextKey = "userEmail"

// AccessClaims is the payload embedded in every issued access token.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func GetEmailFromContext(r *http.Request) (string, error) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	if !ok || email == "" {
		return "", errors.New("user email not found in context")
	}
	return email, nil
}

// AuthMiddleware verifies the bearer token and places the decoded email
// in the request context. Missing credential is 401, a bad one is 403.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &AccessClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("SECRET_KEY")), nil
		})

		if err != nil || !token.Valid || claims.Email == "" {
			WriteError(w, http.StatusForbidden, "forbidden access")
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailKey, claims.Email)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin is composed after AuthMiddleware and rejects callers whose
// stored role is not admin.
func RequireAdmin(db *gorm.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := GetEmailFromContext(r)
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				WriteError(w, http.StatusForbidden, "forbidden access")
				return
			}
			WriteError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if !user.IsAdmin() {
			WriteError(w, http.StatusForbidden, "forbidden access")
			return
		}

		next(w, r)
	}
}
