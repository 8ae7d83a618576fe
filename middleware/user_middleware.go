package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/andrewpaige1/kanadeck-api/models"
	"github.com/andrewpaige1/kanadeck-api/utils"
)

type contextKey string

const userKey contextKey = "user"

// WithUser attaches user to ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user attached by SyncUserMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// SyncUserMiddleware ensures the token subject exists in the DB and attaches it to context
func SyncUserMiddleware(db *gorm.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth0ID, ok := utils.GetAuth0ID(r)
		if !ok {
			http.Error(w, "No token subject found", http.StatusUnauthorized)
			return
		}

		nickname := ""
		if customClaims, ok := utils.GetCustomClaims[*CustomClaims](r); ok && customClaims != nil {
			nickname = customClaims.Nickname
		}

		var user models.User
		result := db.Where("auth0_id = ?", auth0ID).First(&user)

		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			// User does not exist, create a new one
			user = models.User{
				Auth0ID:  auth0ID,
				Nickname: nickname,
			}
			if err := db.Create(&user).Error; err != nil {
				http.Error(w, "Failed to create user", http.StatusInternalServerError)
				log.Println("Database creation error:", err)
				return
			}
			log.Printf("Created new user: %s\n", user.Nickname)
		case result.Error != nil:
			http.Error(w, "Failed to load user", http.StatusInternalServerError)
			log.Println("Database lookup error:", result.Error)
			return
		case nickname != "" && user.Nickname != nickname:
			// User exists, update nickname only if non-empty and changed
			user.Nickname = nickname
			if err := db.Save(&user).Error; err != nil {
				http.Error(w, "Failed to update user", http.StatusInternalServerError)
				log.Println("Database update error:", err)
				return
			}
			log.Printf("Updated user nickname: %s\n", user.Nickname)
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
	}
}
