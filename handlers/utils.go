package handlers

import (
	"net/http"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/andrewpaige1/kanadeck-api/middleware"
	"github.com/andrewpaige1/kanadeck-api/models"
	"github.com/andrewpaige1/kanadeck-api/session"
)

type DBHandler struct {
	*gorm.DB
	Sessions *session.Manager
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// currentUser returns the user attached by middleware.SyncUserMiddleware,
// answering 401 when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

func (db *DBHandler) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, *models.User, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return nil, nil, false
	}
	return db.Sessions.Get(user.ID), user, true
}
