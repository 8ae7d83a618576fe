package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/andrewpaige1/kanadeck-api/deck"
	"github.com/andrewpaige1/kanadeck-api/models"
)

// POST /api/deck/results
func (db *DBHandler) CreateReviewResult(w http.ResponseWriter, r *http.Request) {
	s, user, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	type ResultPayload struct {
		CorrectAttempts uint `json:"correctAttempts"`
		TotalAttempts   uint `json:"totalAttempts"`
		TimeSeconds     uint `json:"timeSeconds"`
	}
	var req ResultPayload
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CorrectAttempts > req.TotalAttempts {
		http.Error(w, "Correct attempts cannot exceed total attempts", http.StatusBadRequest)
		return
	}

	var tags []string
	err := s.View(r.Context(), func(d *deck.Deck) error {
		tags = d.ActiveTags()
		return nil
	})
	if err != nil {
		deckFailed(w, "CreateReviewResult", err)
		return
	}

	result := models.ReviewResult{
		UserID:          user.ID,
		Tags:            strings.Join(tags, ","),
		TimeSeconds:     int(req.TimeSeconds),
		CorrectAttempts: int(req.CorrectAttempts),
		TotalAttempts:   int(req.TotalAttempts),
	}
	if err := db.Create(&result).Error; err != nil {
		log.Printf("CreateReviewResult: Failed to create result for userID=%d: %v", user.ID, err)
		http.Error(w, "Failed to record review result", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// GET /api/deck/results
func (db *DBHandler) GetReviewResults(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var results []models.ReviewResult
	err := db.Where("user_id = ?", user.ID).Order("played_at desc").Limit(50).Find(&results).Error
	if err != nil {
		log.Printf("GetReviewResults: Failed to fetch results for userID=%d: %v", user.ID, err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if len(results) == 0 {
		results = []models.ReviewResult{}
	}

	writeJSON(w, http.StatusOK, results)
}
