package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/andrewpaige1/kanadeck-api/deck"
	"github.com/andrewpaige1/kanadeck-api/models"
)

type savedDeckResponse struct {
	models.SavedDeck
	IsOwner bool            `json:"IsOwner"`
	Deck    json.RawMessage `json:"Deck,omitempty"`
}

// findSavedDeck loads the saved deck named by the deckID path value.
func (db *DBHandler) findSavedDeck(w http.ResponseWriter, r *http.Request, handler string) (*models.SavedDeck, bool) {
	deckID := r.PathValue("deckID")
	var saved models.SavedDeck
	err := db.Where("public_id = ?", deckID).First(&saved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("%s: Deck not found for public_id=%s", handler, deckID)
		http.Error(w, fmt.Sprintf("Deck with ID %s not found", deckID), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		log.Printf("%s: Failed to load deck public_id=%s: %v", handler, deckID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return &saved, true
}

// GET /api/decks
func (db *DBHandler) GetSavedDecks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var decks []models.SavedDeck
	if err := db.Where("user_id = ?", user.ID).Order("updated_at desc").Find(&decks).Error; err != nil {
		log.Printf("GetSavedDecks: Failed to fetch decks for userID=%d: %v", user.ID, err)
		http.Error(w, "Failed to fetch decks", http.StatusInternalServerError)
		return
	}

	// If no decks found, return an empty array instead of null
	if len(decks) == 0 {
		decks = []models.SavedDeck{}
	}

	writeJSON(w, http.StatusOK, decks)
}

// POST /api/decks
func (db *DBHandler) CreateSavedDeck(w http.ResponseWriter, r *http.Request) {
	s, user, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	type CreateDeckRequest struct {
		Name     string `json:"name"`
		IsPublic bool   `json:"isPublic"`
	}
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateSavedDeck: Invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Deck name is required", http.StatusBadRequest)
		return
	}

	var (
		data  []byte
		count int
	)
	err := s.View(r.Context(), func(d *deck.Deck) error {
		var err error
		data, err = d.MarshalJSON()
		count = d.Len()
		return err
	})
	if err != nil {
		deckFailed(w, "CreateSavedDeck", err)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateSavedDeck: Failed to generate publicID: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	saved := models.SavedDeck{
		Name:      req.Name,
		PublicID:  publicID,
		UserID:    user.ID,
		Data:      string(data),
		CardCount: count,
		IsPublic:  req.IsPublic,
	}
	if err := db.Create(&saved).Error; err != nil {
		log.Printf("CreateSavedDeck: Failed to create deck: %v", err)
		http.Error(w, "Failed to save deck", http.StatusInternalServerError)
		return
	}

	log.Printf("CreateSavedDeck: Successfully saved deck publicID=%s for userID=%d", publicID, user.ID)
	writeJSON(w, http.StatusCreated, savedDeckResponse{SavedDeck: saved, IsOwner: true})
}

// GET /api/decks/{deckID}
func (db *DBHandler) GetSavedDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	saved, ok := db.findSavedDeck(w, r, "GetSavedDeck")
	if !ok {
		return
	}

	isOwner := saved.UserID == user.ID
	if !saved.IsPublic && !isOwner {
		log.Printf("GetSavedDeck: Forbidden access for deck %s by userID=%d", saved.PublicID, user.ID)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, savedDeckResponse{
		SavedDeck: *saved,
		IsOwner:   isOwner,
		Deck:      json.RawMessage(saved.Data),
	})
}

// PUT /api/decks/{deckID}
func (db *DBHandler) UpdateSavedDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	saved, ok := db.findSavedDeck(w, r, "UpdateSavedDeck")
	if !ok {
		return
	}
	if saved.UserID != user.ID {
		log.Printf("UpdateSavedDeck: Unauthorized update attempt by userID=%d for deck %s", user.ID, saved.PublicID)
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	type UpdateDeckRequest struct {
		Name     *string `json:"name,omitempty"`
		IsPublic *bool   `json:"isPublic,omitempty"`
	}
	var req UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// Update fields if provided
	updated := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" && saved.Name != *req.Name {
		saved.Name = *req.Name
		updated = true
	}
	if req.IsPublic != nil && saved.IsPublic != *req.IsPublic {
		saved.IsPublic = *req.IsPublic
		updated = true
	}

	if updated {
		if err := db.Save(saved).Error; err != nil {
			log.Printf("UpdateSavedDeck: Failed to update deck %s: %v", saved.PublicID, err)
			http.Error(w, "Failed to update deck", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, savedDeckResponse{SavedDeck: *saved, IsOwner: true})
}

// POST /api/decks/{deckID}/load
func (db *DBHandler) LoadSavedDeck(w http.ResponseWriter, r *http.Request) {
	s, user, ok := db.sessionFor(w, r)
	if !ok {
		return
	}
	saved, ok := db.findSavedDeck(w, r, "LoadSavedDeck")
	if !ok {
		return
	}
	if !saved.IsPublic && saved.UserID != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	err := s.Import(r.Context(), []byte(saved.Data))
	var derr *deck.DeserializationError
	if errors.As(err, &derr) {
		log.Printf("LoadSavedDeck: Stored deck %s is corrupt: %v", saved.PublicID, err)
		http.Error(w, "Saved deck is unreadable", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		deckFailed(w, "LoadSavedDeck", err)
		return
	}

	log.Printf("LoadSavedDeck: Loaded deck %s into session of userID=%d", saved.PublicID, user.ID)
	db.GetTags(w, r)
}

// DELETE /api/decks/{deckID}
func (db *DBHandler) DeleteSavedDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	saved, ok := db.findSavedDeck(w, r, "DeleteSavedDeck")
	if !ok {
		return
	}
	if saved.UserID != user.ID {
		log.Printf("DeleteSavedDeck: Unauthorized delete attempt by userID=%d for deck %s", user.ID, saved.PublicID)
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	if err := db.Delete(saved).Error; err != nil {
		log.Printf("DeleteSavedDeck: Failed to delete deck %s: %v", saved.PublicID, err)
		http.Error(w, "Failed to delete deck", http.StatusInternalServerError)
		return
	}

	log.Printf("DeleteSavedDeck: Successfully deleted deck %s", saved.PublicID)
	w.WriteHeader(http.StatusNoContent)
}
