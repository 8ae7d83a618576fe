package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/andrewpaige1/kanadeck-api/deck"
)

// maxImportSize bounds the body of an imported deck.
const maxImportSize = 5 * 1024 * 1024

func cardKey(w http.ResponseWriter, r *http.Request) (int, bool) {
	key, err := strconv.Atoi(r.PathValue("key"))
	if err != nil {
		http.Error(w, "Card key must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return key, true
}

func deckFailed(w http.ResponseWriter, handler string, err error) {
	log.Printf("%s: %v", handler, err)
	http.Error(w, "Failed to access deck", http.StatusInternalServerError)
}

// GET /api/deck/cards
func (db *DBHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	var cards []deck.Card
	err := s.View(r.Context(), func(d *deck.Deck) error {
		cards = d.Cards()
		return nil
	})
	if err != nil {
		deckFailed(w, "GetCards", err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

// POST /api/deck/cards
func (db *DBHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	s, user, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	var req deck.CardFields
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Front) == "" || strings.TrimSpace(req.Back) == "" {
		http.Error(w, "Each card must have a front and a back", http.StatusBadRequest)
		return
	}

	var card deck.Card
	err := s.Update(r.Context(), func(d *deck.Deck) error {
		card = d.AppendCard(deck.NewCard(req.Front, req.Back, req.Prompt, req.Tags...))
		d.RebuildActive()
		return nil
	})
	if err != nil {
		deckFailed(w, "CreateCard", err)
		return
	}

	log.Printf("CreateCard: Created card key=%d for userID=%d", card.Key, user.ID)
	writeJSON(w, http.StatusCreated, card)
}

// GET /api/deck/cards/{key}
func (db *DBHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}
	key, ok := cardKey(w, r)
	if !ok {
		return
	}

	var (
		card  deck.Card
		found bool
	)
	err := s.View(r.Context(), func(d *deck.Deck) error {
		card, found = d.Card(key)
		return nil
	})
	if err != nil {
		deckFailed(w, "GetCard", err)
		return
	}
	if !found {
		http.Error(w, fmt.Sprintf("Card %d not found", key), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// PUT /api/deck/cards/{key}
func (db *DBHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}
	key, ok := cardKey(w, r)
	if !ok {
		return
	}

	var req deck.CardFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Front) == "" || strings.TrimSpace(req.Back) == "" {
		http.Error(w, "Each card must have a front and a back", http.StatusBadRequest)
		return
	}

	var card deck.Card
	err := s.Update(r.Context(), func(d *deck.Deck) error {
		var err error
		card, err = d.EditCard(key, req)
		if err != nil {
			return err
		}
		d.RebuildActive()
		return nil
	})
	if errors.Is(err, deck.ErrCardNotFound) {
		http.Error(w, fmt.Sprintf("Card %d not found", key), http.StatusNotFound)
		return
	}
	if err != nil {
		deckFailed(w, "UpdateCard", err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// DELETE /api/deck/cards/{key}
func (db *DBHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}
	key, ok := cardKey(w, r)
	if !ok {
		return
	}

	err := s.Update(r.Context(), func(d *deck.Deck) error {
		d.DeleteCard(key)
		d.RebuildActive()
		return nil
	})
	if err != nil {
		deckFailed(w, "DeleteCard", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/deck/cards/delete
func (db *DBHandler) DeleteCards(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Keys []int `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := s.Update(r.Context(), func(d *deck.Deck) error {
		d.DeleteCards(req.Keys...)
		d.RebuildActive()
		return nil
	})
	if err != nil {
		deckFailed(w, "DeleteCards", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type tagsResponse struct {
	Tags        []string `json:"tags"`
	ActiveTags  []string `json:"activeTags"`
	ActiveCount int      `json:"activeCount"`
}

func summarizeTags(d *deck.Deck) tagsResponse {
	return tagsResponse{
		Tags:        d.Tags(),
		ActiveTags:  d.ActiveTags(),
		ActiveCount: len(d.Active()),
	}
}

// GET /api/deck/tags
func (db *DBHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	var resp tagsResponse
	err := s.View(r.Context(), func(d *deck.Deck) error {
		resp = summarizeTags(d)
		return nil
	})
	if err != nil {
		deckFailed(w, "GetTags", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// PUT /api/deck/active
func (db *DBHandler) SetActiveTags(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var resp tagsResponse
	err := s.Update(r.Context(), func(d *deck.Deck) error {
		d.RebuildActive(req.Tags...)
		resp = summarizeTags(d)
		return nil
	})
	if err != nil {
		deckFailed(w, "SetActiveTags", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type drawResponse struct {
	Card    deck.Card `json:"card"`
	State   string    `json:"state"`
	Pending int       `json:"pending"`
}

// GET /api/deck/next
func (db *DBHandler) DrawNext(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	var resp drawResponse
	err := s.View(r.Context(), func(d *deck.Deck) error {
		resp.Card = d.DrawNext()
		resp.State = d.State().String()
		resp.Pending = d.Pending()
		return nil
	})
	if err != nil {
		deckFailed(w, "DrawNext", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /api/deck/check
func (db *DBHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Key   int    `json:"key"`
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var (
		card  deck.Card
		found bool
	)
	err := s.View(r.Context(), func(d *deck.Deck) error {
		card, found = d.Card(req.Key)
		return nil
	})
	if err != nil {
		deckFailed(w, "CheckAnswer", err)
		return
	}
	if !found {
		http.Error(w, fmt.Sprintf("Card %d not found", req.Key), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"correct": card.HasAnswer(req.Input),
		"onTrack": card.StartsWith(req.Input),
	})
}

// GET /api/deck/export
func (db *DBHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	s, _, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	data, err := s.Export(r.Context())
	if err != nil {
		deckFailed(w, "ExportDeck", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// POST /api/deck/import
func (db *DBHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	s, user, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	err = s.Import(r.Context(), data)
	var derr *deck.DeserializationError
	if errors.As(err, &derr) {
		log.Printf("ImportDeck: Rejected deck for userID=%d: %v", user.ID, err)
		http.Error(w, fmt.Sprintf("Invalid deck: %v", derr.Err), http.StatusBadRequest)
		return
	}
	if err != nil {
		deckFailed(w, "ImportDeck", err)
		return
	}

	db.GetTags(w, r)
}

// POST /api/deck/reset
func (db *DBHandler) ResetDeck(w http.ResponseWriter, r *http.Request) {
	s, user, ok := db.sessionFor(w, r)
	if !ok {
		return
	}

	if err := s.Reset(r.Context()); err != nil {
		deckFailed(w, "ResetDeck", err)
		return
	}

	log.Printf("ResetDeck: Restored default deck for userID=%d", user.ID)
	db.GetTags(w, r)
}
