package handlers

import (
	"net/http"

	"github.com/andrewpaige1/kanadeck-api/middleware"
)

// Routes registers every endpoint on a new mux. Deck routes require a user,
// which SyncUserMiddleware resolves from the validated token.
func (db *DBHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.SyncUserMiddleware(db.DB, h)
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Cards
	mux.HandleFunc("GET /api/deck/cards", user(db.GetCards))
	mux.HandleFunc("POST /api/deck/cards", user(db.CreateCard))
	mux.HandleFunc("POST /api/deck/cards/delete", user(db.DeleteCards))
	mux.HandleFunc("GET /api/deck/cards/{key}", user(db.GetCard))
	mux.HandleFunc("PUT /api/deck/cards/{key}", user(db.UpdateCard))
	mux.HandleFunc("DELETE /api/deck/cards/{key}", user(db.DeleteCard))

	// Review
	mux.HandleFunc("GET /api/deck/tags", user(db.GetTags))
	mux.HandleFunc("PUT /api/deck/active", user(db.SetActiveTags))
	mux.HandleFunc("GET /api/deck/next", user(db.DrawNext))
	mux.HandleFunc("POST /api/deck/check", user(db.CheckAnswer))
	mux.HandleFunc("GET /api/deck/results", user(db.GetReviewResults))
	mux.HandleFunc("POST /api/deck/results", user(db.CreateReviewResult))

	// Whole deck
	mux.HandleFunc("GET /api/deck/export", user(db.ExportDeck))
	mux.HandleFunc("POST /api/deck/import", user(db.ImportDeck))
	mux.HandleFunc("POST /api/deck/reset", user(db.ResetDeck))

	// Saved decks
	mux.HandleFunc("GET /api/decks", user(db.GetSavedDecks))
	mux.HandleFunc("POST /api/decks", user(db.CreateSavedDeck))
	mux.HandleFunc("GET /api/decks/{deckID}", user(db.GetSavedDeck))
	mux.HandleFunc("PUT /api/decks/{deckID}", user(db.UpdateSavedDeck))
	mux.HandleFunc("POST /api/decks/{deckID}/load", user(db.LoadSavedDeck))
	mux.HandleFunc("DELETE /api/decks/{deckID}", user(db.DeleteSavedDeck))

	return mux
}
