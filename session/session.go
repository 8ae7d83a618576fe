// Package session keeps one deck per user and persists it through a
// storage.Store after every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/andrewpaige1/kanadeck-api/deck"
	"github.com/andrewpaige1/kanadeck-api/storage"
)

// DeckKey is the storage key holding the serialized deck.
const DeckKey = "deck"

// StoreFunc opens the storage backing a user's session.
type StoreFunc func(userID uint) storage.Store

// Manager hands out one Session per user.
type Manager struct {
	mu       sync.Mutex
	sessions map[uint]*Session
	open     StoreFunc
	opts     []deck.Option
}

// NewManager builds a manager whose sessions open storage with open. opts are
// applied to every deck the sessions build, so a random source passed with
// deck.WithRand must not be shared by sessions used from different goroutines.
func NewManager(open StoreFunc, opts ...deck.Option) *Manager {
	return &Manager{
		sessions: make(map[uint]*Session),
		open:     open,
		opts:     opts,
	}
}

// Get returns the session for userID, creating it on first use.
func (m *Manager) Get(userID uint) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{store: m.open(userID), opts: m.opts}
		m.sessions[userID] = s
	}
	return s
}

// Drop forgets the in-memory session. The stored deck is kept.
func (m *Manager) Drop(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Session owns a single deck. All access goes through its mutex.
type Session struct {
	mu    sync.Mutex
	store storage.Store
	opts  []deck.Option
	deck  *deck.Deck
}

// View runs fn against the deck without saving it afterwards. Drawing cards
// only changes derived state, so it goes through View.
func (s *Session) View(ctx context.Context, fn func(*deck.Deck) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(d)
}

// Update runs fn against the deck and saves it if fn succeeds. When fn or the
// save fails, the cached deck is dropped and the next call reloads the stored one.
func (s *Session) Update(ctx context.Context, fn func(*deck.Deck) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		s.deck = nil
		return err
	}
	if err := s.save(ctx, d); err != nil {
		s.deck = nil
		return err
	}
	return nil
}

// Replace swaps the session deck for d, rebuilding its active cards, and saves it.
func (s *Session) Replace(ctx context.Context, d *deck.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.RebuildActive()
	if err := s.save(ctx, d); err != nil {
		return err
	}
	s.deck = d
	return nil
}

// Import replaces the session deck with one decoded from data. Decoding
// failures are returned as *deck.DeserializationError and leave the session
// untouched.
func (s *Session) Import(ctx context.Context, data []byte) error {
	d, err := deck.FromJSON(data, s.opts...)
	if err != nil {
		return err
	}
	return s.Replace(ctx, d)
}

// Export returns the serialized session deck.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.View(ctx, func(d *deck.Deck) error {
		var err error
		data, err = d.MarshalJSON()
		return err
	})
	return data, err
}

// Reset replaces the session deck with the built-in kana deck. The stored deck
// is cleared first, so the session comes back as the default deck even when
// saving the new one fails.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx, DeckKey); err != nil {
		return fmt.Errorf("clear deck: %w", err)
	}
	s.deck = nil

	d := deck.Default(s.opts...)
	if err := s.save(ctx, d); err != nil {
		return err
	}
	s.deck = d
	return nil
}

func (s *Session) load(ctx context.Context) (*deck.Deck, error) {
	if s.deck != nil {
		return s.deck, nil
	}

	data, ok, err := s.store.Get(ctx, DeckKey)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	if !ok {
		s.deck = deck.Default(s.opts...)
		return s.deck, nil
	}

	d, err := deck.FromJSON([]byte(data), s.opts...)
	var derr *deck.DeserializationError
	if errors.As(err, &derr) {
		log.Printf("Session: stored deck is unreadable, using default deck: %v", err)
		d = deck.Default(s.opts...)
	} else if err != nil {
		return nil, err
	}
	d.RebuildActive()
	s.deck = d
	return d, nil
}

func (s *Session) save(ctx context.Context, d *deck.Deck) error {
	data, err := d.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := s.store.Set(ctx, DeckKey, string(data)); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}
