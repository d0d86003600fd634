package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine manages the live simulator sessions.
type Engine struct {
	logger *zap.Logger
	mu     sync.RWMutex

	sessions map[string]*Session
	images   ImageResolver
	defaults SessionOptions
}

// NewEngine creates an engine. A nil logger is replaced with a no-op
// logger.
func NewEngine(logger *zap.Logger, defaults SessionOptions) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	images := defaults.Images
	if images == nil {
		images = NopImageResolver{}
	}
	return &Engine{
		logger:   logger,
		sessions: make(map[string]*Session),
		images:   images,
		defaults: defaults,
	}
}

// CreateSession creates a new session with both seats playing the same
// deck, loads it, and deals both opening hands. A load failure leaves no
// session behind.
func (e *Engine) CreateSession(entries []DeckEntry) (*Session, error) {
	return e.CreateSessionWithDecks(entries, entries)
}

// CreateSessionWithDecks creates a new session with a separate deck per
// seat.
func (e *Engine) CreateSessionWithDecks(player, opponent []DeckEntry) (*Session, error) {
	id := uuid.NewString()
	opts := e.defaults
	opts.Images = e.images
	session := NewSession(id, e.logger, opts)

	decks := map[Seat][]DeckEntry{
		SeatPlayer:   player,
		SeatOpponent: opponent,
	}
	for _, seat := range []Seat{SeatPlayer, SeatOpponent} {
		if err := session.LoadDeck(seat, decks[seat]); err != nil {
			return nil, fmt.Errorf("load deck for %s: %w", seat, err)
		}
	}
	session.DealOpeningHand(SeatPlayer)
	session.DealOpeningHand(SeatOpponent)

	e.mu.Lock()
	e.sessions[id] = session
	e.mu.Unlock()

	e.logger.Info("session created",
		zap.String("session_id", id),
		zap.Int("deck_size", session.players[SeatPlayer].DeckSize),
	)
	return session, nil
}

// Session looks up a live session by ID.
func (e *Engine) Session(id string) (*Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	session, ok := e.sessions[id]
	return session, ok
}

// EndSession removes a session from the engine.
func (e *Engine) EndSession(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; !ok {
		return false
	}
	delete(e.sessions, id)
	e.logger.Info("session ended", zap.String("session_id", id))
	return true
}

// SessionIDs returns the IDs of all live sessions.
func (e *Engine) SessionIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.sessions))
	for id := range e.sessions {
		out = append(out, id)
	}
	return out
}
