// Package server exposes the simulator engine over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/mtgsim/mtgsim/internal/config"
	"github.com/mtgsim/mtgsim/internal/deck"
	"github.com/mtgsim/mtgsim/internal/game"
	"github.com/mtgsim/mtgsim/internal/repository"
)

// Server serves the session API and deck listing. The matches repository
// is optional; when nil, finished matches are not persisted.
type Server struct {
	logger  *zap.Logger
	engine  *game.Engine
	deckDir string
	matches *repository.MatchRepository
	httpSrv *http.Server

	mu    sync.Mutex
	decks map[string]sessionDecks // session ID -> deck names
}

type sessionDecks struct {
	player   string
	opponent string
}

// New creates a server. A nil logger is replaced with a no-op logger.
func New(cfg config.ServerConfig, engine *game.Engine, matches *repository.MatchRepository, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:  logger,
		engine:  engine,
		deckDir: cfg.DeckDir,
		matches: matches,
		decks:   make(map[string]sessionDecks),
	}
	s.httpSrv = &http.Server{
		Addr:    cfg.Address,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/decks", s.handleListDecks)
	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleEndSession)
	mux.HandleFunc("POST /api/sessions/{id}/actions", s.handleAction)
	mux.HandleFunc("GET /api/sessions/{id}/ws", s.handleSessionWS)
	return mux
}

// ListenAndServe runs the HTTP server until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("address", s.httpSrv.Addr))
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	names, err := deck.ListDir(s.deckDir)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("list decks: %w", err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"decks": names})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": s.engine.SessionIDs()})
}

type createSessionRequest struct {
	PlayerDeck   string `json:"playerDeck"`
	OpponentDeck string `json:"opponentDeck,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.PlayerDeck == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("playerDeck is required"))
		return
	}
	if req.OpponentDeck == "" {
		req.OpponentDeck = req.PlayerDeck
	}

	playerDeck, err := s.loadDeck(req.PlayerDeck)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	opponentDeck, err := s.loadDeck(req.OpponentDeck)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := s.engine.CreateSessionWithDecks(playerDeck.Cards, opponentDeck.Cards)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	s.decks[session.ID] = sessionDecks{player: req.PlayerDeck, opponent: req.OpponentDeck}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, session.View())
}

// loadDeck resolves a deck by file name inside the configured deck
// directory. The base-name restriction keeps requests from escaping it.
func (s *Server) loadDeck(name string) (*deck.Deck, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid deck name %q", name)
	}
	d, err := deck.Load(filepath.Join(s.deckDir, name))
	if err != nil {
		return nil, fmt.Errorf("load deck %q: %w", name, err)
	}
	return d, nil
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.engine.Session(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	s.writeJSON(w, http.StatusOK, session.View())
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	session, ok := s.engine.Session(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}

	s.saveMatchSummary(r.Context(), session)
	s.engine.EndSession(id)
	s.mu.Lock()
	delete(s.decks, id)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saveMatchSummary(ctx context.Context, session *game.Session) {
	if s.matches == nil {
		return
	}
	s.mu.Lock()
	names := s.decks[session.ID]
	s.mu.Unlock()

	playerLife := session.PlayerStats(game.SeatPlayer).Life
	opponentLife := session.PlayerStats(game.SeatOpponent).Life
	winner := "draw"
	switch {
	case playerLife > opponentLife:
		winner = string(game.SeatPlayer)
	case opponentLife > playerLife:
		winner = string(game.SeatOpponent)
	}

	summary := repository.MatchSummary{
		SessionID:    session.ID,
		PlayerDeck:   names.player,
		OpponentDeck: names.opponent,
		Turns:        session.Turn().TurnNumber,
		PlayerLife:   playerLife,
		OpponentLife: opponentLife,
		Winner:       winner,
	}
	if err := s.matches.Save(ctx, summary); err != nil {
		s.logger.Error("failed to save match summary",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
