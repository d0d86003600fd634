package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mtgsim/mtgsim/internal/game"
	"github.com/mtgsim/mtgsim/internal/game/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleSessionWS streams full session views over a WebSocket. A fresh
// view is sent after every engine event, coalesced so that a burst of
// events produces a single frame.
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	session, ok := s.engine.Session(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Events fire while the session holds its lock, so the callback only
	// signals; the view is built from this handler's goroutine.
	notify := make(chan struct{}, 1)
	handle := session.Events().Subscribe(func(events.Event) {
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer session.Events().Unsubscribe(handle)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.writeView(conn, session); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-notify:
			if err := s.writeView(conn, session); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) writeView(conn *websocket.Conn, session *game.Session) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(session.View()); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			s.logger.Debug("websocket write failed", zap.Error(err))
		}
		return err
	}
	return nil
}
