package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mtgsim/mtgsim/internal/game"
	"github.com/mtgsim/mtgsim/internal/game/counters"
	"github.com/mtgsim/mtgsim/internal/game/mana"
)

// actionRequest is the generic action envelope. Which fields matter
// depends on the action type.
type actionRequest struct {
	Type       string `json:"type"`
	Seat       string `json:"seat,omitempty"`
	CardID     string `json:"cardId,omitempty"`
	AttackerID string `json:"attackerId,omitempty"`
	Amount     int    `json:"amount,omitempty"`
	Color      string `json:"color,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Name       string `json:"name,omitempty"`
	TypeLine   string `json:"typeLine,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Text       string `json:"text,omitempty"`
	Tapped     bool   `json:"tapped,omitempty"`
}

type actionResponse struct {
	Result game.ActionResult `json:"result"`
	View   game.SessionView  `json:"view"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	session, ok := s.engine.Session(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	result, err := dispatch(session, req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, actionResponse{Result: result, View: session.View()})
}

// dispatch routes an action request to the session operation it names.
// A returned error means the request itself was malformed; a rejected
// ActionResult means the engine declined a well-formed request.
func dispatch(session *game.Session, req actionRequest) (game.ActionResult, error) {
	okResult := game.ActionResult{OK: true}

	switch req.Type {
	case "advancePhase":
		session.AdvancePhase()
		return okResult, nil
	case "endTurn":
		session.EndTurn()
		return okResult, nil
	case "draw":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		if req.Amount > 1 {
			return session.DrawCards(seat, req.Amount), nil
		}
		return session.DrawCard(seat), nil
	case "mill":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		return session.MillCards(seat, req.Amount), nil
	case "shuffle":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		session.Shuffle(seat)
		return okResult, nil
	case "mulligan":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		session.Mulligan(seat)
		return okResult, nil
	case "changeLife":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		return session.ChangeLife(seat, req.Amount), nil
	case "setLife":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		return session.SetLife(seat, req.Amount), nil
	case "createToken":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		_, result := session.CreateToken(req.Name, req.TypeLine, seat, game.TokenOptions{Tapped: req.Tapped})
		return result, nil
	case "discardRandom":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		_, result := session.DiscardRandom(seat, req.Amount)
		return result, nil
	case "addCounter":
		return session.AddCounter(req.CardID, counters.Kind(req.Kind)), nil
	case "removeCounter":
		return session.RemoveCounter(req.CardID, counters.Kind(req.Kind)), nil
	case "toggleTap":
		return session.ToggleTap(req.CardID), nil
	case "untapAll":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		session.UntapAll(seat)
		return okResult, nil
	case "addMana":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		color, err := parseColor(req.Color)
		if err != nil {
			return game.ActionResult{}, err
		}
		return session.AddMana(seat, color, req.Amount), nil
	case "playCard":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		return session.PlayCard(seat, req.CardID), nil
	case "resolveStack":
		return session.ResolveTopOfStack(), nil
	case "moveCard":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		if !session.MoveCard(seat, req.CardID, game.Zone(req.From), game.Zone(req.To)) {
			return game.ActionResult{Message: "Card could not be moved"}, nil
		}
		return okResult, nil
	case "toggleAttacker":
		return session.ToggleAttacker(req.CardID), nil
	case "toggleBlocker":
		return session.ToggleBlocker(req.AttackerID, req.CardID), nil
	case "note":
		seat, err := parseSeat(req.Seat)
		if err != nil {
			return game.ActionResult{}, err
		}
		if req.Text == "" {
			return game.ActionResult{}, errors.New("note requires text")
		}
		session.Note(seat, req.Text)
		return okResult, nil
	default:
		return game.ActionResult{}, fmt.Errorf("unknown action type %q", req.Type)
	}
}

func parseSeat(raw string) (game.Seat, error) {
	switch seat := game.Seat(raw); seat {
	case game.SeatPlayer, game.SeatOpponent:
		return seat, nil
	default:
		return "", fmt.Errorf("invalid seat %q", raw)
	}
}

func parseColor(raw string) (mana.Color, error) {
	for _, color := range mana.Colors {
		if mana.Color(raw) == color {
			return color, nil
		}
	}
	return "", fmt.Errorf("invalid mana color %q", raw)
}
