package game

import "time"

// The view types are the core's read surface. The UI layer re-renders
// fully from a fresh view after each operation (pull model); the core
// pushes no diffs.

// CardView is the read-side projection of a card instance.
type CardView struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ManaCost      string         `json:"manaCost,omitempty"`
	Type          string         `json:"type"`
	RulesText     string         `json:"rulesText,omitempty"`
	Power         int            `json:"power"`
	Toughness     int            `json:"toughness"`
	Tapped        bool           `json:"tapped"`
	SummoningSick bool           `json:"summoningSick"`
	Damage        int            `json:"damage"`
	Token         bool           `json:"token"`
	Counters      map[string]int `json:"counters,omitempty"`
	ImageURL      string         `json:"imageUrl,omitempty"`
}

// PlayerView is the read-side projection of one seat.
type PlayerView struct {
	Seat         string         `json:"seat"`
	Name         string         `json:"name"`
	Life         int            `json:"life"`
	CardsDrawn   int            `json:"cardsDrawn"`
	LandsPlayed  int            `json:"landsPlayed"`
	SpellsCast   int            `json:"spellsCast"`
	Mulligans    int            `json:"mulligans"`
	LibraryCount int            `json:"libraryCount"`
	Hand         []CardView     `json:"hand"`
	Lands        []CardView     `json:"lands"`
	Creatures    []CardView     `json:"creatures"`
	Others       []CardView     `json:"others"`
	Graveyard    []CardView     `json:"graveyard"`
	Exile        []CardView     `json:"exile"`
	ManaPool     map[string]int `json:"manaPool"`
}

// CombatView is the read-side projection of the combat sub-machine.
type CombatView struct {
	Step               string              `json:"step"`
	SelectingAttackers bool                `json:"selectingAttackers"`
	SelectingBlockers  bool                `json:"selectingBlockers"`
	Attackers          []AttackerEntryView `json:"attackers"`
	Blockers           []BlockerEntryView  `json:"blockers"`
}

// AttackerEntryView mirrors AttackerEntry for serialization.
type AttackerEntryView struct {
	CardID    string `json:"cardId"`
	Seat      string `json:"seat"`
	Power     int    `json:"power"`
	Toughness int    `json:"toughness"`
}

// BlockerEntryView mirrors BlockerEntry for serialization.
type BlockerEntryView struct {
	AttackerID string `json:"attackerCardId"`
	CardID     string `json:"blockerCardId"`
	Seat       string `json:"seat"`
}

// LogEntryView mirrors LogEntry for serialization.
type LogEntryView struct {
	Timestamp  time.Time `json:"timestamp"`
	Player     string    `json:"player"`
	Text       string    `json:"text"`
	Type       string    `json:"type"`
	TurnNumber int       `json:"turnNumber"`
	Phase      string    `json:"phase"`
}

// StackItemView mirrors StackItem for serialization.
type StackItemView struct {
	ID          string `json:"id"`
	CardID      string `json:"cardId"`
	Controller  string `json:"controller"`
	Description string `json:"description"`
}

// SessionView is the complete read-side projection of one session.
type SessionView struct {
	SessionID    string          `json:"sessionId"`
	ActivePlayer string          `json:"activePlayer"`
	Phase        string          `json:"phase"`
	Step         string          `json:"step"`
	TurnNumber   int             `json:"turnNumber"`
	FirstTurn    bool            `json:"firstTurn"`
	Players      []PlayerView    `json:"players"`
	Combat       CombatView      `json:"combat"`
	Stack        []StackItemView `json:"stack"`
	Log          []LogEntryView  `json:"log"`
}

// View builds a complete session view.
func (s *Session) View() SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := SessionView{
		SessionID:    s.ID,
		ActivePlayer: string(s.turn.ActivePlayer),
		Phase:        s.turn.Phase.String(),
		Step:         s.turn.Step.String(),
		TurnNumber:   s.turn.TurnNumber,
		FirstTurn:    s.turn.FirstTurn,
		Players:      make([]PlayerView, 0, len(s.seats)),
		Combat:       s.combatView(),
		Stack:        s.stackView(),
		Log:          s.logView(),
	}
	for _, seat := range s.seats {
		view.Players = append(view.Players, s.playerView(seat))
	}
	return view
}

func (s *Session) playerView(seat Seat) PlayerView {
	player := s.players[seat]
	pool := make(map[string]int)
	for color, amount := range player.ManaPool.Snapshot() {
		pool[string(color)] = amount
	}
	return PlayerView{
		Seat:         string(seat),
		Name:         player.Name,
		Life:         player.Stats.Life,
		CardsDrawn:   player.Stats.CardsDrawn,
		LandsPlayed:  player.Stats.LandsPlayed,
		SpellsCast:   player.Stats.SpellsCast,
		Mulligans:    player.Stats.Mulligans,
		LibraryCount: len(player.Library),
		Hand:         s.cardViews(player.Hand),
		Lands:        s.cardViews(player.Lands),
		Creatures:    s.cardViews(player.Creatures),
		Others:       s.cardViews(player.Others),
		Graveyard:    s.cardViews(player.Graveyard),
		Exile:        s.cardViews(player.Exile),
		ManaPool:     pool,
	}
}

func (s *Session) cardViews(ids []string) []CardView {
	out := make([]CardView, 0, len(ids))
	for _, id := range ids {
		card, ok := s.cards[id]
		if !ok {
			continue
		}
		counts := make(map[string]int)
		for kind, count := range card.Counters.All() {
			counts[string(kind)] = count
		}
		if len(counts) == 0 {
			counts = nil
		}
		out = append(out, CardView{
			ID:            card.ID,
			Name:          card.Name,
			ManaCost:      card.ManaCost,
			Type:          card.Type,
			RulesText:     card.RulesText,
			Power:         card.EffectivePower(),
			Toughness:     card.EffectiveToughness(),
			Tapped:        card.Tapped,
			SummoningSick: card.SummoningSick,
			Damage:        card.Damage,
			Token:         card.Token,
			Counters:      counts,
			ImageURL:      card.ImageURL,
		})
	}
	return out
}

func (s *Session) combatView() CombatView {
	view := CombatView{
		Step:               s.combat.Step.String(),
		SelectingAttackers: s.combat.SelectingAttackers,
		SelectingBlockers:  s.combat.SelectingBlockers,
		Attackers:          make([]AttackerEntryView, 0, len(s.combat.Attackers)),
		Blockers:           make([]BlockerEntryView, 0, len(s.combat.Blockers)),
	}
	for _, entry := range s.combat.Attackers {
		view.Attackers = append(view.Attackers, AttackerEntryView{
			CardID:    entry.CardID,
			Seat:      string(entry.Seat),
			Power:     entry.Power,
			Toughness: entry.Toughness,
		})
	}
	for _, entry := range s.combat.Blockers {
		view.Blockers = append(view.Blockers, BlockerEntryView{
			AttackerID: entry.AttackerID,
			CardID:     entry.CardID,
			Seat:       string(entry.Seat),
		})
	}
	return view
}

func (s *Session) stackView() []StackItemView {
	items := s.stack.List()
	out := make([]StackItemView, 0, len(items))
	for _, item := range items {
		out = append(out, StackItemView{
			ID:          item.ID,
			CardID:      item.CardID,
			Controller:  string(item.Controller),
			Description: item.Description,
		})
	}
	return out
}

func (s *Session) logView() []LogEntryView {
	entries := s.log.Tail(0)
	out := make([]LogEntryView, 0, len(entries))
	for _, entry := range entries {
		out = append(out, LogEntryView{
			Timestamp:  entry.Timestamp,
			Player:     entry.Player,
			Text:       entry.Text,
			Type:       string(entry.Type),
			TurnNumber: entry.TurnNumber,
			Phase:      entry.Phase.String(),
		})
	}
	return out
}
