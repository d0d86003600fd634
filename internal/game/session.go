package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mtgsim/mtgsim/internal/game/events"
	"github.com/mtgsim/mtgsim/internal/game/mana"
	"go.uber.org/zap"
)

const (
	defaultStartingLife    = 20
	defaultOpeningHandSize = 7
)

// ImageResolver is the boundary to the card-image service. The core never
// blocks on it; image URLs are cosmetic metadata and lookup failure is
// non-fatal.
type ImageResolver interface {
	ImageURL(name, size string) (string, error)
}

// NopImageResolver satisfies ImageResolver with empty results.
type NopImageResolver struct{}

// ImageURL implements ImageResolver.
func (NopImageResolver) ImageURL(name, size string) (string, error) {
	return "", nil
}

// SessionOptions configures a new session.
type SessionOptions struct {
	StartingLife    int
	OpeningHandSize int
	MaxLogEntries   int
	Images          ImageResolver
	RandSeed        int64 // 0 seeds from the clock
}

// Session is the aggregate owning one simulated game: the card registry,
// both players' zones, the turn and combat machines, the log, the stack,
// and the event bus. All mutation goes through session methods under the
// session mutex, preserving the single-writer assumption.
type Session struct {
	ID string

	mu     sync.RWMutex
	logger *zap.Logger
	rng    *rand.Rand

	cards   map[string]*Card
	players map[Seat]*PlayerState
	seats   []Seat

	turn   TurnState
	combat CombatState
	log    *GameLog
	stack  *Stack
	bus    *events.Bus
	images ImageResolver

	openingHandSize int
	startingLife    int
}

// NewSession creates an empty session for the two seats. A nil logger is
// replaced with a no-op logger.
func NewSession(id string, logger *zap.Logger, opts SessionOptions) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.StartingLife <= 0 {
		opts.StartingLife = defaultStartingLife
	}
	if opts.OpeningHandSize <= 0 {
		opts.OpeningHandSize = defaultOpeningHandSize
	}
	if opts.Images == nil {
		opts.Images = NopImageResolver{}
	}
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		ID:      id,
		logger:  logger,
		rng:     rand.New(rand.NewSource(seed)),
		cards:   make(map[string]*Card),
		players: make(map[Seat]*PlayerState),
		seats:   []Seat{SeatPlayer, SeatOpponent},
		turn:    newTurnState(SeatPlayer),
		combat:  newCombatState(),
		log:     NewGameLog(opts.MaxLogEntries),
		stack:   NewStack(),
		bus:     events.NewBus(),
		images:  opts.Images,

		openingHandSize: opts.OpeningHandSize,
		startingLife:    opts.StartingLife,
	}
	for _, seat := range s.seats {
		s.players[seat] = newPlayerState(seat, seatLabel(seat), opts.StartingLife)
	}

	// Dynamic stats are push-triggered: any graveyard change recomputes.
	s.bus.SubscribeTyped(events.EventGraveyardChanged, func(events.Event) {
		s.RecomputeStats()
	})

	return s
}

// DeckEntry is one card of a parsed deck list, per the loader contract.
type DeckEntry struct {
	Name      string
	Quantity  int
	Type      string
	Cost      string
	RulesText string
	Power     string
	Toughness string
}

// LoadDeck builds one card instance per copy and resets the seat's zones,
// stats, and the session's turn and combat state. A malformed quantity is
// a caller error the loader must reject; it is the one condition allowed
// to propagate as an error across this boundary.
func (s *Session) LoadDeck(seat Seat, entries []DeckEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		if entry.Quantity < 1 {
			return fmt.Errorf("deck entry %q: invalid quantity %d", entry.Name, entry.Quantity)
		}
	}

	// Drop the seat's previous instances from the registry, including
	// spells it still had waiting on the stack.
	player := s.players[seat]
	for _, zone := range [][]string{player.Library, player.Hand, player.Lands, player.Creatures, player.Others, player.Graveyard, player.Exile} {
		for _, id := range zone {
			delete(s.cards, id)
		}
	}
	for _, item := range s.stack.DropController(seat) {
		delete(s.cards, item.CardID)
	}

	fresh := newPlayerState(seat, seatLabel(seat), s.startingLife)
	total := 0
	for _, entry := range entries {
		for i := 0; i < entry.Quantity; i++ {
			card := NewCard(entry.Name, entry.Cost, entry.Type, entry.RulesText, entry.Power, entry.Toughness)
			if url, err := s.images.ImageURL(entry.Name, "small"); err == nil {
				card.ImageURL = url
			}
			s.cards[card.ID] = card
			fresh.Library = append(fresh.Library, card.ID)
			total++
		}
	}
	fresh.DeckSize = total
	s.players[seat] = fresh

	s.turn = newTurnState(SeatPlayer)
	s.combat = newCombatState()
	s.shuffleLocked(seat)

	s.logger.Info("deck loaded",
		zap.String("session_id", s.ID),
		zap.String("seat", string(seat)),
		zap.Int("cards", total),
	)
	s.logAuto(fmt.Sprintf("%s loaded a %d-card deck", seatLabel(seat), total), seat)
	return nil
}

// DealOpeningHand draws the opening hand for the seat.
func (s *Session) DealOpeningHand(seat Seat) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	drawn := s.drawLocked(seat, s.openingHandSize)
	// Opening-hand draws don't count toward the drawn-cards stat.
	s.players[seat].Stats.CardsDrawn -= drawn
	return drawn
}

// Mulligan shuffles the seat's hand back into the library and deals a new
// hand one card smaller per mulligan taken. An empty hand is a no-op.
func (s *Session) Mulligan(seat Seat) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[seat]
	if len(player.Hand) == 0 {
		return 0
	}
	player.Library = append(player.Library, player.Hand...)
	player.Hand = player.Hand[:0]
	player.Stats.Mulligans++
	s.shuffleLocked(seat)

	size := s.openingHandSize - player.Stats.Mulligans
	if size < 0 {
		size = 0
	}
	drawn := s.drawLocked(seat, size)
	// Opening-hand draws don't count toward the drawn-cards stat.
	player.Stats.CardsDrawn -= drawn
	s.logManual(fmt.Sprintf("%s mulligans to %d", seatLabel(seat), drawn), seat)
	return drawn
}

// seatLabel is the player label used in log entries and player names.
func seatLabel(seat Seat) string {
	if seat == SeatOpponent {
		return "Opponent"
	}
	return "Player"
}

// Note records a free-form manual log entry for the given seat.
func (s *Session) Note(seat Seat, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logManual(text, seat)
}

// logAuto records a machine-driven log entry.
func (s *Session) logAuto(text string, seat Seat) {
	s.addLogEntry(text, seat, LogAuto)
}

// logManual records a player-triggered log entry.
func (s *Session) logManual(text string, seat Seat) {
	s.addLogEntry(text, seat, LogManual)
}

func (s *Session) addLogEntry(text string, seat Seat, entryType LogEntryType) {
	s.log.Add(LogEntry{
		Timestamp:  time.Now(),
		Player:     seatLabel(seat),
		Text:       text,
		Type:       entryType,
		TurnNumber: s.turn.TurnNumber,
		Phase:      s.turn.Phase,
	})
}

// emptyManaPool clears the seat's mana pool at a phase cut point.
func (s *Session) emptyManaPool(seat Seat) {
	if s.players[seat].ManaPool.Total() > 0 {
		s.players[seat].ManaPool.Empty()
		s.bus.Publish(events.NewEvent(events.EventEmptyManaPool, "", string(seat)))
	}
}

// Turn returns a copy of the current turn state.
func (s *Session) Turn() TurnState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turn
}

// Combat returns a copy of the current combat state.
func (s *Session) Combat() CombatState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.combat
	out.Attackers = append([]AttackerEntry(nil), s.combat.Attackers...)
	out.Blockers = append([]BlockerEntry(nil), s.combat.Blockers...)
	return out
}

// ZoneCards returns the cards currently in the named zone of the seat, in
// zone order. The battlefield meta-zone returns all three rows.
func (s *Session) ZoneCards(seat Seat, zone Zone) []*Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player := s.players[seat]
	var ids []string
	if zone == ZoneBattlefield {
		ids = player.battlefieldIDs()
	} else {
		list := player.zoneList(zone)
		if list == nil {
			return nil
		}
		ids = *list
	}
	out := make([]*Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := s.cards[id]; ok {
			out = append(out, card)
		}
	}
	return out
}

// Card returns the card instance with the given ID.
func (s *Session) Card(id string) (*Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	return card, ok
}

// PlayerStats returns a copy of the seat's game stats.
func (s *Session) PlayerStats(seat Seat) GameStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players[seat].Stats
}

// ManaPool returns the seat's mana pool.
func (s *Session) ManaPool(seat Seat) *mana.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players[seat].ManaPool
}

// LogTail returns up to n of the newest log entries.
func (s *Session) LogTail(n int) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Tail(n)
}

// StackItems returns a copy of the stack, topmost last.
func (s *Session) StackItems() []StackItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stack.List()
}

// Events exposes the session's event bus for read-side subscribers.
func (s *Session) Events() *events.Bus {
	return s.bus
}
