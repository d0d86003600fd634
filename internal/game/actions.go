package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mtgsim/mtgsim/internal/game/counters"
	"github.com/mtgsim/mtgsim/internal/game/events"
	"github.com/mtgsim/mtgsim/internal/game/mana"
	"go.uber.org/zap"
)

// ActionResult reports the outcome of a single user action. Domain
// conditions (empty library, illegal attacker, card gone) are expressed
// here rather than as errors; the simulator never becomes unusable from a
// recoverable condition.
type ActionResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func okResult(message string) ActionResult {
	return ActionResult{OK: true, Message: message}
}

func rejected(message string) ActionResult {
	return ActionResult{OK: false, Message: message}
}

// DrawCard draws a single card for the seat.
func (s *Session) DrawCard(seat Seat) ActionResult {
	return s.DrawCards(seat, 1)
}

// DrawCards draws up to n cards, reporting a warning when the library runs
// out. Drawing from an empty library is a no-op, never a failure.
func (s *Session) DrawCards(seat Seat, n int) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	drawn := s.drawLocked(seat, n)
	if drawn == 0 {
		s.logManual(fmt.Sprintf("%s tried to draw with an empty library", seatLabel(seat)), seat)
		return rejected("Library is empty")
	}
	s.logManual(fmt.Sprintf("%s drew %d card(s)", seatLabel(seat), drawn), seat)
	if drawn < n {
		return okResult(fmt.Sprintf("Drew %d card(s); library is now empty", drawn))
	}
	return okResult(fmt.Sprintf("Drew %d card(s)", drawn))
}

// MillCards mills up to n cards from the seat's library.
func (s *Session) MillCards(seat Seat, n int) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	milled := s.millLocked(seat, n)
	if milled == 0 {
		return rejected("Library is empty")
	}
	s.logManual(fmt.Sprintf("%s milled %d card(s)", seatLabel(seat), milled), seat)
	return okResult(fmt.Sprintf("Milled %d card(s)", milled))
}

// ChangeLife adjusts the seat's life total by delta. Life reaching zero or
// below is reported, not enforced; the game does not auto-end.
func (s *Session) ChangeLife(seat Seat, delta int) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLifeLocked(seat, s.players[seat].Stats.Life+delta)
}

// SetLife sets the seat's life total to an absolute value.
func (s *Session) SetLife(seat Seat, life int) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLifeLocked(seat, life)
}

func (s *Session) setLifeLocked(seat Seat, life int) ActionResult {
	player := s.players[seat]
	player.Stats.Life = life
	s.bus.Publish(events.NewEventWithAmount(events.EventLifeChanged, "", string(seat), life))
	s.logManual(fmt.Sprintf("%s's life is now %d", seatLabel(seat), life), seat)
	if life <= 0 {
		return okResult(fmt.Sprintf("%s is at %d life and would lose the game", seatLabel(seat), life))
	}
	return okResult(fmt.Sprintf("Life set to %d", life))
}

// TokenOptions tweaks token creation.
type TokenOptions struct {
	Tapped bool
}

// CreateToken synthesizes a card instance with no deck backing and puts it
// onto the owner's battlefield row for its type. Power/toughness are parsed
// from the token name when present. The image lookup goes through the
// boundary resolver; failure is non-fatal.
func (s *Session) CreateToken(name, typeLine string, owner Seat, opts TokenOptions) (*Card, ActionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := NewToken(name, typeLine)
	token.Tapped = opts.Tapped
	if token.IsCreature() {
		token.SummoningSick = true
	}
	if url, err := s.images.ImageURL(name, "small"); err == nil {
		token.ImageURL = url
	} else {
		s.logger.Warn("token image lookup failed", zap.String("name", name), zap.Error(err))
	}

	s.cards[token.ID] = token
	player := s.players[owner]
	row := player.zoneList(ClassifyPermanent(typeLine).Zone())
	*row = append(*row, token.ID)
	player.TokensMade++

	s.bus.Publish(events.NewEvent(events.EventCreatedToken, token.ID, string(owner)))
	s.logManual(fmt.Sprintf("%s created a %s token", seatLabel(owner), name), owner)
	return token, okResult(fmt.Sprintf("Created %s", name))
}

// DiscardRandom removes up to amount uniformly random cards from the
// seat's hand into their graveyard, returning the discarded cards for
// display. Stats recompute once per discarded card.
func (s *Session) DiscardRandom(seat Seat, amount int) ([]*Card, ActionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[seat]
	discarded := make([]*Card, 0, amount)
	for i := 0; i < amount; i++ {
		if len(player.Hand) == 0 {
			break
		}
		idx := s.rng.Intn(len(player.Hand))
		id := player.Hand[idx]
		player.Hand = append(player.Hand[:idx], player.Hand[idx+1:]...)
		player.Graveyard = append(player.Graveyard, id)
		if card, ok := s.cards[id]; ok {
			discarded = append(discarded, card)
		}
		s.bus.Publish(events.NewEvent(events.EventDiscardedCard, id, string(seat)))
		s.graveyardChanged(seat)
	}

	if len(discarded) == 0 {
		return discarded, rejected("Hand is empty")
	}
	s.logManual(fmt.Sprintf("%s discarded %d card(s) at random", seatLabel(seat), len(discarded)), seat)
	return discarded, okResult(fmt.Sprintf("Discarded %d card(s)", len(discarded)))
}

// AddCounter adds one counter of the given kind to a card.
func (s *Session) AddCounter(cardID string, kind counters.Kind) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		s.logger.Error("counter requested for unknown card", zap.String("card_id", cardID))
		return rejected("Card not found")
	}
	card.Counters.Add(kind, 1)
	s.bus.Publish(events.NewEvent(events.EventCounterAdded, cardID, ""))
	s.logManual(fmt.Sprintf("Added a %s counter to %s", kind, card.Name), s.turn.ActivePlayer)
	return okResult(fmt.Sprintf("%s counter added", kind))
}

// RemoveCounter removes one counter of the given kind from a card. The
// kind's map key disappears once its count reaches zero.
func (s *Session) RemoveCounter(cardID string, kind counters.Kind) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		s.logger.Error("counter requested for unknown card", zap.String("card_id", cardID))
		return rejected("Card not found")
	}
	if !card.Counters.Remove(kind, 1) {
		return rejected(fmt.Sprintf("%s has no %s counters", card.Name, kind))
	}
	s.bus.Publish(events.NewEvent(events.EventCounterRemoved, cardID, ""))
	s.logManual(fmt.Sprintf("Removed a %s counter from %s", kind, card.Name), s.turn.ActivePlayer)
	return okResult(fmt.Sprintf("%s counter removed", kind))
}

// ToggleTap flips the tapped state of a single battlefield permanent.
func (s *Session) ToggleTap(cardID string) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, seat, _, found := s.findOnBattlefield(cardID)
	if !found {
		s.logger.Error("tap requested for card not on battlefield", zap.String("card_id", cardID))
		return rejected("That card is not on the battlefield")
	}
	card.Tapped = !card.Tapped
	if card.Tapped {
		s.bus.Publish(events.NewEvent(events.EventTapped, cardID, string(seat)))
		s.logManual(fmt.Sprintf("%s tapped %s", seatLabel(seat), card.Name), seat)
		return okResult(fmt.Sprintf("%s tapped", card.Name))
	}
	s.bus.Publish(events.NewEvent(events.EventUntapped, cardID, string(seat)))
	s.logManual(fmt.Sprintf("%s untapped %s", seatLabel(seat), card.Name), seat)
	return okResult(fmt.Sprintf("%s untapped", card.Name))
}

// UntapAll untaps every permanent the seat controls. Idempotent.
func (s *Session) UntapAll(seat Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.untapAllLocked(seat)
	s.logManual(fmt.Sprintf("%s untapped all permanents", seatLabel(seat)), seat)
}

func (s *Session) untapAllLocked(seat Seat) {
	player := s.players[seat]
	for _, id := range player.battlefieldIDs() {
		if card, ok := s.cards[id]; ok {
			card.Tapped = false
			if card.IsCreature() {
				// Summoning sickness wears off at the controller's untap.
				card.SummoningSick = false
			}
		}
	}
}

// AddMana adds mana of the given color to the seat's pool.
func (s *Session) AddMana(seat Seat, color mana.Color, amount int) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[seat].ManaPool.Add(color, amount)
	s.logManual(fmt.Sprintf("%s added %d %s mana", seatLabel(seat), amount, color), seat)
	return okResult(fmt.Sprintf("Added %d %s", amount, color))
}

// PlayCard plays a card from the seat's hand. Lands go to the lands row
// and count toward lands played; instants and sorceries are put on the
// stack; everything else enters the battlefield and counts as a spell cast.
func (s *Session) PlayCard(seat Seat, cardID string) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		return rejected("Card not found")
	}
	player := s.players[seat]

	if IsSpellOnly(card.Type) {
		if !s.removeFromZone(player, cardID, ZoneHand) {
			return rejected(fmt.Sprintf("%s is not in your hand", card.Name))
		}
		s.stack.Push(StackItem{
			ID:          uuid.NewString(),
			CardID:      cardID,
			Controller:  seat,
			Description: fmt.Sprintf("%s casts %s", seatLabel(seat), card.Name),
		})
		player.Stats.SpellsCast++
		s.bus.Publish(events.NewEvent(events.EventStackItemAdded, cardID, string(seat)))
		s.logManual(fmt.Sprintf("%s cast %s", seatLabel(seat), card.Name), seat)
		return okResult(fmt.Sprintf("%s is on the stack", card.Name))
	}

	if !s.moveCardLocked(seat, cardID, ZoneHand, ZoneBattlefield) {
		return rejected(fmt.Sprintf("%s is not in your hand", card.Name))
	}
	if ClassifyPermanent(card.Type) == RowLands {
		player.Stats.LandsPlayed++
		s.logManual(fmt.Sprintf("%s played %s", seatLabel(seat), card.Name), seat)
		return okResult(fmt.Sprintf("%s entered the battlefield", card.Name))
	}
	player.Stats.SpellsCast++
	s.logManual(fmt.Sprintf("%s cast %s", seatLabel(seat), card.Name), seat)
	return okResult(fmt.Sprintf("%s entered the battlefield", card.Name))
}

// ResolveTopOfStack resolves the topmost stack item: the spell moves to
// its controller's graveyard. Resolving an empty stack is a reported
// no-op, matching the partial stack scope.
func (s *Session) ResolveTopOfStack() ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.stack.Pop()
	if err != nil {
		s.logger.Error("resolve requested with empty stack")
		return rejected("The stack is empty")
	}
	card := s.cards[item.CardID]
	player := s.players[item.Controller]
	player.Graveyard = append(player.Graveyard, item.CardID)
	s.graveyardChanged(item.Controller)
	s.bus.Publish(events.NewEvent(events.EventStackItemResolved, item.CardID, string(item.Controller)))
	if card != nil {
		s.logManual(fmt.Sprintf("%s resolved", card.Name), item.Controller)
		return okResult(fmt.Sprintf("%s resolved", card.Name))
	}
	return okResult("Spell resolved")
}
