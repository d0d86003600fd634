package game

import (
	"fmt"

	"github.com/mtgsim/mtgsim/internal/game/events"
	"go.uber.org/zap"
)

// Draw removes up to n cards from the top of the seat's library and puts
// them into their hand, returning the number actually drawn. An empty
// library stops the draw early; it is a valid terminal state, not an error.
func (s *Session) Draw(seat Seat, n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawLocked(seat, n)
}

func (s *Session) drawLocked(seat Seat, n int) int {
	player := s.players[seat]
	drawn := 0
	for i := 0; i < n; i++ {
		if len(player.Library) == 0 {
			break
		}
		top := player.Library[len(player.Library)-1]
		player.Library = player.Library[:len(player.Library)-1]
		player.Hand = append(player.Hand, top)
		player.Stats.CardsDrawn++
		drawn++
		s.bus.Publish(events.NewEvent(events.EventDrewCard, top, string(seat)))
	}
	return drawn
}

// Mill moves up to n cards from the top of the seat's library to their
// graveyard, returning the number milled.
func (s *Session) Mill(seat Seat, n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.millLocked(seat, n)
}

func (s *Session) millLocked(seat Seat, n int) int {
	player := s.players[seat]
	milled := 0
	for i := 0; i < n; i++ {
		if len(player.Library) == 0 {
			break
		}
		top := player.Library[len(player.Library)-1]
		player.Library = player.Library[:len(player.Library)-1]
		player.Graveyard = append(player.Graveyard, top)
		milled++
		s.bus.Publish(events.NewEvent(events.EventMilledCard, top, string(seat)))
	}
	if milled > 0 {
		s.graveyardChanged(seat)
	}
	return milled
}

// Shuffle produces a uniformly random permutation of the seat's library
// using Fisher-Yates. Other zones are untouched.
func (s *Session) Shuffle(seat Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffleLocked(seat)
}

func (s *Session) shuffleLocked(seat Seat) {
	library := s.players[seat].Library
	for i := len(library) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		library[i], library[j] = library[j], library[i]
	}
	s.bus.Publish(events.NewEvent(events.EventShuffleLibrary, "", string(seat)))
}

// MoveCard removes the card from the named zone by identity and appends it
// to the destination zone. A card that is no longer where the caller
// expected is a normal condition under rapid UI clicks: the move is a
// silent no-op returning false, not an error.
func (s *Session) MoveCard(seat Seat, cardID string, from, to Zone) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.moveCardLocked(seat, cardID, from, to) {
		return false
	}
	if card, ok := s.cards[cardID]; ok {
		s.logManual(fmt.Sprintf("%s moved %s from %s", seatLabel(seat), card.Name, from), seat)
	}
	return true
}

func (s *Session) moveCardLocked(seat Seat, cardID string, from, to Zone) bool {
	player := s.players[seat]
	card, ok := s.cards[cardID]
	if !ok {
		s.logger.Error("move requested for unknown card", zap.String("card_id", cardID))
		return false
	}

	if !s.removeFromZone(player, cardID, from) {
		s.logger.Error("card not found in expected zone",
			zap.String("card_id", cardID), zap.String("from", string(from)))
		return false
	}

	dest := to
	if to == ZoneBattlefield {
		if IsSpellOnly(card.Type) {
			// Instants and sorceries never rest on the battlefield.
			dest = ZoneGraveyard
		} else {
			dest = ClassifyPermanent(card.Type).Zone()
		}
	}

	list := player.zoneList(dest)
	if list == nil {
		// Unknown destination: restore and report.
		restore := player.zoneList(from)
		if restore != nil {
			*restore = append(*restore, cardID)
		}
		s.logger.Error("move requested to unknown zone", zap.String("to", string(to)))
		return false
	}
	*list = append(*list, cardID)

	// Leaving the battlefield clears battlefield-only state.
	if !isBattlefieldZone(dest) {
		card.Tapped = false
		card.Damage = 0
	}
	if isBattlefieldZone(dest) && !isBattlefieldZone(from) && card.IsCreature() {
		card.SummoningSick = true
	}

	s.bus.Publish(events.NewEvent(events.EventZoneChange, cardID, string(seat)))
	if from == ZoneGraveyard || dest == ZoneGraveyard {
		s.graveyardChanged(seat)
	}
	return true
}

// isBattlefieldZone reports whether the zone is one of the battlefield rows.
func isBattlefieldZone(zone Zone) bool {
	switch zone {
	case ZoneLands, ZoneCreatures, ZoneOthers, ZoneBattlefield:
		return true
	}
	return false
}

// removeFromZone removes the card ID from the named zone of the player.
// Asking for the battlefield meta-zone searches all three rows.
func (s *Session) removeFromZone(player *PlayerState, cardID string, zone Zone) bool {
	if zone == ZoneBattlefield {
		for _, row := range []Zone{ZoneLands, ZoneCreatures, ZoneOthers} {
			if s.removeFromZone(player, cardID, row) {
				return true
			}
		}
		return false
	}
	list := player.zoneList(zone)
	if list == nil {
		return false
	}
	for i, id := range *list {
		if id == cardID {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// graveyardChanged publishes the graveyard-change event that drives the
// dynamic stats recompute.
func (s *Session) graveyardChanged(seat Seat) {
	s.bus.Publish(events.NewEvent(events.EventGraveyardChanged, "", string(seat)))
}

// findOnBattlefield locates a card anywhere on either battlefield,
// returning its controller and row.
func (s *Session) findOnBattlefield(cardID string) (*Card, Seat, Zone, bool) {
	for _, seat := range s.seats {
		player := s.players[seat]
		for _, row := range []Zone{ZoneLands, ZoneCreatures, ZoneOthers} {
			for _, id := range *player.zoneList(row) {
				if id == cardID {
					return s.cards[id], seat, row, true
				}
			}
		}
	}
	return nil, "", "", false
}

// CardCount returns the deck-backed card count across every zone of the
// seat, including spells waiting on the stack; the conservation invariant
// compares this to the loaded deck size.
func (s *Session) CardCount(seat Seat) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := s.players[seat].cardCount(s.cards)
	for _, item := range s.stack.List() {
		if item.Controller != seat {
			continue
		}
		if card, ok := s.cards[item.CardID]; ok && !card.Token {
			count++
		}
	}
	return count
}
