package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// SimHarness provides utilities for setting up and exercising sessions in
// tests without going through a deck load.
type SimHarness struct {
	t       *testing.T
	session *Session
}

// NewSimHarness creates a session with a deterministic rand seed.
func NewSimHarness(t *testing.T) *SimHarness {
	t.Helper()
	session := NewSession("test-session", zaptest.NewLogger(t), SessionOptions{
		RandSeed: 42,
	})
	return &SimHarness{t: t, session: session}
}

// CreatureSpec defines the properties of a test creature.
type CreatureSpec struct {
	Name      string
	Power     string
	Toughness string
	Seat      Seat
	Tapped    bool
	Sick      bool
}

// AddCreature puts a creature directly onto the battlefield, bypassing the
// hand, and returns its instance ID.
func (h *SimHarness) AddCreature(spec CreatureSpec) string {
	h.t.Helper()
	card := NewCard(spec.Name, "", "Creature", "", spec.Power, spec.Toughness)
	card.Tapped = spec.Tapped
	card.SummoningSick = spec.Sick

	s := h.session
	s.mu.Lock()
	s.cards[card.ID] = card
	player := s.players[spec.Seat]
	player.Creatures = append(player.Creatures, card.ID)
	s.mu.Unlock()
	return card.ID
}

// AddCardToZone puts a card with the given type line into the named zone.
func (h *SimHarness) AddCardToZone(name, typeLine string, seat Seat, zone Zone) string {
	h.t.Helper()
	card := NewCard(name, "", typeLine, "", "", "")

	s := h.session
	s.mu.Lock()
	s.cards[card.ID] = card
	list := s.players[seat].zoneList(zone)
	require.NotNil(h.t, list, "unknown zone %s", zone)
	*list = append(*list, card.ID)
	s.mu.Unlock()
	return card.ID
}

// LoadSmallDeck loads a deck of the given entries for the seat.
func (h *SimHarness) LoadSmallDeck(seat Seat, entries []DeckEntry) {
	h.t.Helper()
	require.NoError(h.t, h.session.LoadDeck(seat, entries))
}

// AdvanceToCombat walks the turn machine from main1 into the combat phase.
func (h *SimHarness) AdvanceToCombat() {
	h.t.Helper()
	s := h.session
	if s.Turn().Phase == PhaseBeginning {
		s.AdvancePhase()
	}
	require.Equal(h.t, PhaseMain1, s.Turn().Phase)
	s.AdvancePhase()
	require.Equal(h.t, PhaseCombat, s.Turn().Phase)
	require.Equal(h.t, CombatBegin, s.Combat().Step)
}

// RunFullCombat drives a complete combat: the given attackers are declared,
// then the given blocker -> attacker assignments, then damage and cleanup.
// The session ends up in main2.
func (h *SimHarness) RunFullCombat(attackers []string, blockers map[string]string) {
	h.t.Helper()
	s := h.session

	h.AdvanceToCombat()
	s.AdvancePhase() // begin-combat -> declare-attackers
	require.Equal(h.t, CombatDeclareAttackers, s.Combat().Step)

	for _, id := range attackers {
		result := s.ToggleAttacker(id)
		require.True(h.t, result.OK, "declare attacker: %s", result.Message)
	}
	s.AdvancePhase() // finalize attackers -> declare-blockers (or straight out)

	if len(attackers) == 0 {
		require.Equal(h.t, PhaseMain2, s.Turn().Phase)
		return
	}

	require.Equal(h.t, CombatDeclareBlockers, s.Combat().Step)
	for blocker, attacker := range blockers {
		result := s.ToggleBlocker(attacker, blocker)
		require.True(h.t, result.OK, "declare blocker: %s", result.Message)
	}
	s.AdvancePhase() // -> combat-damage (resolved)
	s.AdvancePhase() // -> end-combat, exits to main2
	require.Equal(h.t, PhaseMain2, s.Turn().Phase)
}

// Life returns the seat's life total.
func (h *SimHarness) Life(seat Seat) int {
	return h.session.PlayerStats(seat).Life
}

// AssertInZone fails unless the card is currently in the named zone.
func (h *SimHarness) AssertInZone(cardID string, seat Seat, zone Zone) {
	h.t.Helper()
	for _, card := range h.session.ZoneCards(seat, zone) {
		if card.ID == cardID {
			return
		}
	}
	h.t.Fatalf("card %s not in %s/%s", cardID, seat, zone)
}

// testDeck builds a deck list of n copies each of the provided cards.
func testDeck(copies int, names ...string) []DeckEntry {
	entries := make([]DeckEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, DeckEntry{
			Name:     name,
			Quantity: copies,
			Type:     "Creature — Test",
			Cost:     "{1}",
		})
	}
	return entries
}
