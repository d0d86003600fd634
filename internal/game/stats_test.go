package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_GraveyardTypeCountDistinct(t *testing.T) {
	h := NewSimHarness(t)

	h.AddCardToZone("Lightning Bolt", "Instant", SeatPlayer, ZoneGraveyard)
	h.AddCardToZone("Shock", "Instant", SeatPlayer, ZoneGraveyard)
	h.AddCardToZone("Grizzly Bears", "Creature — Bear", SeatOpponent, ZoneGraveyard)

	// Two instants count once; both graveyards are scanned.
	assert.Equal(t, 2, h.session.GraveyardTypeCount())
}

func TestStats_GraveyardTypeCountSpansTypeLine(t *testing.T) {
	h := NewSimHarness(t)

	// A multi-type line contributes each of its types.
	h.AddCardToZone("Treetop Village", "Land Creature — Forest", SeatPlayer, ZoneGraveyard)
	assert.Equal(t, 2, h.session.GraveyardTypeCount())
}

func TestStats_GraveyardCountCreatureProgression(t *testing.T) {
	h := NewSimHarness(t)
	goyf := NewCard("Tarmogoyf", "{1}{G}", "Creature — Lhurgoyf", "", "*", "1+*")

	s := h.session
	s.mu.Lock()
	s.cards[goyf.ID] = goyf
	s.players[SeatPlayer].Creatures = append(s.players[SeatPlayer].Creatures, goyf.ID)
	s.mu.Unlock()

	require.Equal(t, StatGraveyardTypeCount, goyf.Stats.Kind)

	// Empty graveyards: the variable-stat floor applies.
	s.RecomputeStats()
	assert.Equal(t, 0, goyf.EffectivePower())
	assert.Equal(t, 1, goyf.EffectiveToughness())

	// Three distinct card types accumulate across both graveyards.
	h.AddCardToZone("Lightning Bolt", "Instant", SeatPlayer, ZoneGraveyard)
	h.AddCardToZone("Forest", "Basic Land — Forest", SeatOpponent, ZoneGraveyard)
	h.AddCardToZone("Grizzly Bears", "Creature — Bear", SeatOpponent, ZoneGraveyard)
	s.RecomputeStats()

	assert.Equal(t, 3, goyf.EffectivePower())
	assert.Equal(t, 4, goyf.EffectiveToughness())
}

func TestStats_RecomputePushedOnMill(t *testing.T) {
	h := NewSimHarness(t)
	goyf := NewCard("Tarmogoyf", "{1}{G}", "Creature — Lhurgoyf", "", "*", "1+*")

	s := h.session
	s.mu.Lock()
	s.cards[goyf.ID] = goyf
	s.players[SeatPlayer].Creatures = append(s.players[SeatPlayer].Creatures, goyf.ID)
	s.mu.Unlock()

	h.LoadSmallDeck(SeatOpponent, []DeckEntry{
		{Name: "Mountain", Quantity: 1, Type: "Basic Land — Mountain"},
		{Name: "Shock", Quantity: 1, Type: "Instant"},
	})

	s.Mill(SeatOpponent, 2)
	assert.Equal(t, 2, goyf.EffectivePower(), "mill must trigger a recompute without an explicit call")
}

func TestStats_StaticCreatureKeepsPrintedStats(t *testing.T) {
	card := NewCard("Grizzly Bears", "{1}{G}", "Creature — Bear", "", "2", "2")
	assert.Equal(t, StatStatic, card.Stats.Kind)
	assert.Equal(t, 2, card.EffectivePower())
	assert.Equal(t, 2, card.EffectiveToughness())
}

func TestStats_VariableStatParsing(t *testing.T) {
	tests := []struct {
		power     string
		toughness string
		wantP     int
		wantT     int
	}{
		{"*", "*", 0, 1},
		{"2+*", "3+*", 2, 3},
		{"4", "5", 4, 5},
		{"", "", 0, 1},
	}
	for _, tt := range tests {
		card := NewCard("Shapeshifter", "", "Creature — Shapeshifter", "", tt.power, tt.toughness)
		assert.Equal(t, tt.wantP, card.EffectivePower(), "power %q", tt.power)
		assert.Equal(t, tt.wantT, card.EffectiveToughness(), "toughness %q", tt.toughness)
	}
}

func TestStats_BoostCountersAdjustStats(t *testing.T) {
	card := NewCard("Grizzly Bears", "{1}{G}", "Creature — Bear", "", "2", "2")
	card.Counters.Add("+1/+1", 2)
	assert.Equal(t, 4, card.EffectivePower())
	assert.Equal(t, 4, card.EffectiveToughness())
}
