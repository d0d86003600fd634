package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgsim/mtgsim/internal/game/counters"
)

func TestZones_DrawStopsAtEmptyLibrary(t *testing.T) {
	h := NewSimHarness(t)
	h.LoadSmallDeck(SeatPlayer, []DeckEntry{{Name: "Mountain", Quantity: 2, Type: "Basic Land — Mountain"}})

	drawn := h.session.Draw(SeatPlayer, 5)
	assert.Equal(t, 2, drawn)
	assert.Len(t, h.session.ZoneCards(SeatPlayer, ZoneHand), 2)
	assert.Empty(t, h.session.ZoneCards(SeatPlayer, ZoneLibrary))
	assert.Equal(t, 2, h.session.PlayerStats(SeatPlayer).CardsDrawn)
}

func TestZones_MillPastEmptyLibrary(t *testing.T) {
	h := NewSimHarness(t)
	h.LoadSmallDeck(SeatPlayer, []DeckEntry{{Name: "Island", Quantity: 3, Type: "Basic Land — Island"}})

	milled := h.session.Mill(SeatPlayer, 5)
	assert.Equal(t, 3, milled)
	assert.Empty(t, h.session.ZoneCards(SeatPlayer, ZoneLibrary))
	assert.Len(t, h.session.ZoneCards(SeatPlayer, ZoneGraveyard), 3)
}

func TestZones_ShuffleKeepsLibraryContents(t *testing.T) {
	h := NewSimHarness(t)
	h.LoadSmallDeck(SeatPlayer, testDeck(10, "Forest", "Llanowar Elves"))

	before := h.session.ZoneCards(SeatPlayer, ZoneLibrary)
	h.session.Shuffle(SeatPlayer)
	after := h.session.ZoneCards(SeatPlayer, ZoneLibrary)

	require.Len(t, after, len(before))
	seen := make(map[string]bool, len(before))
	for _, card := range before {
		seen[card.ID] = true
	}
	for _, card := range after {
		assert.True(t, seen[card.ID])
	}
}

func TestZones_MoveNotFoundIsSilentNoOp(t *testing.T) {
	h := NewSimHarness(t)
	id := h.AddCardToZone("Grizzly Bears", "Creature — Bear", SeatPlayer, ZoneHand)

	// Move it once, then repeat the same move to simulate a UI double-click.
	require.True(t, h.session.MoveCard(SeatPlayer, id, ZoneHand, ZoneGraveyard))
	assert.False(t, h.session.MoveCard(SeatPlayer, id, ZoneHand, ZoneGraveyard))
	h.AssertInZone(id, SeatPlayer, ZoneGraveyard)
}

func TestZones_MoveRoundTripPreservesIdentity(t *testing.T) {
	h := NewSimHarness(t)
	id := h.AddCardToZone("Grizzly Bears", "Creature — Bear", SeatPlayer, ZoneHand)

	card, ok := h.session.Card(id)
	require.True(t, ok)
	card.Counters.Add(counters.KindPlusOnePlusOne, 2)

	require.True(t, h.session.MoveCard(SeatPlayer, id, ZoneHand, ZoneGraveyard))
	require.True(t, h.session.MoveCard(SeatPlayer, id, ZoneGraveyard, ZoneHand))

	after, ok := h.session.Card(id)
	require.True(t, ok)
	assert.Equal(t, id, after.ID)
	assert.Equal(t, 2, after.Counters.Count(counters.KindPlusOnePlusOne))
	assert.Equal(t, 0, after.Damage)
	h.AssertInZone(id, SeatPlayer, ZoneHand)
}

func TestZones_BattlefieldClassification(t *testing.T) {
	tests := []struct {
		typeLine string
		row      PermanentRow
	}{
		{"Basic Land — Mountain", RowLands},
		{"Creature — Human Wizard", RowCreatures},
		{"Legendary Planeswalker — Jace", RowCreatures},
		{"Artifact", RowOthers},
		{"Enchantment — Aura", RowOthers},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.row, ClassifyPermanent(tt.typeLine), tt.typeLine)
	}
}

func TestZones_InstantMovedToBattlefieldResolvesToGraveyard(t *testing.T) {
	h := NewSimHarness(t)
	id := h.AddCardToZone("Lightning Bolt", "Instant", SeatPlayer, ZoneHand)

	require.True(t, h.session.MoveCard(SeatPlayer, id, ZoneHand, ZoneBattlefield))
	h.AssertInZone(id, SeatPlayer, ZoneGraveyard)
}

func TestZones_MoveToBattlefieldPicksRowByType(t *testing.T) {
	h := NewSimHarness(t)
	land := h.AddCardToZone("Mountain", "Basic Land — Mountain", SeatPlayer, ZoneHand)
	creature := h.AddCardToZone("Grizzly Bears", "Creature — Bear", SeatPlayer, ZoneHand)
	artifact := h.AddCardToZone("Sol Ring", "Artifact", SeatPlayer, ZoneHand)

	require.True(t, h.session.MoveCard(SeatPlayer, land, ZoneHand, ZoneBattlefield))
	require.True(t, h.session.MoveCard(SeatPlayer, creature, ZoneHand, ZoneBattlefield))
	require.True(t, h.session.MoveCard(SeatPlayer, artifact, ZoneHand, ZoneBattlefield))

	h.AssertInZone(land, SeatPlayer, ZoneLands)
	h.AssertInZone(creature, SeatPlayer, ZoneCreatures)
	h.AssertInZone(artifact, SeatPlayer, ZoneOthers)
}

func TestZones_CardCountConserved(t *testing.T) {
	h := NewSimHarness(t)
	h.LoadSmallDeck(SeatPlayer, testDeck(15, "Forest", "Grizzly Bears", "Llanowar Elves", "Giant Growth"))
	s := h.session

	require.Equal(t, 60, s.CardCount(SeatPlayer))

	s.Draw(SeatPlayer, 7)
	s.Mill(SeatPlayer, 5)
	s.DiscardRandom(SeatPlayer, 2)
	if cards := s.ZoneCards(SeatPlayer, ZoneHand); len(cards) > 0 {
		s.MoveCard(SeatPlayer, cards[0].ID, ZoneHand, ZoneBattlefield)
	}
	s.EndTurn()
	s.EndTurn()

	assert.Equal(t, 60, s.CardCount(SeatPlayer))

	// Tokens are a distinct class of instance and never count.
	s.CreateToken("Soldier 1/1", "Creature — Soldier", SeatPlayer, TokenOptions{})
	assert.Equal(t, 60, s.CardCount(SeatPlayer))
}
