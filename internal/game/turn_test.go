package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgsim/mtgsim/internal/game/mana"
)

func TestTurn_PhaseProgressionOrder(t *testing.T) {
	h := NewSimHarness(t)
	s := h.session

	require.Equal(t, PhaseBeginning, s.Turn().Phase)
	s.AdvancePhase()
	assert.Equal(t, PhaseMain1, s.Turn().Phase)
	s.AdvancePhase()
	assert.Equal(t, PhaseCombat, s.Turn().Phase)

	// Step through combat: no attackers exits straight to main2.
	s.AdvancePhase() // declare-attackers
	s.AdvancePhase() // no attackers -> end-combat -> main2
	assert.Equal(t, PhaseMain2, s.Turn().Phase)

	s.AdvancePhase()
	assert.Equal(t, PhaseEnd, s.Turn().Phase)
}

func TestTurn_AdvanceInEndPhaseEndsTurn(t *testing.T) {
	h := NewSimHarness(t)
	s := h.session

	for s.Turn().Phase != PhaseEnd {
		s.AdvancePhase()
	}
	s.AdvancePhase()

	turn := s.Turn()
	assert.Equal(t, SeatOpponent, turn.ActivePlayer)
	assert.Equal(t, PhaseMain1, turn.Phase, "endTurn runs the beginning phase synchronously")
	assert.Equal(t, 1, turn.TurnNumber, "turn number bumps only when control returns to the player")
}

func TestTurn_TurnNumberIncrementsWhenPlayerRegainsTurn(t *testing.T) {
	h := NewSimHarness(t)
	s := h.session

	s.EndTurn() // player -> opponent
	assert.Equal(t, 1, s.Turn().TurnNumber)
	s.EndTurn() // opponent -> player
	turn := s.Turn()
	assert.Equal(t, 2, turn.TurnNumber)
	assert.Equal(t, SeatPlayer, turn.ActivePlayer)
	assert.False(t, turn.FirstTurn)
}

func TestTurn_TurnNumberNeverDecreases(t *testing.T) {
	h := NewSimHarness(t)
	s := h.session

	last := s.Turn().TurnNumber
	for i := 0; i < 10; i++ {
		s.EndTurn()
		current := s.Turn().TurnNumber
		require.GreaterOrEqual(t, current, last)
		last = current
	}
	assert.Equal(t, 6, last)
}

func TestTurn_FirstTurnSkipsDraw(t *testing.T) {
	h := NewSimHarness(t)
	h.LoadSmallDeck(SeatPlayer, testDeck(30, "Forest", "Grizzly Bears"))
	h.LoadSmallDeck(SeatOpponent, testDeck(30, "Forest", "Grizzly Bears"))
	s := h.session

	require.True(t, s.Turn().FirstTurn)

	// Opponent's turn begins: not the first turn, so they draw.
	s.EndTurn()
	assert.Equal(t, 1, s.PlayerStats(SeatOpponent).CardsDrawn)

	// Back to the player: turn 2, they draw as well.
	s.EndTurn()
	assert.Equal(t, 1, s.PlayerStats(SeatPlayer).CardsDrawn)
	assert.False(t, s.Turn().FirstTurn)
}

func TestTurn_UntapStepUntapsOnlyNewActivePlayer(t *testing.T) {
	h := NewSimHarness(t)
	mine := h.AddCreature(CreatureSpec{Name: "Grizzly Bears", Power: "2", Toughness: "2", Seat: SeatPlayer, Tapped: true})
	theirs := h.AddCreature(CreatureSpec{Name: "Runeclaw Bear", Power: "2", Toughness: "2", Seat: SeatOpponent, Tapped: true})

	h.session.EndTurn() // opponent becomes active and untaps

	mineCard, _ := h.session.Card(mine)
	theirsCard, _ := h.session.Card(theirs)
	assert.True(t, mineCard.Tapped, "non-active player's permanents stay tapped")
	assert.False(t, theirsCard.Tapped)
}

func TestTurn_ManaPoolClearedLeavingMain1AndCombat(t *testing.T) {
	h := NewSimHarness(t)
	s := h.session
	s.AdvancePhase() // -> main1

	s.AddMana(SeatPlayer, mana.Red, 2)
	require.Equal(t, 2, s.ManaPool(SeatPlayer).Total())

	s.AdvancePhase() // leaving main1 empties the pool
	assert.Equal(t, 0, s.ManaPool(SeatPlayer).Total())

	s.AddMana(SeatPlayer, mana.Green, 1)
	s.AdvancePhase() // declare-attackers
	s.AdvancePhase() // no attackers -> exits combat to main2
	assert.Equal(t, 0, s.ManaPool(SeatPlayer).Total(), "pool empties when combat ends")
}

func TestTurn_EndTurnClearsManaPool(t *testing.T) {
	h := NewSimHarness(t)
	s := h.session
	s.AddMana(SeatPlayer, mana.Blue, 3)

	s.EndTurn()
	assert.Equal(t, 0, s.ManaPool(SeatPlayer).Total())
}

func TestTurn_ProgressionNeverFailsWhenLibraryEmpty(t *testing.T) {
	h := NewSimHarness(t)
	s := h.session

	// No deck loaded: draws during turn handoff find an empty library and
	// must degrade to a logged no-op.
	for i := 0; i < 8; i++ {
		s.AdvancePhase()
	}
	assert.Equal(t, 0, s.PlayerStats(SeatOpponent).CardsDrawn)
}
