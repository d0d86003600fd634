package game

import (
	"fmt"

	"github.com/mtgsim/mtgsim/internal/game/events"
)

// Phase represents the broad phases of a turn.
type Phase int

const (
	PhaseBeginning Phase = iota
	PhaseMain1
	PhaseCombat
	PhaseMain2
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseBeginning: "beginning",
	PhaseMain1:     "main1",
	PhaseCombat:    "combat",
	PhaseMain2:     "main2",
	PhaseEnd:       "end",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase_%d", int(p))
}

// Step represents the steps within a phase.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain
	StepBeginCombat
	StepDeclareAttackers
	StepDeclareBlockers
	StepCombatDamage
	StepEndCombat
	StepEnd
	StepCleanup
)

var stepNames = map[Step]string{
	StepUntap:            "untap",
	StepUpkeep:           "upkeep",
	StepDraw:             "draw",
	StepMain:             "main",
	StepBeginCombat:      "beginning-combat",
	StepDeclareAttackers: "declare-attackers",
	StepDeclareBlockers:  "declare-blockers",
	StepCombatDamage:     "combat-damage",
	StepEndCombat:        "end-combat",
	StepEnd:              "end",
	StepCleanup:          "cleanup",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step_%d", int(s))
}

// phaseSteps lists the ordered steps of each phase.
var phaseSteps = map[Phase][]Step{
	PhaseBeginning: {StepUntap, StepUpkeep, StepDraw},
	PhaseMain1:     {StepMain},
	PhaseCombat:    {StepBeginCombat, StepDeclareAttackers, StepDeclareBlockers, StepCombatDamage, StepEndCombat},
	PhaseMain2:     {StepMain},
	PhaseEnd:       {StepEnd, StepCleanup},
}

// TurnState tracks the active player and phase/step progression for one
// session. It is reset whenever a deck is loaded.
type TurnState struct {
	ActivePlayer Seat
	Phase        Phase
	Step         Step
	TurnNumber   int
	FirstTurn    bool
}

// newTurnState initializes turn 1 at the untap step for the given seat.
func newTurnState(active Seat) TurnState {
	return TurnState{
		ActivePlayer: active,
		Phase:        PhaseBeginning,
		Step:         StepUntap,
		TurnNumber:   1,
		FirstTurn:    active == SeatPlayer,
	}
}

// AdvancePhase moves forward exactly one phase, following the turn order.
// Inside combat it steps the combat sub-machine instead, regaining control
// only when combat signals exit. Phase progression is a total function:
// advancing past the end phase wraps through EndTurn and never fails.
func (s *Session) AdvancePhase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advancePhaseLocked()
}

func (s *Session) advancePhaseLocked() {
	switch s.turn.Phase {
	case PhaseBeginning:
		s.enterPhase(PhaseMain1, StepMain)
	case PhaseMain1:
		// Mana empties between phases, applied coarsely at this boundary.
		s.emptyManaPool(s.turn.ActivePlayer)
		s.enterPhase(PhaseCombat, StepBeginCombat)
		s.beginCombat()
	case PhaseCombat:
		if exited := s.advanceCombat(); exited {
			s.resetCombat()
			s.emptyManaPool(s.turn.ActivePlayer)
			s.enterPhase(PhaseMain2, StepMain)
		}
	case PhaseMain2:
		s.enterPhase(PhaseEnd, StepEnd)
	case PhaseEnd:
		s.endTurnLocked()
	}
}

// EndTurn hands the turn to the other seat and synchronously runs the new
// active player's beginning phase, leaving the session in main1.
func (s *Session) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endTurnLocked()
}

func (s *Session) endTurnLocked() {
	s.resetCombat()
	s.emptyManaPool(s.turn.ActivePlayer)

	next := s.turn.ActivePlayer.Opponent()
	s.turn.ActivePlayer = next
	if next == SeatPlayer {
		s.turn.TurnNumber++
	}
	s.turn.FirstTurn = s.turn.TurnNumber == 1 && next == SeatPlayer
	s.turn.Phase = PhaseBeginning
	s.turn.Step = StepUntap

	s.bus.Publish(events.NewEvent(events.EventTurnEnded, "", string(next)))
	s.logAuto(fmt.Sprintf("Turn %d: %s's turn begins", s.turn.TurnNumber, seatLabel(next)), next)

	// Untap step: only the new active player's permanents untap.
	s.untapAllLocked(next)
	s.logAuto("Untap step", next)

	// Upkeep step: currently a no-op hook.
	s.turn.Step = StepUpkeep
	s.logAuto("Upkeep step", next)

	// Draw step: skipped exactly once, on the game's first turn.
	s.turn.Step = StepDraw
	if s.turn.FirstTurn {
		s.logAuto("Draw step skipped (first turn)", next)
	} else {
		drawn := s.drawLocked(next, 1)
		if drawn == 0 {
			s.logAuto("Draw step: library is empty", next)
		} else {
			s.logAuto("Draw step: drew a card", next)
		}
	}

	s.enterPhase(PhaseMain1, StepMain)
}

// enterPhase sets the phase and step and publishes/logs the transition.
func (s *Session) enterPhase(phase Phase, step Step) {
	s.turn.Phase = phase
	s.turn.Step = step
	s.bus.Publish(events.NewEvent(events.EventPhaseChanged, "", string(s.turn.ActivePlayer)))
	s.logAuto(fmt.Sprintf("Phase: %s", phase), s.turn.ActivePlayer)
}

// SetStep records a step change within the current phase. Steps outside the
// current phase's step list are ignored.
func (s *Session) setStep(step Step) {
	for _, candidate := range phaseSteps[s.turn.Phase] {
		if candidate == step {
			s.turn.Step = step
			return
		}
	}
}
