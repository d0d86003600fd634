package game

import (
	"fmt"

	"github.com/mtgsim/mtgsim/internal/game/events"
	"go.uber.org/zap"
)

// CombatStep represents the steps of the combat sub-machine.
type CombatStep int

const (
	CombatNone CombatStep = iota
	CombatBegin
	CombatDeclareAttackers
	CombatDeclareBlockers
	CombatDamage
	CombatEnd
)

var combatStepNames = map[CombatStep]string{
	CombatNone:             "none",
	CombatBegin:            "beginning-combat",
	CombatDeclareAttackers: "declare-attackers",
	CombatDeclareBlockers:  "declare-blockers",
	CombatDamage:           "combat-damage",
	CombatEnd:              "end-combat",
}

func (cs CombatStep) String() string {
	if name, ok := combatStepNames[cs]; ok {
		return name
	}
	return fmt.Sprintf("combat_step_%d", int(cs))
}

// AttackerEntry records one declared attacker with a power/toughness
// snapshot taken at declaration time.
type AttackerEntry struct {
	CardID    string
	Seat      Seat
	Power     int
	Toughness int
}

// BlockerEntry assigns one blocker to one attacker. A blocker may block at
// most one attacker; an attacker may have any number of blockers.
type BlockerEntry struct {
	AttackerID string
	CardID     string
	Seat       Seat
}

// CombatState is the nested state machine's bookkeeping, valid only while
// the turn is in the combat phase. It is reset whenever combat ends or a
// new turn begins.
type CombatState struct {
	Step               CombatStep
	Attackers          []AttackerEntry
	Blockers           []BlockerEntry
	SelectingAttackers bool
	SelectingBlockers  bool
}

// newCombatState returns the idle combat state.
func newCombatState() CombatState {
	return CombatState{
		Step:      CombatNone,
		Attackers: make([]AttackerEntry, 0),
		Blockers:  make([]BlockerEntry, 0),
	}
}

// beginCombat initializes the sub-machine when the turn machine enters the
// combat phase.
func (s *Session) beginCombat() {
	s.combat = newCombatState()
	s.combat.Step = CombatBegin
	s.setStep(StepBeginCombat)
	s.logAuto("Beginning of combat", s.turn.ActivePlayer)
}

// advanceCombat moves the sub-machine forward one step, returning true when
// combat has ended and control should return to the turn machine at main2.
func (s *Session) advanceCombat() bool {
	switch s.combat.Step {
	case CombatNone:
		s.beginCombat()
	case CombatBegin:
		s.combat.Step = CombatDeclareAttackers
		s.combat.SelectingAttackers = true
		s.setStep(StepDeclareAttackers)
		s.logAuto("Declare attackers", s.turn.ActivePlayer)
	case CombatDeclareAttackers:
		s.finalizeAttackers()
		if len(s.combat.Attackers) == 0 {
			// No attackers: blockers and damage have nothing to resolve.
			s.logAuto("No attackers declared", s.turn.ActivePlayer)
			s.endCombat()
			return true
		}
		s.combat.Step = CombatDeclareBlockers
		s.combat.SelectingBlockers = true
		s.setStep(StepDeclareBlockers)
		s.logAuto("Declare blockers", s.turn.ActivePlayer)
	case CombatDeclareBlockers:
		s.combat.SelectingBlockers = false
		s.combat.Step = CombatDamage
		s.setStep(StepCombatDamage)
		s.resolveCombatDamage()
	case CombatDamage:
		s.endCombat()
		return true
	case CombatEnd:
		return true
	}
	return false
}

// ToggleAttacker adds or removes a creature from the declared attackers.
// Tapped and summoning-sick creatures are rejected with no mutation; the
// rejection is reported to the caller rather than raised.
func (s *Session) ToggleAttacker(cardID string) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.combat.Step != CombatDeclareAttackers || !s.combat.SelectingAttackers {
		return rejected("Attackers can only be declared during the declare-attackers step")
	}

	for i, entry := range s.combat.Attackers {
		if entry.CardID == cardID {
			s.combat.Attackers = append(s.combat.Attackers[:i], s.combat.Attackers[i+1:]...)
			return okResult("Attacker removed")
		}
	}

	card, seat, row, found := s.findOnBattlefield(cardID)
	if !found || row != ZoneCreatures {
		s.logger.Error("attacker not found on battlefield", zap.String("card_id", cardID))
		return rejected("That creature is not on the battlefield")
	}
	if seat != s.turn.ActivePlayer {
		return rejected("Only the active player's creatures can attack")
	}
	if card.Tapped {
		return rejected(fmt.Sprintf("%s is tapped and cannot attack", card.Name))
	}
	if card.SummoningSick {
		return rejected(fmt.Sprintf("%s has summoning sickness", card.Name))
	}

	s.combat.Attackers = append(s.combat.Attackers, AttackerEntry{
		CardID:    cardID,
		Seat:      seat,
		Power:     card.EffectivePower(),
		Toughness: card.EffectiveToughness(),
	})
	s.bus.Publish(events.NewEvent(events.EventAttackerDeclared, cardID, string(seat)))
	return okResult(fmt.Sprintf("%s attacks", card.Name))
}

// ToggleBlocker assigns or unassigns a blocker for the given attacker.
func (s *Session) ToggleBlocker(attackerID, blockerID string) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.combat.Step != CombatDeclareBlockers || !s.combat.SelectingBlockers {
		return rejected("Blockers can only be declared during the declare-blockers step")
	}

	for i, entry := range s.combat.Blockers {
		if entry.CardID == blockerID {
			if entry.AttackerID == attackerID {
				s.combat.Blockers = append(s.combat.Blockers[:i], s.combat.Blockers[i+1:]...)
				return okResult("Blocker removed")
			}
			// A blocker blocks at most one attacker.
			return rejected("That creature is already blocking another attacker")
		}
	}

	if !s.isDeclaredAttacker(attackerID) {
		return rejected("That creature is not attacking")
	}

	card, seat, row, found := s.findOnBattlefield(blockerID)
	if !found || row != ZoneCreatures {
		s.logger.Error("blocker not found on battlefield", zap.String("card_id", blockerID))
		return rejected("That creature is not on the battlefield")
	}
	if seat == s.turn.ActivePlayer {
		return rejected("The attacking player's creatures cannot block")
	}
	if card.Tapped {
		return rejected(fmt.Sprintf("%s is tapped and cannot block", card.Name))
	}

	s.combat.Blockers = append(s.combat.Blockers, BlockerEntry{
		AttackerID: attackerID,
		CardID:     blockerID,
		Seat:       seat,
	})
	s.bus.Publish(events.NewEvent(events.EventBlockerDeclared, blockerID, string(seat)))
	return okResult(fmt.Sprintf("%s blocks", card.Name))
}

// isDeclaredAttacker reports whether the card is among the declared attackers.
func (s *Session) isDeclaredAttacker(cardID string) bool {
	for _, entry := range s.combat.Attackers {
		if entry.CardID == cardID {
			return true
		}
	}
	return false
}

// finalizeAttackers taps every declared attacker and closes attacker
// selection.
func (s *Session) finalizeAttackers() {
	s.combat.SelectingAttackers = false
	for _, entry := range s.combat.Attackers {
		if card, ok := s.cards[entry.CardID]; ok {
			card.Tapped = true
		}
	}
	if n := len(s.combat.Attackers); n > 0 {
		s.logAuto(fmt.Sprintf("%d attacker(s) declared", n), s.turn.ActivePlayer)
	}
}

// resolveCombatDamage applies combat damage. An unblocked attacker's power
// hits the defending player. Blocked combat deals the attacker's full power
// to each blocker individually and every blocker's full power back to the
// attacker; this intentionally preserves the simulator's non-divided damage
// model. Creatures whose accumulated damage reaches their toughness are
// destroyed.
func (s *Session) resolveCombatDamage() {
	defender := s.turn.ActivePlayer.Opponent()

	for _, attacker := range s.combat.Attackers {
		attackerCard, ok := s.cards[attacker.CardID]
		if !ok {
			continue
		}
		blockers := s.blockersOf(attacker.CardID)

		if len(blockers) == 0 {
			power := attackerCard.EffectivePower()
			s.players[defender].Stats.Life -= power
			s.bus.Publish(events.NewEventWithAmount(events.EventCombatDamageApplied, attacker.CardID, string(defender), power))
			s.logAuto(fmt.Sprintf("%s deals %d damage to %s", attackerCard.Name, power, seatLabel(defender)), s.turn.ActivePlayer)
			continue
		}

		for _, blocker := range blockers {
			blockerCard, ok := s.cards[blocker.CardID]
			if !ok {
				continue
			}
			blockerCard.Damage += attackerCard.EffectivePower()
			attackerCard.Damage += blockerCard.EffectivePower()
			s.logAuto(fmt.Sprintf("%s and %s trade combat damage", attackerCard.Name, blockerCard.Name), s.turn.ActivePlayer)
		}
	}

	// Destruction check: damage >= toughness at the end of combat-damage.
	s.destroyDamaged()
	s.logAuto("Combat damage resolved", s.turn.ActivePlayer)
}

// blockersOf returns the blocker entries assigned to the attacker.
func (s *Session) blockersOf(attackerID string) []BlockerEntry {
	var out []BlockerEntry
	for _, entry := range s.combat.Blockers {
		if entry.AttackerID == attackerID {
			out = append(out, entry)
		}
	}
	return out
}

// destroyDamaged moves every creature with lethal damage to its
// controller's graveyard.
func (s *Session) destroyDamaged() {
	for _, seat := range s.seats {
		player := s.players[seat]
		// Collect first: moving mutates the row being scanned.
		var dead []string
		for _, id := range player.Creatures {
			card, ok := s.cards[id]
			if !ok {
				continue
			}
			if card.Damage >= card.EffectiveToughness() {
				dead = append(dead, id)
			}
		}
		for _, id := range dead {
			card := s.cards[id]
			s.moveCardLocked(seat, id, ZoneCreatures, ZoneGraveyard)
			s.bus.Publish(events.NewEvent(events.EventPermanentDies, id, string(seat)))
			s.logAuto(fmt.Sprintf("%s is destroyed", card.Name), seat)
		}
	}
}

// endCombat clears marked damage on every creature on both battlefields,
// resets selection state, and signals the turn machine to resume at main2.
func (s *Session) endCombat() {
	s.combat.Step = CombatEnd
	s.setStep(StepEndCombat)
	for _, card := range s.cards {
		card.Damage = 0
	}
	s.combat.SelectingAttackers = false
	s.combat.SelectingBlockers = false
	s.logAuto("End of combat", s.turn.ActivePlayer)
}

// resetCombat returns the sub-machine to its idle state.
func (s *Session) resetCombat() {
	s.combat = newCombatState()
}
