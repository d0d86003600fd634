package game

import "strings"

// StatKind tags the strategy used to compute a card's power/toughness.
type StatKind int

const (
	// StatStatic uses the printed power/toughness.
	StatStatic StatKind = iota
	// StatGraveyardTypeCount models creatures whose power equals the number
	// of distinct card types among all graveyards and whose toughness is
	// that count plus one.
	StatGraveyardTypeCount
	// StatCustom delegates to an arbitrary computation.
	StatCustom
)

// StatStrategy computes a card's derived power/toughness. The strategy is
// looked up once at card-instance creation rather than re-dispatching on
// name/text substrings at every read.
type StatStrategy struct {
	Kind    StatKind
	Compute func(s *Session) (power, toughness int)
}

// graveyardCountCards names cards whose stats follow the
// distinct-graveyard-type-count rule.
var graveyardCountCards = map[string]bool{
	"tarmogoyf": true,
	"lhurgoyf":  false, // counts creatures only; not modeled, stays static
}

// resolveStatStrategy picks the stat strategy for a card at creation time.
func resolveStatStrategy(card *Card) StatStrategy {
	name := strings.ToLower(card.Name)
	if graveyardCountCards[name] {
		return StatStrategy{Kind: StatGraveyardTypeCount}
	}
	return StatStrategy{Kind: StatStatic}
}

// cardTypes is the set of card types counted by the graveyard-type rule.
var cardTypes = []string{
	"artifact",
	"creature",
	"enchantment",
	"instant",
	"land",
	"planeswalker",
	"sorcery",
	"tribal",
}

// GraveyardTypeCount scans both players' graveyards and returns the number
// of distinct card types present, matched case-insensitively against each
// card's type line.
func (s *Session) GraveyardTypeCount() int {
	present := make(map[string]bool)
	for _, seat := range s.seats {
		for _, id := range s.players[seat].Graveyard {
			card, ok := s.cards[id]
			if !ok {
				continue
			}
			lower := strings.ToLower(card.Type)
			for _, t := range cardTypes {
				if strings.Contains(lower, t) {
					present[t] = true
				}
			}
		}
	}
	return len(present)
}

// RecomputeStats refreshes the cached effective power/toughness of every
// card with a dynamic stat strategy. It is push-triggered by graveyard
// changes rather than polled.
func (s *Session) RecomputeStats() {
	typeCount := -1 // lazily computed once per recompute
	for _, card := range s.cards {
		switch card.Stats.Kind {
		case StatGraveyardTypeCount:
			if typeCount < 0 {
				typeCount = s.GraveyardTypeCount()
			}
			card.effPower = typeCount
			card.effToughness = typeCount + 1
		case StatCustom:
			if card.Stats.Compute != nil {
				card.effPower, card.effToughness = card.Stats.Compute(s)
			}
		}
	}
}
