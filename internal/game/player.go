package game

import "github.com/mtgsim/mtgsim/internal/game/mana"

// GameStats tracks per-player bookkeeping for one session.
type GameStats struct {
	Life        int
	CardsDrawn  int
	LandsPlayed int
	SpellsCast  int
	Mulligans   int
}

// PlayerState holds one seat's zones and bookkeeping. Zones store card IDs;
// the session's card registry owns the instances, so a move is an O(1)
// remove-then-insert of an ID, never a copy.
type PlayerState struct {
	Seat Seat
	Name string

	Library   []string // top of library = end of slice
	Hand      []string
	Lands     []string
	Creatures []string
	Others    []string
	Graveyard []string // most recent last
	Exile     []string

	Stats    GameStats
	ManaPool *mana.Pool

	// DeckSize is the card count of the loaded deck; the conservation
	// invariant checks all zones against it. Tokens are counted apart.
	DeckSize     int
	TokensMade   int
}

// newPlayerState creates an empty player state with the starting life total.
func newPlayerState(seat Seat, name string, startingLife int) *PlayerState {
	return &PlayerState{
		Seat:      seat,
		Name:      name,
		Library:   make([]string, 0),
		Hand:      make([]string, 0),
		Lands:     make([]string, 0),
		Creatures: make([]string, 0),
		Others:    make([]string, 0),
		Graveyard: make([]string, 0),
		Exile:     make([]string, 0),
		Stats:     GameStats{Life: startingLife},
		ManaPool:  mana.NewPool(),
	}
}

// zoneList returns a pointer to the ID list backing the named zone, or nil
// for unknown zones and the battlefield meta-zone.
func (p *PlayerState) zoneList(zone Zone) *[]string {
	switch zone {
	case ZoneLibrary:
		return &p.Library
	case ZoneHand:
		return &p.Hand
	case ZoneLands:
		return &p.Lands
	case ZoneCreatures:
		return &p.Creatures
	case ZoneOthers:
		return &p.Others
	case ZoneGraveyard:
		return &p.Graveyard
	case ZoneExile:
		return &p.Exile
	default:
		return nil
	}
}

// battlefieldIDs returns all battlefield rows flattened.
func (p *PlayerState) battlefieldIDs() []string {
	out := make([]string, 0, len(p.Lands)+len(p.Creatures)+len(p.Others))
	out = append(out, p.Lands...)
	out = append(out, p.Creatures...)
	out = append(out, p.Others...)
	return out
}

// cardCount returns the number of deck-backed cards across every zone,
// excluding tokens. The session passes its registry so token instances can
// be filtered out.
func (p *PlayerState) cardCount(registry map[string]*Card) int {
	count := 0
	zones := [][]string{p.Library, p.Hand, p.Lands, p.Creatures, p.Others, p.Graveyard, p.Exile}
	for _, zone := range zones {
		for _, id := range zone {
			if card, ok := registry[id]; ok && !card.Token {
				count++
			}
		}
	}
	return count
}
