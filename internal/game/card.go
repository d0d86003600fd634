package game

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mtgsim/mtgsim/internal/game/counters"
)

// Seat identifies one side of the table.
type Seat string

const (
	SeatPlayer   Seat = "player"
	SeatOpponent Seat = "opponent"
)

// Opponent returns the other seat.
func (s Seat) Opponent() Seat {
	if s == SeatPlayer {
		return SeatOpponent
	}
	return SeatPlayer
}

// Zone names a container for card instances. The battlefield is addressed
// through its rows; ZoneBattlefield is accepted as a move destination and
// resolved to a row by the type-line classifier.
type Zone string

const (
	ZoneLibrary     Zone = "library"
	ZoneHand        Zone = "hand"
	ZoneBattlefield Zone = "battlefield"
	ZoneLands       Zone = "lands"
	ZoneCreatures   Zone = "creatures"
	ZoneOthers      Zone = "others"
	ZoneGraveyard   Zone = "graveyard"
	ZoneExile       Zone = "exile"
	ZoneStack       Zone = "stack"
)

// PermanentRow is the battlefield row a permanent rests in.
type PermanentRow int

const (
	RowLands PermanentRow = iota
	RowCreatures
	RowOthers
)

// Zone returns the zone name of the battlefield row.
func (r PermanentRow) Zone() Zone {
	switch r {
	case RowLands:
		return ZoneLands
	case RowCreatures:
		return ZoneCreatures
	default:
		return ZoneOthers
	}
}

// ClassifyPermanent maps a raw type line to the battlefield row a permanent
// of that type rests in. Planeswalkers share the creatures row; instants and
// sorceries never rest on the battlefield and resolve to the graveyard
// (callers handle that before asking for a row).
func ClassifyPermanent(typeLine string) PermanentRow {
	lower := strings.ToLower(typeLine)
	switch {
	case strings.Contains(lower, "land"):
		return RowLands
	case strings.Contains(lower, "creature"), strings.Contains(lower, "planeswalker"):
		return RowCreatures
	default:
		return RowOthers
	}
}

// IsSpellOnly reports whether a card of this type line resolves directly to
// the graveyard rather than entering the battlefield.
func IsSpellOnly(typeLine string) bool {
	lower := strings.ToLower(typeLine)
	return strings.Contains(lower, "instant") || strings.Contains(lower, "sorcery")
}

// Card represents a concrete copy of a card in some zone. Instances are
// created at deck load (one per copy) or by token creation, and live for
// the session; in-game "destruction" is a move to graveyard or exile.
type Card struct {
	ID        string
	Name      string
	ManaCost  string
	Type      string
	RulesText string
	Power     string
	Toughness string
	ImageURL  string

	Tapped        bool
	SummoningSick bool
	Damage        int
	Token         bool
	Counters      *counters.Counters

	// Stats is resolved once at instance creation; dynamic strategies are
	// recomputed through the session whenever a graveyard changes.
	Stats StatStrategy

	// Cached effective power/toughness, refreshed by RecomputeStats.
	effPower     int
	effToughness int
}

// NewCard creates a deck-backed card instance.
func NewCard(name, manaCost, typeLine, rulesText, power, toughness string) *Card {
	card := &Card{
		ID:        uuid.NewString(),
		Name:      name,
		ManaCost:  manaCost,
		Type:      typeLine,
		RulesText: rulesText,
		Power:     power,
		Toughness: toughness,
		Counters:  counters.New(),
	}
	card.Stats = resolveStatStrategy(card)
	card.effPower = parsePowerValue(power)
	card.effToughness = parseToughnessValue(toughness)
	return card
}

var tokenStatsPattern = regexp.MustCompile(`(\d+)/(\d+)`)

// NewToken creates a synthetic card instance with no deck backing.
// Power/toughness are parsed out of the token name when present
// (e.g. "Soldier 1/1").
func NewToken(name, typeLine string) *Card {
	power, toughness := "", ""
	if m := tokenStatsPattern.FindStringSubmatch(name); m != nil {
		power, toughness = m[1], m[2]
	}
	card := NewCard(name, "", typeLine, "", power, toughness)
	card.Token = true
	return card
}

// IsCreature reports whether the card's type line contains "creature".
func (c *Card) IsCreature() bool {
	return strings.Contains(strings.ToLower(c.Type), "creature")
}

// EffectivePower returns the card's current power after dynamic stats,
// boost counters, and the variable-stat floor rule.
func (c *Card) EffectivePower() int {
	boost, _ := c.Counters.Boost()
	return c.effPower + boost
}

// EffectiveToughness returns the card's current toughness after dynamic
// stats, boost counters, and the variable-stat floor rule.
func (c *Card) EffectiveToughness() int {
	_, boost := c.Counters.Boost()
	return c.effToughness + boost
}

// parsePowerValue resolves a printed power string. "*" floors to 0 and
// "N+*" takes the leading integer.
func parsePowerValue(s string) int {
	return parseVariableStat(s, 0)
}

// parseToughnessValue resolves a printed toughness string. "*" floors to 1
// and "N+*" takes the leading integer.
func parseToughnessValue(s string) int {
	return parseVariableStat(s, 1)
}

func parseVariableStat(s string, floor int) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return floor
	}
	if idx := strings.Index(s, "+"); idx > 0 {
		if n, err := strconv.Atoi(s[:idx]); err == nil {
			return n
		}
		return floor
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return floor
}
