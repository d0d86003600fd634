package counters

// Kind identifies a kind of counter a permanent or player can carry.
type Kind string

const (
	KindPlusOnePlusOne   Kind = "+1/+1"
	KindMinusOneMinusOne Kind = "-1/-1"
	KindLoyalty          Kind = "loyalty"
	KindPoison           Kind = "poison"
	KindCharge           Kind = "charge"
)

// String returns the string representation of the counter kind.
func (k Kind) String() string {
	return string(k)
}

// Counters manages the counters on a single card instance.
// Absence of a key means zero counters of that kind; a kind whose count
// drops to zero is removed from the map entirely.
type Counters struct {
	counts map[Kind]int
}

// New creates an empty counter collection.
func New() *Counters {
	return &Counters{
		counts: make(map[Kind]int),
	}
}

// Add adds amount counters of the given kind.
func (cs *Counters) Add(kind Kind, amount int) {
	if amount <= 0 {
		return
	}
	cs.counts[kind] += amount
}

// Remove removes up to amount counters of the given kind, deleting the
// kind once no counters of it remain. Returns true if any were removed.
func (cs *Counters) Remove(kind Kind, amount int) bool {
	if amount <= 0 {
		return false
	}
	count, ok := cs.counts[kind]
	if !ok {
		return false
	}
	count -= amount
	if count <= 0 {
		delete(cs.counts, kind)
	} else {
		cs.counts[kind] = count
	}
	return true
}

// Count returns the number of counters of the given kind.
func (cs *Counters) Count(kind Kind) int {
	return cs.counts[kind]
}

// Has returns true if at least one counter of the given kind is present.
func (cs *Counters) Has(kind Kind) bool {
	return cs.counts[kind] > 0
}

// Total returns the total number of counters across all kinds.
func (cs *Counters) Total() int {
	total := 0
	for _, count := range cs.counts {
		total += count
	}
	return total
}

// All returns a copy of the kind -> count mapping.
func (cs *Counters) All() map[Kind]int {
	out := make(map[Kind]int, len(cs.counts))
	for kind, count := range cs.counts {
		out[kind] = count
	}
	return out
}

// Boost returns the aggregate power/toughness adjustment contributed by
// boost counters such as "+1/+1" and "-1/-1".
func (cs *Counters) Boost() (power, toughness int) {
	for kind, count := range cs.counts {
		p, t, ok := parseBoostKind(string(kind))
		if !ok {
			continue
		}
		power += p * count
		toughness += t * count
	}
	return power, toughness
}

// Copy creates a deep copy of the counter collection.
func (cs *Counters) Copy() *Counters {
	out := New()
	for kind, count := range cs.counts {
		out.counts[kind] = count
	}
	return out
}

// parseBoostKind parses a boost counter name such as "+1/+1" or "-2/-2"
// into its power/toughness deltas.
func parseBoostKind(name string) (int, int, bool) {
	sep := -1
	for i := 0; i < len(name); i++ {
		if name[i] == '/' {
			sep = i
			break
		}
	}
	if sep <= 0 || sep == len(name)-1 {
		return 0, 0, false
	}
	power, ok := parseSignedValue(name[:sep])
	if !ok {
		return 0, 0, false
	}
	toughness, ok := parseSignedValue(name[sep+1:])
	if !ok {
		return 0, 0, false
	}
	return power, toughness, true
}

func parseSignedValue(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	negative := false
	start := 0
	switch s[0] {
	case '+':
		start = 1
	case '-':
		negative = true
		start = 1
	}
	if start >= len(s) {
		return 0, false
	}
	value := 0
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		value = value*10 + int(s[i]-'0')
	}
	if negative {
		value = -value
	}
	return value, true
}
