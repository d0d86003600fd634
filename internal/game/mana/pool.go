package mana

import "sync"

// Color represents one of the six mana colors tracked by the pool.
type Color string

const (
	White     Color = "W"
	Blue      Color = "U"
	Black     Color = "B"
	Red       Color = "R"
	Green     Color = "G"
	Colorless Color = "C"
)

// Colors lists all pool colors in canonical WUBRGC order.
var Colors = []Color{White, Blue, Black, Red, Green, Colorless}

// Pool represents a player's mana pool. The simulator empties it coarsely
// at phase boundaries rather than at every step transition.
type Pool struct {
	mu      sync.RWMutex
	amounts map[Color]int
}

// NewPool creates a new empty mana pool.
func NewPool() *Pool {
	return &Pool{
		amounts: make(map[Color]int),
	}
}

// Add adds mana of the given color to the pool.
func (p *Pool) Add(color Color, amount int) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.amounts[color] += amount
}

// Amount returns the available mana of the given color.
func (p *Pool) Amount(color Color) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.amounts[color]
}

// Spend attempts to spend mana of the given color.
// Returns false without mutating the pool if insufficient mana is available.
func (p *Pool) Spend(color Color, amount int) bool {
	if amount <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.amounts[color] < amount {
		return false
	}
	p.amounts[color] -= amount
	if p.amounts[color] == 0 {
		delete(p.amounts, color)
	}
	return true
}

// Total returns the total mana count across all colors.
func (p *Pool) Total() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := 0
	for _, amount := range p.amounts {
		total += amount
	}
	return total
}

// Empty removes all mana from the pool.
func (p *Pool) Empty() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.amounts = make(map[Color]int)
}

// Snapshot returns a copy of the color -> amount mapping with every
// color present, zero or not.
func (p *Pool) Snapshot() map[Color]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[Color]int, len(Colors))
	for _, color := range Colors {
		out[color] = p.amounts[color]
	}
	return out
}

// Copy creates a deep copy of the mana pool.
func (p *Pool) Copy() *Pool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := NewPool()
	for color, amount := range p.amounts {
		out.amounts[color] = amount
	}
	return out
}
