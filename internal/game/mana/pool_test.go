package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_AddAndAmount(t *testing.T) {
	p := NewPool()
	p.Add(Red, 2)
	p.Add(Red, 1)
	p.Add(Colorless, 4)
	p.Add(Green, -1) // ignored

	assert.Equal(t, 3, p.Amount(Red))
	assert.Equal(t, 4, p.Amount(Colorless))
	assert.Equal(t, 0, p.Amount(Green))
	assert.Equal(t, 7, p.Total())
}

func TestPool_SpendInsufficientLeavesPoolUntouched(t *testing.T) {
	p := NewPool()
	p.Add(Blue, 2)

	require.False(t, p.Spend(Blue, 3))
	assert.Equal(t, 2, p.Amount(Blue))

	require.True(t, p.Spend(Blue, 2))
	assert.Equal(t, 0, p.Amount(Blue))
}

func TestPool_Empty(t *testing.T) {
	p := NewPool()
	for _, color := range Colors {
		p.Add(color, 1)
	}
	require.Equal(t, 6, p.Total())

	p.Empty()
	assert.Equal(t, 0, p.Total())
}

func TestPool_SnapshotIncludesAllColors(t *testing.T) {
	p := NewPool()
	p.Add(White, 2)

	snap := p.Snapshot()
	assert.Len(t, snap, 6)
	assert.Equal(t, 2, snap[White])
	assert.Equal(t, 0, snap[Black])
}

func TestPool_CopyIsIndependent(t *testing.T) {
	p := NewPool()
	p.Add(Green, 3)

	clone := p.Copy()
	clone.Add(Green, 2)
	assert.Equal(t, 3, p.Amount(Green))
	assert.Equal(t, 5, clone.Amount(Green))
}
