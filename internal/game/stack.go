package game

import "errors"

// StackItem represents a single object on the stack. The simulator records
// cast spells here but does not drive full resolution with priority
// passing; resolution is an explicit user action.
type StackItem struct {
	ID          string
	CardID      string
	Controller  Seat
	Description string
}

// Stack holds spells waiting to resolve, topmost last.
type Stack struct {
	items []StackItem
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{
		items: make([]StackItem, 0, 8),
	}
}

// Push adds an item to the top of the stack.
func (st *Stack) Push(item StackItem) {
	st.items = append(st.items, item)
}

// Pop removes the top item from the stack.
func (st *Stack) Pop() (StackItem, error) {
	if len(st.items) == 0 {
		return StackItem{}, errors.New("stack empty")
	}
	idx := len(st.items) - 1
	item := st.items[idx]
	st.items = st.items[:idx]
	return item, nil
}

// Peek returns the top item without removing it.
func (st *Stack) Peek() (StackItem, bool) {
	if len(st.items) == 0 {
		return StackItem{}, false
	}
	return st.items[len(st.items)-1], true
}

// DropController removes every item controlled by the seat, keeping the
// rest in order, and returns the removed items.
func (st *Stack) DropController(seat Seat) []StackItem {
	kept := st.items[:0]
	var removed []StackItem
	for _, item := range st.items {
		if item.Controller == seat {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	st.items = kept
	return removed
}

// List returns a copy of all stack items, topmost last.
func (st *Stack) List() []StackItem {
	out := make([]StackItem, len(st.items))
	copy(out, st.items)
	return out
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.items)
}
