package events

import (
	"sync"
	"time"
)

// EventType indicates the category of a simulator event.
type EventType string

const (
	// Turn/phase events
	EventPhaseChanged  EventType = "PHASE_CHANGED"
	EventStepChanged   EventType = "STEP_CHANGED"
	EventTurnEnded     EventType = "TURN_ENDED"
	EventEmptyManaPool EventType = "EMPTY_MANA_POOL"

	// Zone events
	EventZoneChange       EventType = "ZONE_CHANGE"
	EventGraveyardChanged EventType = "GRAVEYARD_CHANGED"
	EventShuffleLibrary   EventType = "SHUFFLE_LIBRARY"

	// Card events
	EventDrewCard      EventType = "DREW_CARD"
	EventMilledCard    EventType = "MILLED_CARD"
	EventDiscardedCard EventType = "DISCARDED_CARD"
	EventCreatedToken  EventType = "CREATED_TOKEN"

	// Life events
	EventLifeChanged EventType = "LIFE_CHANGED"

	// Tap/untap events
	EventTapped   EventType = "TAPPED"
	EventUntapped EventType = "UNTAPPED"

	// Counter events
	EventCounterAdded   EventType = "COUNTER_ADDED"
	EventCounterRemoved EventType = "COUNTER_REMOVED"

	// Combat events
	EventAttackerDeclared    EventType = "ATTACKER_DECLARED"
	EventBlockerDeclared     EventType = "BLOCKER_DECLARED"
	EventCombatDamageApplied EventType = "COMBAT_DAMAGE_APPLIED"
	EventPermanentDies       EventType = "PERMANENT_DIES"

	// Stack events
	EventStackItemAdded    EventType = "STACK_ITEM_ADDED"
	EventStackItemResolved EventType = "STACK_ITEM_RESOLVED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type      EventType
	TargetID  string // ID of the card or object the event concerns
	PlayerID  string // Seat the event concerns
	Amount    int    // Numeric value (damage, life delta, counters, etc.)
	Data      string // Additional string data
	Timestamp time.Time
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// Bus provides a synchronous publish/subscribe implementation with type filtering.
type Bus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewBus constructs a fresh event bus instance.
func NewBus() *Bus {
	return &Bus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *Bus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *Bus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *Bus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *Bus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	if typed, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typed {
			listener.Callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, playerID string) Event {
	return Event{
		Type:      eventType,
		TargetID:  targetID,
		PlayerID:  playerID,
		Timestamp: time.Now(),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, playerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, playerID)
	evt.Amount = amount
	return evt
}
