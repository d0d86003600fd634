package game

import "time"

// defaultMaxLogEntries caps the game log; insertion evicts the oldest entry.
const defaultMaxLogEntries = 50

// LogEntryType distinguishes machine-driven log entries from player actions.
type LogEntryType string

const (
	LogAuto   LogEntryType = "auto"
	LogManual LogEntryType = "manual"
)

// LogEntry is an immutable record of one game action.
type LogEntry struct {
	Timestamp  time.Time
	Player     string
	Text       string
	Type       LogEntryType
	TurnNumber int
	Phase      Phase
}

// GameLog is a bounded, newest-first action log. It is intentionally a
// simple ring buffer with no query capability beyond a tail read.
type GameLog struct {
	max     int
	entries []LogEntry
}

// NewGameLog creates a game log capped at max entries; a non-positive max
// falls back to the default cap.
func NewGameLog(max int) *GameLog {
	if max <= 0 {
		max = defaultMaxLogEntries
	}
	return &GameLog{
		max:     max,
		entries: make([]LogEntry, 0, max),
	}
}

// Add prepends a new entry and truncates the log to its cap by dropping
// from the tail.
func (l *GameLog) Add(entry LogEntry) {
	l.entries = append([]LogEntry{entry}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

// Tail returns up to n of the most recent entries, newest first.
func (l *GameLog) Tail(n int) []LogEntry {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]LogEntry, n)
	copy(out, l.entries[:n])
	return out
}

// Len returns the number of retained entries.
func (l *GameLog) Len() int {
	return len(l.entries)
}
