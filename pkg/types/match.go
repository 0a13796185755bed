package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Match is a single text-expansion rule: typing the trigger expands to the
// replacement text.
type Match struct {
	Trigger string `yaml:"trigger"`
	Replace string `yaml:"replace"`
}

// String returns a human-readable representation
func (m Match) String() string {
	return fmt.Sprintf("%s -> %s", m.Trigger, m.Replace)
}

// Contains reports whether the query appears in the trigger or the
// replacement, case-insensitively. An empty query always matches.
func (m Match) Contains(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.Trigger), q) ||
		strings.Contains(strings.ToLower(m.Replace), q)
}

// Entry is a Match with a stable identity assigned at load time. The ID is
// session-local and never persisted; it lets the UI address an entry through
// a filtered view without relying on positions.
type Entry struct {
	ID uuid.UUID
	Match
}

// NewEntry wraps a match with a fresh identity.
func NewEntry(m Match) Entry {
	return Entry{ID: uuid.New(), Match: m}
}
