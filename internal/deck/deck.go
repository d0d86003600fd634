// Package deck loads deck lists from disk and converts them into the
// entries the game engine consumes. Two formats are supported: an XML
// format compatible with common deck editors, and a plain YAML list.
package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mtgsim/mtgsim/internal/game"
)

// Deck is a parsed deck list.
type Deck struct {
	Name  string
	Cards []game.DeckEntry
}

// Size returns the total number of card copies in the deck.
func (d *Deck) Size() int {
	total := 0
	for _, entry := range d.Cards {
		total += entry.Quantity
	}
	return total
}

// Load parses a deck file, choosing the format from the file extension.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".dek":
		return ParseXML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported deck format %q", filepath.Ext(path))
	}
}

// ListDir returns the deck files in dir, sorted by name. Unsupported
// extensions are skipped.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read deck dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".xml", ".dek", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func validate(d *Deck) error {
	if len(d.Cards) == 0 {
		return fmt.Errorf("deck %q contains no cards", d.Name)
	}
	for _, entry := range d.Cards {
		if entry.Name == "" {
			return fmt.Errorf("deck %q contains a card with no name", d.Name)
		}
		if entry.Quantity < 1 {
			return fmt.Errorf("card %q has invalid quantity %d", entry.Name, entry.Quantity)
		}
	}
	return nil
}
