package deck

import (
	"fmt"

	"github.com/mtgsim/mtgsim/internal/game"
	"gopkg.in/yaml.v3"
)

// yamlDeck mirrors the on-disk YAML deck structure:
//
//	name: Burn
//	cards:
//	  - name: Lightning Bolt
//	    quantity: 4
//	    type: Instant
//	    cost: "{R}"
//	    text: Lightning Bolt deals 3 damage to any target.
type yamlDeck struct {
	Name  string     `yaml:"name"`
	Cards []yamlCard `yaml:"cards"`
}

type yamlCard struct {
	Name      string `yaml:"name"`
	Quantity  int    `yaml:"quantity"`
	Type      string `yaml:"type"`
	Cost      string `yaml:"cost"`
	Text      string `yaml:"text"`
	Power     string `yaml:"power"`
	Toughness string `yaml:"toughness"`
}

// ParseYAML parses a YAML deck list.
func ParseYAML(data []byte) (*Deck, error) {
	var raw yamlDeck
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml deck: %w", err)
	}

	deck := &Deck{Name: raw.Name}
	for _, card := range raw.Cards {
		deck.Cards = append(deck.Cards, toEntry(card.Name, card.Quantity, card.Type, card.Cost, card.Text, card.Power, card.Toughness))
	}
	if err := validate(deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func toEntry(name string, quantity int, cardType, cost, text, power, toughness string) game.DeckEntry {
	return game.DeckEntry{
		Name:      name,
		Quantity:  quantity,
		Type:      cardType,
		Cost:      cost,
		RulesText: text,
		Power:     power,
		Toughness: toughness,
	}
}
