package deck

import (
	"encoding/xml"
	"fmt"
)

// xmlDeck mirrors the on-disk XML deck structure:
//
//	<deck name="Burn">
//	  <card quantity="4" name="Lightning Bolt" type="Instant" cost="{R}"
//	        text="Lightning Bolt deals 3 damage to any target."/>
//	  <card quantity="20" name="Mountain" type="Basic Land - Mountain"/>
//	</deck>
type xmlDeck struct {
	XMLName xml.Name  `xml:"deck"`
	Name    string    `xml:"name,attr"`
	Cards   []xmlCard `xml:"card"`
}

type xmlCard struct {
	Quantity  int    `xml:"quantity,attr"`
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Cost      string `xml:"cost,attr"`
	Text      string `xml:"text,attr"`
	Power     string `xml:"power,attr"`
	Toughness string `xml:"toughness,attr"`
}

// ParseXML parses an XML deck list.
func ParseXML(data []byte) (*Deck, error) {
	var raw xmlDeck
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse xml deck: %w", err)
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
