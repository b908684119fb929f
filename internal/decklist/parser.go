package decklist

import (
	"regexp"
	"strconv"
	"strings"
)

// Moxfield format: quantity name (SET) collector, with an optional *F* foil marker.
// Example: 1 Adagia, Windswept Bastion (EOE) 250
// Example: 2 Liberty Prime, Recharged (PIP) 5 *F*
var linePattern = regexp.MustCompile(`^(\d+)\s+(.+?)\s*(?:\(([A-Z0-9]+)\)\s*(\S+)(?:\s+\*F\*)?)?$`)

// ParseMoxfield turns a Moxfield-format want-list into an ordered card list.
// Blank lines and lines that don't match the format are skipped.
func ParseMoxfield(list string) []Card {
	var cards []Card

	for _, line := range strings.Split(strings.TrimSpace(list), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		quantity, err := strconv.Atoi(m[1])
		if err != nil || quantity < 1 {
			continue
		}

		card := Card{
			Quantity: quantity,
			Name:     strings.TrimSpace(m[2]),
		}
		if m[3] != "" {
			set := m[3]
			card.SetCode = &set
		}
		if m[4] != "" {
			num := m[4]
			card.CollectorNumber = &num
		}

		cards = append(cards, card)
	}

	return cards
}
