package pricing

import (
	"sort"

	"cardscout/internal/decklist"
)

// CardOptions is the price-ranked option list for one requested card:
// every found observation across all vendors, cheapest first. Exact price
// ties keep source-report order (stable sort), so the first vendor to
// report a price wins the tie.
type CardOptions struct {
	Card    decklist.Card
	Options []Observation
}

// Aggregation is the aggregator's output: per-card ranked options for every
// card at least one vendor carries, plus the names nobody carried, in
// want-list order.
type Aggregation struct {
	Options  map[string]*CardOptions
	NotFound []string
}

// Aggregate groups the merged observation list by the requested card it
// answers and sorts each card's found observations ascending by price.
// Pure function of its inputs; cards with zero found observations go to
// NotFound and are excluded from allocation.
func Aggregate(cards []decklist.Card, observations []Observation) Aggregation {
	byCard := make(map[string][]Observation, len(cards))
	for _, obs := range observations {
		byCard[obs.RequestedName] = append(byCard[obs.RequestedName], obs)
	}

	agg := Aggregation{
		Options: make(map[string]*CardOptions, len(cards)),
	}

	for _, card := range cards {
		var found []Observation
		for _, obs := range byCard[card.Name] {
			if obs.Found {
				found = append(found, obs)
			}
		}

		if len(found) == 0 {
			agg.NotFound = append(agg.NotFound, card.Name)
			continue
		}

		sort.SliceStable(found, func(i, j int) bool {
			return found[i].Price < found[j].Price
		})

		agg.Options[card.Name] = &CardOptions{
			Card:    card,
			Options: found,
		}
	}

	return agg
}
