package sources

import (
	"context"
	"log"

	"cardscout/internal/decklist"
	"cardscout/internal/pricing"
)

// QueryAll queries every source in turn for the full card list and merges
// the results. A failing source never aborts the run: it degrades to a full
// not-found set so the aggregator still sees one observation per
// (source, card) pair. The same normalization covers sources that answer
// for fewer cards than asked.
func QueryAll(ctx context.Context, srcs []Source, cards []decklist.Card) []pricing.Observation {
	merged := make([]pricing.Observation, 0, len(srcs)*len(cards))

	for _, src := range srcs {
		log.Printf("querying %s for %d cards...", src.Name(), len(cards))

		observations, err := src.QueryPrices(ctx, cards)
		if err != nil {
			log.Printf("source %s failed: %v (continuing with not-found stand-ins)", src.Name(), err)
			merged = append(merged, NotFoundAll(cards, src.Name())...)
			continue
		}

		merged = append(merged, normalize(cards, src.Name(), observations)...)
	}

	return merged
}

// normalize keeps the first observation a source reported per card and
// fills not-found stand-ins for anything it skipped.
func normalize(cards []decklist.Card, vendor string, observations []pricing.Observation) []pricing.Observation {
	byCard := make(map[string]pricing.Observation, len(observations))
	found := 0
	for _, obs := range observations {
		if _, seen := byCard[obs.RequestedName]; seen {
			continue
		}
		byCard[obs.RequestedName] = obs
		if obs.Found {
			found++
		}
	}

	out := make([]pricing.Observation, 0, len(cards))
	for _, card := range cards {
		if obs, ok := byCard[card.Name]; ok {
			out = append(out, obs)
		} else {
			out = append(out, pricing.NotFoundObservation(card.Name, vendor))
		}
	}

	log.Printf("  %s answered %d/%d cards", vendor, found, len(cards))
	return out
}
