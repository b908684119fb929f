package allocation

import (
	"log"
	"math"
	"sort"

	"cardscout/internal/decklist"
	"cardscout/internal/pricing"
)

// assignment is the working state for one card during policy application:
// the currently chosen observation plus the full ranked option list, so the
// engine can fall back to the next-cheapest vendor without re-querying.
type assignment struct {
	card   decklist.Card
	chosen pricing.Observation
	ranked []pricing.Observation
}

// Allocate converts the aggregated per-card price options into the final
// per-vendor purchase recommendation. With filtering disabled every card
// simply goes to its cheapest vendor; with filtering enabled, vendors that
// win fewer than MinCardsPerVendor cards are consolidated away unless a
// card's price advantage clears PriceOverrideThreshold or no other vendor
// carries it.
func Allocate(cards []decklist.Card, agg pricing.Aggregation, cfg FilterConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Naive assignment: rank 0 is the cheapest vendor for each card.
	assignments := make(map[string]*assignment, len(agg.Options))
	for name, opts := range agg.Options {
		assignments[name] = &assignment{
			card:   opts.Card,
			chosen: opts.Options[0],
			ranked: opts.Options,
		}
	}

	if cfg.EnableFiltering {
		applyVendorFilter(cards, assignments, cfg)
	}

	return buildResult(cards, assignments, agg.NotFound), nil
}

// applyVendorFilter is the consolidation pass. It is deliberately
// single-pass: a card moved to its rank-1 vendor does not re-trigger
// filtering even if the move changes vendor counts.
func applyVendorFilter(cards []decklist.Card, assignments map[string]*assignment, cfg FilterConfig) {
	// Count cards won per vendor under the naive assignment.
	vendorCards := make(map[string]int, len(assignments))
	for _, a := range assignments {
		vendorCards[a.chosen.Vendor]++
	}

	filtered := make(map[string]bool)
	vendors := make([]string, 0, len(vendorCards))
	for vendor := range vendorCards {
		vendors = append(vendors, vendor)
	}
	sort.Strings(vendors)
	for _, vendor := range vendors {
		if vendorCards[vendor] < cfg.MinCardsPerVendor {
			filtered[vendor] = true
			log.Printf("vendor %q has only %d cards (min %d), filtering",
				vendor, vendorCards[vendor], cfg.MinCardsPerVendor)
		}
	}

	for _, card := range cards {
		a, ok := assignments[card.Name]
		if !ok || !filtered[a.chosen.Vendor] {
			continue
		}

		// Escape valve: a big enough gap to the second-best price justifies
		// ordering from an otherwise-too-small vendor.
		if len(a.ranked) > 1 {
			gap := a.ranked[1].Price - a.ranked[0].Price
			if gap >= cfg.PriceOverrideThreshold {
				log.Printf("override: keeping %q at %s ($%.2f cheaper than %s)",
					card.Name, a.chosen.Vendor, gap, a.ranked[1].Vendor)
				continue
			}

			log.Printf("move: %q from %s ($%.2f) to %s ($%.2f)",
				card.Name, a.chosen.Vendor, a.ranked[0].Price,
				a.ranked[1].Vendor, a.ranked[1].Price)
			a.chosen = a.ranked[1]
			continue
		}

		// No other vendor carries this card; honor the single source.
		log.Printf("keeping %q at %s (only vendor with this card)", card.Name, a.chosen.Vendor)
	}
}

func buildResult(cards []decklist.Card, assignments map[string]*assignment, notFound []string) *Result {
	result := &Result{
		BestPrices: make(map[string]BestPrice, len(assignments)),
		BuyLists:   make(map[string][]BuyLine),
		Summary:    make(map[string]VendorSummary),
		NotFound:   notFound,
	}

	// Walk the want-list in order so each vendor's buy list keeps it.
	for _, card := range cards {
		a, ok := assignments[card.Name]
		if !ok {
			continue
		}

		result.BestPrices[card.Name] = BestPrice{
			QuantityNeeded:    card.Quantity,
			Price:             a.chosen.Price,
			Vendor:            a.chosen.Vendor,
			QuantityAvailable: a.chosen.QuantityAvailable,
		}

		result.BuyLists[a.chosen.Vendor] = append(result.BuyLists[a.chosen.Vendor], BuyLine{
			Card:      card.Name,
			Quantity:  card.Quantity,
			UnitPrice: a.chosen.Price,
			LineTotal: a.chosen.Price * float64(card.Quantity),
		})
	}

	// Totals are rounded here and nowhere earlier, so rounding error never
	// compounds across lines.
	for vendor, lines := range result.BuyLists {
		var total float64
		for _, line := range lines {
			total += line.LineTotal
		}
		result.Summary[vendor] = VendorSummary{
			TotalCards: len(lines),
			TotalPrice: roundCents(total),
		}
	}

	return result
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
