package allocation

import (
	"math"
	"testing"

	"cardscout/internal/decklist"
	"cardscout/internal/pricing"
)

func buildAggregation(t *testing.T, cards []decklist.Card, observations []pricing.Observation) pricing.Aggregation {
	t.Helper()
	return pricing.Aggregate(cards, observations)
}

func cardList(names ...string) []decklist.Card {
	cards := make([]decklist.Card, 0, len(names))
	for _, name := range names {
		cards = append(cards, decklist.Card{Quantity: 1, Name: name})
	}
	return cards
}

func TestAllocateRejectsInvalidConfig(t *testing.T) {
	cards := cardList("Boompile")
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("Boompile", "Boompile", "VendorA", 1.00, 1),
	})

	_, err := Allocate(cards, agg, FilterConfig{MinCardsPerVendor: 0, EnableFiltering: true})
	if err == nil {
		t.Fatal("expected error for min_cards_per_vendor < 1")
	}

	_, err = Allocate(cards, agg, FilterConfig{MinCardsPerVendor: 3, PriceOverrideThreshold: -1, EnableFiltering: true})
	if err == nil {
		t.Fatal("expected error for negative price_override_threshold")
	}
}

func TestDefaultFilterConfig(t *testing.T) {
	cfg := DefaultFilterConfig()

	if cfg.MinCardsPerVendor != 3 {
		t.Errorf("expected default min cards 3, got %d", cfg.MinCardsPerVendor)
	}
	if cfg.PriceOverrideThreshold != 5.0 {
		t.Errorf("expected default override 5.0, got %g", cfg.PriceOverrideThreshold)
	}
	if !cfg.EnableFiltering {
		t.Error("filtering should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestUnfilteredModeTakesAbsoluteBestPrices(t *testing.T) {
	cards := cardList("Alpha", "Beta")
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("Alpha", "Alpha", "VendorA", 1.00, 1),
		pricing.FoundObservation("Alpha", "Alpha", "VendorB", 2.00, 1),
		pricing.FoundObservation("Beta", "Beta", "VendorA", 9.00, 1),
		pricing.FoundObservation("Beta", "Beta", "VendorB", 4.00, 1),
	})

	result, err := Allocate(cards, agg, FilterConfig{
		MinCardsPerVendor:      3,
		PriceOverrideThreshold: 5.0,
		EnableFiltering:        false,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.BestPrices["Alpha"].Vendor != "VendorA" || result.BestPrices["Alpha"].Price != 1.00 {
		t.Errorf("Alpha should stay at VendorA $1.00: %+v", result.BestPrices["Alpha"])
	}
	if result.BestPrices["Beta"].Vendor != "VendorB" || result.BestPrices["Beta"].Price != 4.00 {
		t.Errorf("Beta should stay at VendorB $4.00: %+v", result.BestPrices["Beta"])
	}
}

// The consolidation scenario: VendorX wins a single cheap card, VendorY wins
// the rest. With a small gap the lone card moves to VendorY; with a gap at
// or above the threshold it stays.
func TestFilteringMovesLoneCardToNextVendor(t *testing.T) {
	cards := cardList("A", "B", "C", "D")
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("A", "A", "VendorX", 1.00, 1),
		pricing.FoundObservation("A", "A", "VendorY", 2.50, 1),
		pricing.FoundObservation("B", "B", "VendorY", 2.00, 1),
		pricing.FoundObservation("C", "C", "VendorY", 3.00, 1),
		pricing.FoundObservation("D", "D", "VendorY", 4.00, 1),
	})

	result, err := Allocate(cards, agg, FilterConfig{
		MinCardsPerVendor:      3,
		PriceOverrideThreshold: 5.0,
		EnableFiltering:        true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.BestPrices["A"].Vendor != "VendorY" {
		t.Errorf("A should be consolidated to VendorY, got %s", result.BestPrices["A"].Vendor)
	}
	if result.BestPrices["A"].Price != 2.50 {
		t.Errorf("A should cost the rank-1 price 2.50, got %g", result.BestPrices["A"].Price)
	}
	if _, ok := result.BuyLists["VendorX"]; ok {
		t.Error("VendorX should not appear in the final buy lists")
	}
	if len(result.BuyLists["VendorY"]) != 4 {
		t.Errorf("VendorY should carry all 4 cards, got %d", len(result.BuyLists["VendorY"]))
	}
}

func TestFilteringPriceOverrideKeepsCheapCard(t *testing.T) {
	cards := cardList("A", "B", "C", "D")
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("A", "A", "VendorX", 1.00, 1),
		pricing.FoundObservation("A", "A", "VendorY", 6.00, 1), // gap 5.00 >= threshold
		pricing.FoundObservation("B", "B", "VendorY", 2.00, 1),
		pricing.FoundObservation("C", "C", "VendorY", 3.00, 1),
		pricing.FoundObservation("D", "D", "VendorY", 4.00, 1),
	})

	result, err := Allocate(cards, agg, FilterConfig{
		MinCardsPerVendor:      3,
		PriceOverrideThreshold: 5.0,
		EnableFiltering:        true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.BestPrices["A"].Vendor != "VendorX" {
		t.Errorf("A's price gap justifies the small vendor, got %s", result.BestPrices["A"].Vendor)
	}
	if result.Summary["VendorX"].TotalCards != 1 {
		t.Errorf("VendorX should keep exactly the override card: %+v", result.Summary["VendorX"])
	}
}

func TestFilteringKeepsSingleSourceCard(t *testing.T) {
	cards := cardList("Rare", "B", "C", "D")
	agg := buildAggregation(t, cards, []pricing.Observation{
		// Only VendorX carries Rare, and only barely cheaper elsewhere-nothing.
		pricing.FoundObservation("Rare", "Rare", "VendorX", 10.00, 1),
		pricing.FoundObservation("B", "B", "VendorY", 2.00, 1),
		pricing.FoundObservation("C", "C", "VendorY", 3.00, 1),
		pricing.FoundObservation("D", "D", "VendorY", 4.00, 1),
	})

	result, err := Allocate(cards, agg, FilterConfig{
		MinCardsPerVendor:      3,
		PriceOverrideThreshold: 5.0,
		EnableFiltering:        true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.BestPrices["Rare"].Vendor != "VendorX" {
		t.Errorf("single-source cards are always honored, got %s", result.BestPrices["Rare"].Vendor)
	}
}

// Redistribution is single-pass: moving a card to the rank-1 vendor does not
// re-evaluate that vendor's count, even if the move leaves it under
// threshold too.
func TestFilteringIsSinglePass(t *testing.T) {
	cards := cardList("A", "B", "C")
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("A", "A", "VendorX", 1.00, 1),
		pricing.FoundObservation("A", "A", "VendorZ", 1.50, 1),
		pricing.FoundObservation("B", "B", "VendorY", 2.00, 1),
		pricing.FoundObservation("C", "C", "VendorY", 3.00, 1),
	})

	result, err := Allocate(cards, agg, FilterConfig{
		MinCardsPerVendor:      2,
		PriceOverrideThreshold: 5.0,
		EnableFiltering:        true,
	})
	if err != nil {
		t.Fatal(err)
	}

	// VendorX (1 card) is filtered; A moves to VendorZ even though VendorZ
	// then holds a single card.
	if result.BestPrices["A"].Vendor != "VendorZ" {
		t.Errorf("A should move to VendorZ, got %s", result.BestPrices["A"].Vendor)
	}
	if result.Summary["VendorZ"].TotalCards != 1 {
		t.Errorf("single-pass move must not cascade: %+v", result.Summary["VendorZ"])
	}
}

func TestResultPartitionsWantList(t *testing.T) {
	cards := cardList("Priced", "Missing")
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("Priced", "Priced", "VendorA", 1.00, 1),
		pricing.NotFoundObservation("Missing", "VendorA"),
	})

	result, err := Allocate(cards, agg, DefaultFilterConfig())
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := result.BestPrices["Priced"]; !ok {
		t.Error("Priced should have a best price")
	}
	if _, ok := result.BestPrices["Missing"]; ok {
		t.Error("Missing must not be priced")
	}
	if len(result.NotFound) != 1 || result.NotFound[0] != "Missing" {
		t.Errorf("Missing should be reported not found: %v", result.NotFound)
	}

	total := 0
	for _, lines := range result.BuyLists {
		total += len(lines)
	}
	if total != 1 {
		t.Errorf("every priced card appears in exactly one buy list, counted %d", total)
	}
}

func TestSummaryTotalsAndRounding(t *testing.T) {
	cards := []decklist.Card{
		{Quantity: 3, Name: "A"},
		{Quantity: 1, Name: "B"},
	}
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("A", "A", "VendorA", 0.10, 5),
		pricing.FoundObservation("B", "B", "VendorA", 0.035, 5),
	})

	result, err := Allocate(cards, agg, FilterConfig{
		MinCardsPerVendor:      1,
		PriceOverrideThreshold: 5.0,
		EnableFiltering:        true,
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := result.BuyLists["VendorA"]
	var sum float64
	for _, line := range lines {
		if got := line.UnitPrice * float64(line.Quantity); math.Abs(got-line.LineTotal) > 1e-9 {
			t.Errorf("line total mismatch for %s: %g vs %g", line.Card, got, line.LineTotal)
		}
		sum += line.LineTotal
	}

	want := math.Round(sum*100) / 100
	if result.Summary["VendorA"].TotalPrice != want {
		t.Errorf("vendor total should be the 2-decimal rounding of %g, got %g", sum, result.Summary["VendorA"].TotalPrice)
	}
	if result.Summary["VendorA"].TotalCards != 2 {
		t.Errorf("expected 2 cards in summary, got %d", result.Summary["VendorA"].TotalCards)
	}
}

func TestBuyListsPreserveWantListOrder(t *testing.T) {
	cards := cardList("Zebra", "Apple", "Mango")
	agg := buildAggregation(t, cards, []pricing.Observation{
		pricing.FoundObservation("Zebra", "Zebra", "VendorA", 1.00, 1),
		pricing.FoundObservation("Apple", "Apple", "VendorA", 2.00, 1),
		pricing.FoundObservation("Mango", "Mango", "VendorA", 3.00, 1),
	})

	result, err := Allocate(cards, agg, DefaultFilterConfig())
	if err != nil {
		t.Fatal(err)
	}

	lines := result.BuyLists["VendorA"]
	want := []string{"Zebra", "Apple", "Mango"}
	for i, name := range want {
		if lines[i].Card != name {
			t.Errorf("position %d: expected %q, got %q", i, name, lines[i].Card)
		}
	}
}
