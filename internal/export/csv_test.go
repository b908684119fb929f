package export

import (
	"strings"
	"testing"

	"cardscout/internal/allocation"
	"cardscout/internal/pricing"
)

func TestBestPricesCSVSortedByVendorThenCard(t *testing.T) {
	result := &allocation.Result{
		BestPrices: map[string]allocation.BestPrice{
			"Zebra": {QuantityNeeded: 1, Price: 3.00, Vendor: "VendorA", QuantityAvailable: 2},
			"Apple": {QuantityNeeded: 2, Price: 1.50, Vendor: "VendorB", QuantityAvailable: 5},
			"Mango": {QuantityNeeded: 1, Price: 2.00, Vendor: "VendorA", QuantityAvailable: 1},
		},
	}

	out, err := BestPricesCSV(result)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "card_name,") {
		t.Errorf("unexpected header: %s", lines[0])
	}

	// VendorA's cards first (alphabetical within vendor), then VendorB.
	want := []string{"Mango", "Zebra", "Apple"}
	for i, name := range want {
		if !strings.HasPrefix(lines[i+1], name+",") {
			t.Errorf("row %d: expected %s, got %s", i, name, lines[i+1])
		}
	}
}

func TestAllPricesCSVMissesHaveEmptyPrice(t *testing.T) {
	observations := []pricing.Observation{
		pricing.FoundObservation("Boompile", "Boompile", "VendorA", 2.49, 3),
		pricing.NotFoundObservation("Boompile", "VendorB"),
	}

	out, err := AllPricesCSV(observations)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	// Found rows sort before misses for the same query.
	if !strings.Contains(lines[1], "VendorA") || !strings.Contains(lines[1], "2.49") {
		t.Errorf("expected the found row first: %s", lines[1])
	}
	if !strings.Contains(lines[2], "VendorB") || strings.Contains(lines[2], "2.49") {
		t.Errorf("miss row should carry no price: %s", lines[2])
	}
}

func TestAllPricesCSVSortsByPriceWithinQuery(t *testing.T) {
	observations := []pricing.Observation{
		pricing.FoundObservation("Boompile", "Boompile", "Expensive", 9.99, 1),
		pricing.FoundObservation("Boompile", "Boompile", "Cheap", 1.99, 1),
	}

	out, err := AllPricesCSV(observations)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if !strings.Contains(lines[1], "Cheap") {
		t.Errorf("cheapest observation should come first: %s", lines[1])
	}
}
