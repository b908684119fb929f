package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardscout/internal/decklist"
)

func TestCryptMTGQueryPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/apps/deckbuilder/api/decklist" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req cryptMTGRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cards": [
				{"name": "Boompile", "price": 2.49, "quantity": 3, "found": true},
				{"name": "Esper Sentinel", "price": 0, "quantity": 0, "found": false}
			]
		}`))
	}))
	defer server.Close()

	t.Setenv("CRYPTMTG_BASE_URL", server.URL)

	cards := []decklist.Card{
		{Quantity: 1, Name: "Boompile"},
		{Quantity: 1, Name: "Esper Sentinel"},
	}

	observations, err := NewCryptMTG().QueryPrices(context.Background(), cards)
	if err != nil {
		t.Fatal(err)
	}

	if len(observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observations))
	}

	if !observations[0].Found || observations[0].Price != 2.49 || observations[0].QuantityAvailable != 3 {
		t.Errorf("unexpected Boompile observation: %+v", observations[0])
	}
	if observations[0].Vendor != "CryptMTG" {
		t.Errorf("unexpected vendor %q", observations[0].Vendor)
	}
	if observations[1].Found {
		t.Errorf("Esper Sentinel should be not-found: %+v", observations[1])
	}
}

func TestCryptMTGErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	t.Setenv("CRYPTMTG_BASE_URL", server.URL)

	_, err := NewCryptMTG().QueryPrices(context.Background(), []decklist.Card{{Quantity: 1, Name: "Boompile"}})
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestMagiCartePicksCheapestMatchingListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Sol Ring" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"title": "Sol Ring (Foil)", "price_cents": 899, "inventory": 2},
				{"title": "Sol Ring", "price_cents": 349, "inventory": 5},
				{"title": "Mana Vault", "price_cents": 100, "inventory": 9},
				{"title": "Sol Ring", "price_cents": 299, "inventory": 0}
			]
		}`))
	}))
	defer server.Close()

	t.Setenv("MAGICARTE_BASE_URL", server.URL)

	observations, err := NewMagiCarte().QueryPrices(context.Background(), []decklist.Card{{Quantity: 1, Name: "Sol Ring"}})
	if err != nil {
		t.Fatal(err)
	}

	obs := observations[0]
	if !obs.Found {
		t.Fatalf("expected found observation: %+v", obs)
	}
	// Cheapest in-stock matching listing: $3.49. The $2.99 copy is out of
	// stock and Mana Vault doesn't match.
	if obs.Price != 3.49 {
		t.Errorf("expected price 3.49, got %g", obs.Price)
	}
	if obs.CardName != "Sol Ring" {
		t.Errorf("expected matched name Sol Ring, got %q", obs.CardName)
	}
}

func TestFaceToFaceGamesQueryPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req faceToFaceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if req.Keyword == "Boompile" {
			_, _ = w.Write([]byte(`{
				"results": [
					{"title": "Boompile", "price": 1.99, "qty": 4, "in_stock": true},
					{"title": "Boompile (Borderless)", "price": 0.99, "qty": 1, "in_stock": false}
				]
			}`))
			return
		}
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	t.Setenv("FACETOFACE_BASE_URL", server.URL)

	cards := []decklist.Card{
		{Quantity: 1, Name: "Boompile"},
		{Quantity: 1, Name: "Esper Sentinel"},
	}

	observations, err := NewFaceToFaceGames().QueryPrices(context.Background(), cards)
	if err != nil {
		t.Fatal(err)
	}

	if !observations[0].Found || observations[0].Price != 1.99 {
		t.Errorf("out-of-stock listings must not win: %+v", observations[0])
	}
	if observations[1].Found {
		t.Errorf("empty search should yield not-found: %+v", observations[1])
	}
}
