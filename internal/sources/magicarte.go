package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cardscout/internal/decklist"
	"cardscout/internal/pricing"
)

// MagiCarte only has a per-card search endpoint, so the lookup is one
// request per want-list line. Prices come back in cents.
type MagiCarte struct {
	baseURL string
	client  *http.Client
}

func NewMagiCarte() *MagiCarte {
	baseURL := os.Getenv("MAGICARTE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://magicarte.com"
	}
	return &MagiCarte{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *MagiCarte) Name() string {
	return "MagiCarte"
}

type magiCarteResponse struct {
	Products []struct {
		Title      string `json:"title"`
		PriceCents int    `json:"price_cents"`
		Inventory  int    `json:"inventory"`
	} `json:"products"`
}

func (s *MagiCarte) QueryPrices(ctx context.Context, cards []decklist.Card) ([]pricing.Observation, error) {
	observations := make([]pricing.Observation, 0, len(cards))

	for _, card := range cards {
		obs, err := s.search(ctx, card)
		if err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}

	return observations, nil
}

func (s *MagiCarte) search(ctx context.Context, card decklist.Card) (pricing.Observation, error) {
	endpoint := fmt.Sprintf("%s/api/v2/products/search?q=%s", s.baseURL, url.QueryEscape(card.Name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pricing.Observation{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return pricing.Observation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pricing.Observation{}, fmt.Errorf("magicarte: unexpected status %d for %q", resp.StatusCode, card.Name)
	}

	var decoded magiCarteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return pricing.Observation{}, err
	}

	// Listings come in store order; take the cheapest one that matches.
	best := pricing.NotFoundObservation(card.Name, s.Name())
	for _, product := range decoded.Products {
		if product.Inventory <= 0 || !pricing.NamesMatch(card.Name, product.Title) {
			continue
		}
		price := float64(product.PriceCents) / 100
		if !best.Found || price < best.Price {
			best = pricing.FoundObservation(card.Name, product.Title, s.Name(), price, product.Inventory)
		}
	}

	return best, nil
}
