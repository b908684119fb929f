package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"cardscout/internal/decklist"
	"cardscout/internal/pricing"
)

// FaceToFaceGames exposes a keyword search API; one POST per card, results
// carry stock flags alongside the price.
type FaceToFaceGames struct {
	baseURL string
	client  *http.Client
}

func NewFaceToFaceGames() *FaceToFaceGames {
	baseURL := os.Getenv("FACETOFACE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://facetofacegames.com"
	}
	return &FaceToFaceGames{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *FaceToFaceGames) Name() string {
	return "FaceToFaceGames"
}

type faceToFaceRequest struct {
	Keyword  string `json:"keyword"`
	PageSize int    `json:"pageSize"`
}

type faceToFaceResponse struct {
	Results []struct {
		Title    string  `json:"title"`
		Price    float64 `json:"price"`
		Quantity int     `json:"qty"`
		InStock  bool    `json:"in_stock"`
	} `json:"results"`
}

func (s *FaceToFaceGames) QueryPrices(ctx context.Context, cards []decklist.Card) ([]pricing.Observation, error) {
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

func (s *FaceToFaceGames) search(ctx context.Context, card decklist.Card) (pricing.Observation, error) {
	payload, _ := json.Marshal(faceToFaceRequest{Keyword: card.Name, PageSize: 10})

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/search",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return pricing.Observation{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return pricing.Observation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pricing.Observation{}, fmt.Errorf("facetoface: unexpected status %d for %q", resp.StatusCode, card.Name)
	}

	var decoded faceToFaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return pricing.Observation{}, err
	}

	best := pricing.NotFoundObservation(card.Name, s.Name())
	for _, result := range decoded.Results {
		if !result.InStock || !pricing.NamesMatch(card.Name, result.Title) {
			continue
		}
		if !best.Found || result.Price < best.Price {
			best = pricing.FoundObservation(card.Name, result.Title, s.Name(), result.Price, result.Quantity)
		}
	}

	return best, nil
}
