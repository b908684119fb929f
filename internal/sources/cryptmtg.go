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

// CryptMTG speaks the store's deck-builder API: the whole want-list goes up
// in one request, the response prices every line it recognizes.
type CryptMTG struct {
	baseURL string
	client  *http.Client
}

func NewCryptMTG() *CryptMTG {
	baseURL := os.Getenv("CRYPTMTG_BASE_URL")
	if baseURL == "" {
		baseURL = "https://cryptmtg.com"
	}
	return &CryptMTG{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *CryptMTG) Name() string {
	return "CryptMTG"
}

type cryptMTGRequest struct {
	Decklist string `json:"decklist"`
}

type cryptMTGResponse struct {
	Cards []struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		Found    bool    `json:"found"`
	} `json:"cards"`
}

func (s *CryptMTG) QueryPrices(ctx context.Context, cards []decklist.Card) ([]pricing.Observation, error) {
	lines := make([]string, 0, len(cards))
	for _, card := range cards {
		lines = append(lines, fmt.Sprintf("%d %s", card.Quantity, card.Name))
	}

	payload, _ := json.Marshal(cryptMTGRequest{Decklist: strings.Join(lines, "\n")})

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/apps/deckbuilder/api/decklist",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cryptmtg: unexpected status %d", resp.StatusCode)
	}

	var decoded cryptMTGResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	observations := make([]pricing.Observation, 0, len(cards))
	for _, card := range cards {
		obs := pricing.NotFoundObservation(card.Name, s.Name())
		for _, entry := range decoded.Cards {
			if entry.Found && pricing.NamesMatch(card.Name, entry.Name) {
				obs = pricing.FoundObservation(card.Name, entry.Name, s.Name(), entry.Price, entry.Quantity)
				break
			}
		}
		observations = append(observations, obs)
	}

	return observations, nil
}
