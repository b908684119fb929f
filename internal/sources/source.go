package sources

import (
	"context"
	"fmt"
	"strings"

	"cardscout/internal/decklist"
	"cardscout/internal/pricing"
)

// Source is one vendor's price lookup. Implementations must return exactly
// one observation per requested card (not-found stand-ins included) on
// success; QueryAll enforces that contract either way.
type Source interface {
	Name() string
	QueryPrices(ctx context.Context, cards []decklist.Card) ([]pricing.Observation, error)
}

// NotFoundAll builds the explicit miss set a failing or empty-handed source
// contributes, one observation per card.
func NotFoundAll(cards []decklist.Card, vendor string) []pricing.Observation {
	observations := make([]pricing.Observation, 0, len(cards))
	for _, card := range cards {
		observations = append(observations, pricing.NotFoundObservation(card.Name, vendor))
	}
	return observations
}

// Build resolves source names from config into clients. Names are
// case-insensitive; unknown names are rejected up front.
func Build(names []string) ([]Source, error) {
	var built []Source
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "cryptmtg":
			built = append(built, NewCryptMTG())
		case "magicarte":
			built = append(built, NewMagiCarte())
		case "facetofacegames", "facetoface":
			built = append(built, NewFaceToFaceGames())
		case "":
			continue
		default:
			return nil, fmt.Errorf("unknown price source: %q", name)
		}
	}
	if len(built) == 0 {
		return nil, fmt.Errorf("no price sources enabled")
	}
	return built, nil
}

// DefaultSourceNames is every supported vendor, in query order.
func DefaultSourceNames() []string {
	return []string{"cryptmtg", "magicarte", "facetofacegames"}
}
