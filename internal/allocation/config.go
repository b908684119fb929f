package allocation

import "fmt"

const (
	DefaultMinCardsPerVendor      = 3
	DefaultPriceOverrideThreshold = 5.0
)

// FilterConfig controls the vendor-consolidation policy.
type FilterConfig struct {
	// Minimum number of cards a vendor must win before ordering from it is
	// worth the shipping. Vendors below this are filtered.
	MinCardsPerVendor int `json:"min_cards_per_vendor"`

	// If a card is at least this much cheaper at a filtered vendor than at
	// the next-best vendor, keep it there anyway.
	PriceOverrideThreshold float64 `json:"price_override_threshold"`

	// Disabling filtering always takes the absolute best price per card.
	EnableFiltering bool `json:"enable_filtering"`
}

// DefaultFilterConfig is the conservative consolidation bias used when the
// caller doesn't specify one.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinCardsPerVendor:      DefaultMinCardsPerVendor,
		PriceOverrideThreshold: DefaultPriceOverrideThreshold,
		EnableFiltering:        true,
	}
}

// Validate rejects nonsensical configuration before any vendor is contacted.
func (c FilterConfig) Validate() error {
	if c.MinCardsPerVendor < 1 {
		return fmt.Errorf("min_cards_per_vendor must be >= 1, got %d", c.MinCardsPerVendor)
	}
	if c.PriceOverrideThreshold < 0 {
		return fmt.Errorf("price_override_threshold must be >= 0, got %g", c.PriceOverrideThreshold)
	}
	return nil
}
