package insights

import "time"

// VendorSnapshot is aggregated pricing performance for one vendor across
// every completed comparison run: how often it wins cards and what those
// orders cost.
type VendorSnapshot struct {
	ID            int       `json:"id"`
	Vendor        string    `json:"vendor"`
	RunsSampled   int       `json:"runs_sampled"`
	CardsWon      int       `json:"cards_won"`
	TotalSpend    float64   `json:"total_spend"`
	AvgOrderValue float64   `json:"avg_order_value"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
