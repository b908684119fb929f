package allocation

// BestPrice is the chosen vendor and unit price for one requested card.
type BestPrice struct {
	QuantityNeeded    int     `json:"quantity_needed"`
	Price             float64 `json:"best_price"`
	Vendor            string  `json:"vendor"`
	QuantityAvailable int     `json:"quantity_available"`
}

// BuyLine is one entry of a vendor's recommended order.
type BuyLine struct {
	Card      string  `json:"card"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price_per_unit"`
	LineTotal float64 `json:"total_price"`
}

// VendorSummary totals one vendor's recommended order.
type VendorSummary struct {
	TotalCards int     `json:"total_cards"`
	TotalPrice float64 `json:"total_price"`
}

// Result is the final, immutable purchase recommendation. Every requested
// card with at least one found observation appears in exactly one vendor's
// buy list and exactly one best-price entry; the rest are listed in NotFound.
type Result struct {
	BestPrices map[string]BestPrice     `json:"best_prices"`
	BuyLists   map[string][]BuyLine     `json:"buy_lists"`
	Summary    map[string]VendorSummary `json:"summary"`
	NotFound   []string                 `json:"not_found"`
}
