package pricing

// Observation is one vendor's answer for a requested card: either a price
// with availability, or an explicit not-found. There is no price sentinel;
// Price and QuantityAvailable are meaningful only when Found is true.
type Observation struct {
	CardName          string  `json:"card_name"`      // name as listed at the vendor
	RequestedName     string  `json:"requested_name"` // the want-list line it answers
	Vendor            string  `json:"vendor"`
	Found             bool    `json:"found"`
	Price             float64 `json:"price,omitempty"`
	QuantityAvailable int     `json:"quantity_available,omitempty"`
}

// FoundObservation builds an observation for a card the vendor carries.
func FoundObservation(requestedName, cardName, vendor string, price float64, quantityAvailable int) Observation {
	return Observation{
		CardName:          cardName,
		RequestedName:     requestedName,
		Vendor:            vendor,
		Found:             true,
		Price:             price,
		QuantityAvailable: quantityAvailable,
	}
}

// NotFoundObservation builds the explicit miss for a (vendor, card) pair.
func NotFoundObservation(requestedName, vendor string) Observation {
	return Observation{
		CardName:      requestedName,
		RequestedName: requestedName,
		Vendor:        vendor,
		Found:         false,
	}
}
