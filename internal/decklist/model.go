package decklist

// Card is one line of the user's want-list.
type Card struct {
	Quantity        int     `json:"quantity"`
	Name            string  `json:"name"`
	SetCode         *string `json:"set_code,omitempty"`
	CollectorNumber *string `json:"collector_number,omitempty"`
}
