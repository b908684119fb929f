// Package export renders comparison results to CSV, built idempotently from
// the immutable allocation result.
package export

import (
	"sort"

	"github.com/gocarina/gocsv"

	"cardscout/internal/allocation"
	"cardscout/internal/pricing"
)

// BestPriceRow is one line of the best-prices export.
type BestPriceRow struct {
	CardName          string  `csv:"card_name"`
	QuantityNeeded    int     `csv:"quantity_needed"`
	BestPrice         float64 `csv:"best_price"`
	Vendor            string  `csv:"website"`
	QuantityAvailable int     `csv:"quantity_available"`
}

// AllPriceRow is one line of the raw-observations export, kept for debugging
// a run's vendor answers.
type AllPriceRow struct {
	CardName      string   `csv:"card_name"`
	OriginalQuery string   `csv:"original_query"`
	Price         *float64 `csv:"price"`
	Vendor        string   `csv:"website"`
	Found         bool     `csv:"found"`
	Quantity      *int     `csv:"quantity_available"`
}

// BestPricesCSV renders the chosen vendor per card, sorted by vendor then
// card name so each vendor's order reads as one block.
func BestPricesCSV(result *allocation.Result) ([]byte, error) {
	rows := make([]*BestPriceRow, 0, len(result.BestPrices))
	for name, best := range result.BestPrices {
		rows = append(rows, &BestPriceRow{
			CardName:          name,
			QuantityNeeded:    best.QuantityNeeded,
			BestPrice:         best.Price,
			Vendor:            best.Vendor,
			QuantityAvailable: best.QuantityAvailable,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Vendor != rows[j].Vendor {
			return rows[i].Vendor < rows[j].Vendor
		}
		return rows[i].CardName < rows[j].CardName
	})

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// AllPricesCSV renders every observation, sorted by requested card then
// price, misses last.
func AllPricesCSV(observations []pricing.Observation) ([]byte, error) {
	rows := make([]*AllPriceRow, 0, len(observations))
	for _, obs := range observations {
		row := &AllPriceRow{
			CardName:      obs.CardName,
			OriginalQuery: obs.RequestedName,
			Vendor:        obs.Vendor,
			Found:         obs.Found,
		}
		if obs.Found {
			price := obs.Price
			qty := obs.QuantityAvailable
			row.Price = &price
			row.Quantity = &qty
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].OriginalQuery != rows[j].OriginalQuery {
			return rows[i].OriginalQuery < rows[j].OriginalQuery
		}
		if rows[i].Found != rows[j].Found {
			return rows[i].Found
		}
		if rows[i].Price != nil && rows[j].Price != nil {
			return *rows[i].Price < *rows[j].Price
		}
		return false
	})

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
