package main

import (
	"fmt"
	"sort"
	"strings"

	"cardscout/internal/allocation"
	"cardscout/internal/decklist"
)

// printResult renders the comparison the way you'd read it before ordering:
// best price per card, then each vendor's buy list, then the totals.
func printResult(cards []decklist.Card, result *allocation.Result) {
	line := func() { fmt.Println(strings.Repeat("-", 40)) }

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("CARD PRICE COMPARISON RESULTS")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\n== BEST PRICES BY CARD:")
	line()
	for _, card := range cards {
		best, ok := result.BestPrices[card.Name]
		if !ok {
			continue
		}
		fmt.Printf("* %s\n", card.Name)
		fmt.Printf("  Quantity needed: %d\n", best.QuantityNeeded)
		fmt.Printf("  Best price: $%.2f @ %s\n", best.Price, best.Vendor)
		fmt.Printf("  Available: %d\n", best.QuantityAvailable)
	}

	vendors := make([]string, 0, len(result.BuyLists))
	for vendor := range result.BuyLists {
		vendors = append(vendors, vendor)
	}
	sort.Strings(vendors)

	fmt.Println("\n== RECOMMENDED BUY LISTS:")
	line()
	for _, vendor := range vendors {
		fmt.Printf("\n%s:\n", vendor)
		for _, item := range result.BuyLists[vendor] {
			fmt.Printf("  * %dx %s @ $%.2f = $%.2f\n",
				item.Quantity, item.Card, item.UnitPrice, item.LineTotal)
		}
		fmt.Printf("  TOTAL: $%.2f\n", result.Summary[vendor].TotalPrice)
	}

	if len(result.NotFound) > 0 {
		fmt.Println("\n== CARDS NOT FOUND:")
		line()
		for _, name := range result.NotFound {
			fmt.Printf("  * %s\n", name)
		}
	}

	fmt.Println("\n== SUMMARY:")
	line()
	var grandTotal float64
	for _, vendor := range vendors {
		summary := result.Summary[vendor]
		fmt.Printf("%s: %d cards = $%.2f\n", vendor, summary.TotalCards, summary.TotalPrice)
		grandTotal += summary.TotalPrice
	}

	if len(vendors) > 0 {
		fmt.Printf("\nGRAND TOTAL (if buying optimally): $%.2f\n", grandTotal)
	}
}
