package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"cardscout/internal/allocation"
	"cardscout/internal/decklist"
	"cardscout/internal/export"
	"cardscout/internal/pricing"
	"cardscout/internal/sources"
)

func main() {
	app := &cli.App{
		Name:  "compare",
		Usage: "Compare card prices across vendors and print the optimal buy lists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "list",
				Required: true,
				Usage:    "path to a Moxfield-format want-list file",
			},
			&cli.StringFlag{
				Name:    "sources",
				Value:   strings.Join(sources.DefaultSourceNames(), ","),
				Usage:   "comma-separated vendor sources to query",
				EnvVars: []string{"SOURCES"},
			},
			&cli.IntFlag{
				Name:  "min-cards",
				Value: allocation.DefaultMinCardsPerVendor,
				Usage: "minimum cards per vendor before its order is consolidated away",
			},
			&cli.Float64Flag{
				Name:  "price-override",
				Value: allocation.DefaultPriceOverrideThreshold,
				Usage: "price gap that keeps a card at an under-threshold vendor",
			},
			&cli.BoolFlag{
				Name:  "no-filter",
				Usage: "disable vendor consolidation and take the absolute best prices",
			},
			&cli.StringFlag{
				Name:  "csv-out",
				Usage: "directory to write best_prices.csv and all_prices.csv into",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	_ = godotenv.Load()

	cfg := allocation.FilterConfig{
		MinCardsPerVendor:      c.Int("min-cards"),
		PriceOverrideThreshold: c.Float64("price-override"),
		EnableFiltering:        !c.Bool("no-filter"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	raw, err := os.ReadFile(c.String("list"))
	if err != nil {
		return err
	}

	cards := decklist.ParseMoxfield(string(raw))
	if len(cards) == 0 {
		return fmt.Errorf("no parsable cards in %s", c.String("list"))
	}
	fmt.Printf("Parsed %d cards from input\n", len(cards))

	srcs, err := sources.Build(strings.Split(c.String("sources"), ","))
	if err != nil {
		return err
	}

	observations := sources.QueryAll(context.Background(), srcs, cards)
	agg := pricing.Aggregate(cards, observations)

	result, err := allocation.Allocate(cards, agg, cfg)
	if err != nil {
		return err
	}

	printResult(cards, result)

	if dir := c.String("csv-out"); dir != "" {
		if err := writeCSVs(dir, result, observations); err != nil {
			return err
		}
	}

	return nil
}

func writeCSVs(dir string, result *allocation.Result, observations []pricing.Observation) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	best, err := export.BestPricesCSV(result)
	if err != nil {
		return err
	}
	bestPath := filepath.Join(dir, "best_prices.csv")
	if err := os.WriteFile(bestPath, best, 0o644); err != nil {
		return err
	}
	fmt.Println("[OK] Best prices saved to", bestPath)

	all, err := export.AllPricesCSV(observations)
	if err != nil {
		return err
	}
	allPath := filepath.Join(dir, "all_prices.csv")
	if err := os.WriteFile(allPath, all, 0o644); err != nil {
		return err
	}
	fmt.Println("[OK] All prices saved to", allPath)

	return nil
}
