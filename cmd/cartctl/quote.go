package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/pricing"
)

func newQuoteCmd(a *app) *cobra.Command {
	var (
		basePrice float64
		tiersFile string
		quantity  int
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a quantity against a base price and a tier list",
		Example: `  cartctl quote --base 18000 --qty 12 --tiers tiers.json
  tiers.json: [{"name":"Grosir","min_quantity":10,"max_quantity":null,"price":16000}]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tiers []domain.PricingTier
			if tiersFile != "" {
				data, err := os.ReadFile(tiersFile)
				if err != nil {
					return fmt.Errorf("read tiers: %w", err)
				}
				if err := json.Unmarshal(data, &tiers); err != nil {
					return fmt.Errorf("parse tiers: %w", err)
				}
			}

			q := pricing.NewQuote(basePrice, tiers, quantity)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Quantity:   %d\n", q.Quantity)
			fmt.Fprintf(out, "Tier:       %s\n", q.TierName)
			fmt.Fprintf(out, "Unit price: %s\n", q.PricePerUnitFormatted)
			fmt.Fprintf(out, "Subtotal:   %s\n", q.SubtotalFormatted)
			return nil
		},
	}
	cmd.Flags().Float64Var(&basePrice, "base", 0, "base unit price")
	cmd.Flags().StringVar(&tiersFile, "tiers", "", "JSON file with pricing tiers")
	cmd.Flags().IntVar(&quantity, "qty", 1, "quantity")
	return cmd
}
