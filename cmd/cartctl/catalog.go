package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warungmanto/storefront/internal/catalog"
	"github.com/warungmanto/storefront/internal/pricing"
)

func (a *app) catalogClient() *catalog.Client {
	return catalog.NewClient(a.cfg.Catalog.BaseURL, a.cfg.Catalog.PathPrefix, a.cfg.Catalog.Timeout, a.logger)
}

func newProductsCmd(a *app) *cobra.Command {
	var q catalog.ProductQuery
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products from the product API",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.catalogClient().FetchProducts(cmd.Context(), q)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tUNIT\tBASE PRICE\tTIERS")
			for _, p := range page.Products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Unit, pricing.FormatBasePrice(p.BasePrice), len(p.PricingTiers))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d, %d of %d products\n", page.Page, len(page.Products), page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "search term")
	cmd.Flags().StringVar(&q.CategoryID, "category", "", "category id")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PerPage, "per-page", 20, "products per page")
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories from the product API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.catalogClient().FetchCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}
