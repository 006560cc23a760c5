package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warungmanto/storefront/internal/cart"
	"github.com/warungmanto/storefront/internal/pricing"
	"github.com/warungmanto/storefront/internal/storage"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect carts held in the configured storage",
	}

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print the stored cart of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.Open(cmd.Context(), a.cfg.Storage, a.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			sessions := cart.NewSessions(st, a.cfg.Cart.StorageKey, 1, a.logger)
			store := sessions.Get(cmd.Context(), args[0])
			items := store.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty")
				return nil
			}
			for i, it := range items {
				res := pricing.ForItem(it)
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s x%d @ %s (%s) = %s\n",
					i+1, it.Name, it.Quantity, pricing.FormatRupiah(res.PricePerUnit), res.TierName,
					pricing.FormatRupiah(pricing.ItemSubtotal(it)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d items, total %s\n", store.TotalItems(), pricing.FormatRupiah(store.TotalPrice()))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <session-id>",
		Short: "Empty the stored cart of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.Open(cmd.Context(), a.cfg.Storage, a.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			store := cart.NewSessions(st, a.cfg.Cart.StorageKey, 1, a.logger).Get(cmd.Context(), args[0])
			if err := store.ClearCart(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Cart cleared")
			return nil
		},
	}

	cmd.AddCommand(show, clearCmd)
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the cart storage table for the postgres and sqlite drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening a SQL backend runs its migrations
			st, err := storage.Open(cmd.Context(), a.cfg.Storage, a.logger)
			if err != nil {
				return err
			}
			defer st.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Storage ready (driver: %s)\n", a.cfg.Storage.Driver)
			return nil
		},
	}
}
