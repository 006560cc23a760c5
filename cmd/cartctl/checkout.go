package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warungmanto/storefront/internal/cart"
	"github.com/warungmanto/storefront/internal/checkout"
	"github.com/warungmanto/storefront/internal/domain"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var (
		cartFile string
		name     string
		address  string
		phone    string
	)
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Print the WhatsApp order link for a stored cart (JSON array of cart items)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			data, err := os.ReadFile(cartFile)
			if err != nil {
				return fmt.Errorf("read cart: %w", err)
			}
			items, valid := cart.ParseItems(string(data))
			if !valid {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  Cart file is unreadable, treating it as empty")
			}
			if len(items) == 0 {
				return fmt.Errorf("cart is empty")
			}

			b := checkout.NewBuilder(a.cfg.Checkout.ShopName, a.cfg.Checkout.WhatsAppURL, a.cfg.Checkout.WhatsAppNumber)
			out := b.Build(items, domain.CustomerInfo{Name: strings.TrimSpace(name), Address: strings.TrimSpace(address)}, phone)

			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), out.URL)
			return nil
		},
	}
	cmd.Flags().StringVar(&cartFile, "cart", "", "cart JSON file")
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&address, "address", "", "delivery address")
	cmd.Flags().StringVar(&phone, "phone", "", "destination WhatsApp number (defaults to WHATSAPP_NUMBER)")
	_ = cmd.MarkFlagRequired("cart")
	return cmd
}
