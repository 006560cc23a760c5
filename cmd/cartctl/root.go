package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/config"
	"github.com/warungmanto/storefront/internal/logging"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Storefront tools: price quotes, checkout links, catalog and stored carts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.AddCommand(
		newQuoteCmd(a),
		newCheckoutCmd(a),
		newProductsCmd(a),
		newCategoriesCmd(a),
		newCartCmd(a),
		newMigrateCmd(a),
	)
	return root
}

func (a *app) init() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Environment, "warn")
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
