package main

import (
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/you-humble/supplement-inventory/internal/app"
	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

// inventory serve — start the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, quit := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer quit()

		a, err := app.New(ctx)
		if err != nil {
			logger.Error(ctx, "❌ Failed to create an application", logger.ErrorF(err))
			return err
		}

		if err := a.Run(ctx); err != nil {
			logger.Error(ctx, "❌ Inventory server error", logger.ErrorF(err))
			return err
		}
		return nil
	},
}

var repairKinds []string

// inventory repair — rewrite every stale product snapshot once.
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Re-run snapshot propagation for every classification entity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, quit := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer quit()

		a, err := app.New(ctx)
		if err != nil {
			logger.Error(ctx, "❌ Failed to create an application", logger.ErrorF(err))
			return err
		}

		kinds := lo.Map(repairKinds, func(k string, _ int) model.EntityKind { return model.EntityKind(k) })
		res, err := a.Repair(ctx, kinds...)
		if res != nil {
			cmd.Printf("entities: %d, affected: %d, unchanged: %d, failed entities: %d\n",
				res.Entities, res.Affected, res.Unchanged, len(res.Errors))
		}
		return err
	},
}

// inventory migrate — apply the postgres unit store migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply unit store migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := app.New(ctx)
		if err != nil {
			logger.Error(ctx, "❌ Failed to create an application", logger.ErrorF(err))
			return err
		}
		return a.Migrate(ctx)
	},
}

func init() {
	repairCmd.Flags().StringSliceVar(&repairKinds, "kind", nil,
		"entity kinds to repair (category, tag, product_type); all when omitted")
}
