package cmd

import (
	"context"
	"fmt"

	"variation-manager/core/config"
	"variation-manager/core/database"
	"variation-manager/core/logger"
	"variation-manager/feature/variation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the drafts table.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the variation drafts table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := variation.NewRepository(db).Prepare(context.Background()); err != nil {
			return err
		}
		l.Info("Drafts table is up to date",
			zap.String("driver", cfg.Database.Driver),
			zap.String("table", variation.Draft{}.TableName()),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
