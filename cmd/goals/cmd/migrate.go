package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/goalboard/internal/config"
	"github.com/templui/goalboard/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations for the sql storage driver",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd, false)
		},
	})

	return cmd
}

func migrate(cmd *cobra.Command, up bool) error {
	cfg := config.Load()
	if cfg.StorageDriver != "sql" {
		return errors.New("migrations only apply to STORAGE_DRIVER=sql")
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(database)

	if up {
		err = db.RunMigrations(cmd.Context(), database.DB, cfg.DBDriver)
	} else {
		err = db.MigrateDown(cmd.Context(), database.DB, cfg.DBDriver)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "migrations complete")
	return nil
}
