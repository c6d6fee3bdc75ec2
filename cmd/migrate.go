package cmd

import (
	"context"

	"github.com/kabang/kabang/core/config"
	"github.com/kabang/kabang/core/database"
	"github.com/kabang/kabang/repository"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the kabangs and bookmarks tables",
	Run:   runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) {
	ctx := context.Background()

	db, err := database.Open(ctx, config.Global)
	if err != nil {
		logrus.Fatalf("[MIGRATE] Failed to connect: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repository.Migrate(ctx, db); err != nil {
		logrus.Fatalf("[MIGRATE] %v", err)
	}
	logrus.Infof("[MIGRATE] Schema is up to date (%s)", database.DriverName(config.Global))
}
