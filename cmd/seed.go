package cmd

import (
	"context"

	"github.com/kabang/kabang/core/config"
	"github.com/kabang/kabang/repository"
	"github.com/kabang/kabang/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the popular default bangs, skipping triggers that already exist",
	Run:   runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) {
	ctx := context.Background()

	controller := newController(config.Global)
	defer controller.Close()
	if !controller.Start(ctx) {
		logrus.Fatalf("[SEED] %s is unavailable", controller.Driver())
	}

	result, err := usecase.Seed(ctx, repository.NewKabangGormRepository(controller))
	if err != nil {
		logrus.Fatalf("[SEED] %v", err)
	}
	logrus.Infof("[SEED] Done: %d inserted, %d skipped, %d failed", result.Inserted, result.Skipped, result.Failed)
}
