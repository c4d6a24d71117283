package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/packlab/packsim/app"
	"github.com/packlab/packsim/config"
	"github.com/packlab/packsim/infra/logger"
	"github.com/packlab/packsim/pkg/export"
)

var (
	outPath   string
	outFormat string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Build the configured pack and run a time-domain simulation",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&outPath, "out", "o", "", "write results to file (default stdout)")
	simulateCmd.Flags().StringVarP(&outFormat, "format", "f", "csv", "output format: csv or json")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.New("main").Errorf("close output: %v", cerr)
			}
		}()
		w = f
	}
	switch outFormat {
	case "csv":
		return export.WriteCSV(w, res)
	case "json":
		return export.WriteJSON(w, res)
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
}
