package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packlab/packsim/config"
	"github.com/packlab/packsim/core/pack"
	"github.com/packlab/packsim/infra/logger"
)

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Build and print the configured pack layout without simulating",
	RunE:  runTopology,
}

func init() {
	rootCmd.AddCommand(topologyCmd)
}

func runTopology(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	chem, err := cfg.Pack.Validate()
	if err != nil {
		return err
	}
	builder := pack.NewBuilder(logger.NopLogger{}, nil)
	topo, err := builder.Build(cfg.Pack.Series, cfg.Pack.Parallel, chem)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s pack: %dS%dP, %d cells\n", topo.Chemistry(), topo.Series(), topo.Parallel(), topo.CellCount())
	for row := 0; row < topo.Parallel(); row++ {
		for col := 0; col < topo.Series(); col++ {
			fmt.Fprintf(out, "  [%d,%d] %s\n", row, col, topo.Cell(row, col).ID())
		}
	}
	return nil
}
