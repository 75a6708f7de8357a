package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jd-annotator/internal/observability"
	"github.com/jonathan/jd-annotator/internal/priors"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the learned priors record's bookkeeping",
	RunE:  runStats,
}

var (
	statsConfig string
	statsDebug  bool
)

func init() {
	statsCmd.Flags().StringVarP(&statsConfig, "config", "c", "", "Path to config JSON file")
	statsCmd.Flags().BoolVar(&statsDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, statsConfig, statsDebug)
	if err != nil {
		return err
	}
	defer a.close()

	record := a.store.Load(ctx)
	observability.NewPrinter(os.Stdout).PrintStats(record)

	if priors.ShouldRebuild(record) {
		fmt.Println("A rebuild is due (run: annotation_agent rebuild)")
	}
	return nil
}
