package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jd-annotator/internal/observability"
	"github.com/jonathan/jd-annotator/internal/priors"
	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the sentence index and skill priors from the full corpus",
	Long:  "Re-embeds every historical annotation and recomputes the skill-prior table from scratch. Without --force the rebuild scheduler decides whether a rebuild is due.",
	RunE:  runRebuild,
}

var (
	rebuildConfig string
	rebuildForce  bool
	rebuildDebug  bool
)

func init() {
	rebuildCmd.Flags().StringVarP(&rebuildConfig, "config", "c", "", "Path to config JSON file")
	rebuildCmd.Flags().BoolVarP(&rebuildForce, "force", "f", false, "Rebuild even if not due")
	rebuildCmd.Flags().BoolVar(&rebuildDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, rebuildConfig, rebuildDebug)
	if err != nil {
		return err
	}
	defer a.close()

	if a.database == nil {
		return fmt.Errorf("rebuild requires a database (set DATABASE_URL)")
	}

	record := a.store.Load(ctx)
	if !rebuildForce && !priors.ShouldRebuild(record) {
		fmt.Println("Rebuild not due (use --force to rebuild anyway)")
		return nil
	}

	embedder, err := a.newEmbedder(ctx)
	if err != nil {
		return err
	}
	defer embedder.Close()

	rebuilder := priors.NewRebuilder(a.database, embedder, a.taxonomy, a.log)
	record, err = rebuilder.Rebuild(ctx, record)
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	if !a.store.Save(ctx, record) {
		return fmt.Errorf("rebuild completed but could not be persisted")
	}

	observability.NewPrinter(os.Stdout).PrintRebuildSummary(record)
	return nil
}
