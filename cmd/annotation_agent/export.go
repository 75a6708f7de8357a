package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jd-annotator/internal/schemas"
	"github.com/jonathan/jd-annotator/internal/types"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the learned priors record to a JSON file",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a learned priors record from a JSON file",
	Long:  "Validates the file against the priors record schema and replaces the stored record wholesale.",
	RunE:  runImport,
}

var (
	exportConfig string
	exportOut    string
	importConfig string
	importIn     string
)

func init() {
	exportCmd.Flags().StringVarP(&exportConfig, "config", "c", "", "Path to config JSON file")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Path to output record JSON file (required)")
	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	importCmd.Flags().StringVarP(&importConfig, "config", "c", "", "Path to config JSON file")
	importCmd.Flags().StringVarP(&importIn, "in", "i", "", "Path to input record JSON file (required)")
	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, exportConfig, false)
	if err != nil {
		return err
	}
	defer a.close()

	record := a.store.Load(ctx)
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal priors record: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath("schemas/priors_record.schema.json"); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: exported record failed schema validation: %v\n", err)
		}
	}

	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write record to %s: %w", exportOut, err)
	}
	fmt.Printf("Exported priors record v%d (%d sentences, %d skill priors)\n",
		record.Version, record.Index.Count, len(record.SkillPriors))
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(importIn)
	if err != nil {
		return fmt.Errorf("failed to read record file %s: %w", importIn, err)
	}

	if schemaPath := schemas.ResolveSchemaPath("schemas/priors_record.schema.json"); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return fmt.Errorf("record failed schema validation: %w", err)
		}
	}

	var record types.PriorsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to parse record JSON: %w", err)
	}
	if record.SkillPriors == nil {
		record.SkillPriors = make(map[string]*types.SkillPrior)
	}

	a, err := newApp(ctx, importConfig, false)
	if err != nil {
		return err
	}
	defer a.close()

	if !a.store.Save(ctx, &record) {
		return fmt.Errorf("failed to persist imported record")
	}
	fmt.Printf("Imported priors record v%d (%d sentences, %d skill priors)\n",
		record.Version, record.Index.Count, len(record.SkillPriors))
	return nil
}
