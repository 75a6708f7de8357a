package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/jd-annotator/internal/classify"
	"github.com/jonathan/jd-annotator/internal/fragments"
	"github.com/jonathan/jd-annotator/internal/observability"
	"github.com/jonathan/jd-annotator/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest annotations for the fragments of a job description",
	Long:  "Splits a saved job description (plain text or HTML) into fragments and runs each through the generation gate and the matcher, printing the suggested annotation values.",
	RunE:  runSuggest,
}

var (
	suggestConfig  string
	suggestInput   string
	suggestJD      string
	suggestOutput  string
	suggestVerbose bool
	suggestDebug   bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestConfig, "config", "c", "", "Path to config JSON file")
	suggestCmd.Flags().StringVarP(&suggestInput, "input", "i", "", "Path to saved JD file, .html or plain text (required)")
	suggestCmd.Flags().StringVarP(&suggestJD, "extracted-jd", "j", "", "Path to extracted JD JSON (enables requirement-type and keyword helpers)")
	suggestCmd.Flags().StringVarP(&suggestOutput, "out", "o", "", "Path to write suggested annotations JSON")
	suggestCmd.Flags().BoolVarP(&suggestVerbose, "verbose", "v", false, "Print each suggestion")
	suggestCmd.Flags().BoolVar(&suggestDebug, "debug", false, "Enable debug logging")

	if err := suggestCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(suggestCmd)
}

// suggestedAnnotation is one line of the command's JSON output.
type suggestedAnnotation struct {
	Fragment        fragments.Fragment  `json:"fragment"`
	Context         *types.MatchContext `json:"match_context"`
	Match           *types.MatchResult  `json:"match,omitempty"`
	RequirementType string              `json:"requirement_type,omitempty"`
	Keywords        []string            `json:"keywords,omitempty"`
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, suggestConfig, suggestDebug)
	if err != nil {
		return err
	}
	defer a.close()

	frags, err := loadFragments(suggestInput)
	if err != nil {
		return err
	}
	if len(frags) == 0 {
		return fmt.Errorf("no annotatable fragments found in %s", suggestInput)
	}

	var extractedJD *types.ExtractedJD
	if suggestJD != "" {
		data, err := os.ReadFile(suggestJD)
		if err != nil {
			return fmt.Errorf("failed to read extracted JD %s: %w", suggestJD, err)
		}
		extractedJD = &types.ExtractedJD{}
		if err := json.Unmarshal(data, extractedJD); err != nil {
			return fmt.Errorf("failed to parse extracted JD JSON: %w", err)
		}
	}

	// Embedding is optional here: without an API key the matcher simply
	// skips the semantic stage and uses keyword priors.
	embedder, err := a.newEmbedder(ctx)
	if err != nil {
		a.log.Warn("no embedding provider, using keyword priors only", zap.Error(err))
		embedder = nil
	} else {
		defer embedder.Close()
	}

	record := a.store.Load(ctx)
	printer := observability.NewPrinter(os.Stdout)

	var suggestions []suggestedAnnotation
	for _, frag := range frags {
		ok, matchCtx := a.engine.ShouldGenerate(frag.Text, a.taxonomy, record)
		if !ok {
			continue
		}

		suggestion := suggestedAnnotation{Fragment: frag, Context: matchCtx}
		suggestion.Match = a.engine.FindBestMatch(ctx, frag.Text, record, embedder)
		if suggestion.Match != nil {
			record.Stats.TotalSuggestionsMade++
		}

		if extractedJD != nil {
			suggestion.RequirementType = classify.InferRequirementType(frag.Text, frag.Section, extractedJD)
			suggestion.Keywords = classify.SuggestKeywordsForItem(frag.Text, extractedJD, classify.DefaultMaxKeywords)
		}

		if suggestVerbose {
			printer.PrintSuggestion(frag.Text, matchCtx, suggestion.Match)
		}
		suggestions = append(suggestions, suggestion)
	}

	if !a.store.Save(ctx, record) {
		a.log.Warn("failed to persist suggestion stats")
	}

	fmt.Printf("Suggested annotations for %d of %d fragments\n", len(suggestions), len(frags))

	if suggestOutput != "" {
		data, err := json.MarshalIndent(suggestions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal suggestions: %w", err)
		}
		if err := os.WriteFile(suggestOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write suggestions to %s: %w", suggestOutput, err)
		}
	}
	return nil
}

// loadFragments reads a saved JD and splits it into fragments, by HTML
// structure for .html/.htm files and by line otherwise.
func loadFragments(path string) ([]fragments.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return fragments.ExtractFromHTML(string(data))
	default:
		return fragments.SplitText(string(data)), nil
	}
}
