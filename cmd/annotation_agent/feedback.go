package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/jd-annotator/internal/priors"
	"github.com/jonathan/jd-annotator/internal/schemas"
	"github.com/jonathan/jd-annotator/internal/types"
	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Capture an accept/edit/delete action on an annotation",
	Long:  "Folds a single user action on an auto-generated annotation into the learned skill priors, and records the annotation in the corpus for future rebuilds.",
	RunE:  runFeedback,
}

var (
	feedbackConfig     string
	feedbackAnnotation string
	feedbackAction     string
	feedbackJobID      string
	feedbackDebug      bool
)

func init() {
	feedbackCmd.Flags().StringVarP(&feedbackConfig, "config", "c", "", "Path to config JSON file")
	feedbackCmd.Flags().StringVarP(&feedbackAnnotation, "annotation", "a", "", "Path to annotation JSON file (required)")
	feedbackCmd.Flags().StringVar(&feedbackAction, "action", "", "Action taken: save or delete (required)")
	feedbackCmd.Flags().StringVar(&feedbackJobID, "job-id", "", "Job UUID to record the annotation under")
	feedbackCmd.Flags().BoolVar(&feedbackDebug, "debug", false, "Enable debug logging")

	for _, flag := range []string{"annotation", "action"} {
		if err := feedbackCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if feedbackAction != types.ActionSave && feedbackAction != types.ActionDelete {
		return fmt.Errorf("action must be %q or %q", types.ActionSave, types.ActionDelete)
	}

	data, err := os.ReadFile(feedbackAnnotation)
	if err != nil {
		return fmt.Errorf("failed to read annotation file %s: %w", feedbackAnnotation, err)
	}

	if schemaPath := schemas.ResolveSchemaPath("schemas/annotation.schema.json"); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return fmt.Errorf("annotation failed schema validation: %w", err)
		}
	}

	var annotation types.Annotation
	if err := json.Unmarshal(data, &annotation); err != nil {
		return fmt.Errorf("failed to parse annotation JSON: %w", err)
	}

	a, err := newApp(ctx, feedbackConfig, feedbackDebug)
	if err != nil {
		return err
	}
	defer a.close()

	record := a.store.Load(ctx)
	captured := priors.CaptureApplies(&annotation)
	priors.Capture(&annotation, feedbackAction, record)

	if captured && !a.store.Save(ctx, record) {
		return fmt.Errorf("feedback captured but could not be persisted")
	}

	// Deleted suggestions don't join the corpus; everything else does.
	if a.database != nil && feedbackAction == types.ActionSave {
		jobID := uuid.Nil
		if feedbackJobID != "" {
			jobID, err = uuid.Parse(feedbackJobID)
			if err != nil {
				return fmt.Errorf("invalid job-id: %w", err)
			}
		}
		if annotation.ID == uuid.Nil {
			annotation.ID = uuid.New()
		}
		if err := a.database.InsertAnnotation(ctx, jobID, &annotation); err != nil {
			return fmt.Errorf("failed to record annotation in corpus: %w", err)
		}
	}

	if captured {
		fmt.Printf("Captured %s feedback for keyword %q\n", feedbackAction, annotation.OriginalValues.MatchedKeyword)
	} else {
		fmt.Println("Annotation does not teach the skill priors (not an auto-generated keyword match)")
	}
	return nil
}
