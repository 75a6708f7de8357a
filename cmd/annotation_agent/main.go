// Package main provides the annotation_agent CLI: learned annotation priors
// and suggestions for job description fragments.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "annotation_agent",
	Short: "JD annotation priors and suggestion engine",
	Long:  "annotation_agent predicts semantic labels (relevance, requirement type, passion, identity) for job description fragments from previously-made human annotations, and improves its predictions from accept/edit/delete feedback.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
