// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/jd-annotator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSuggestion outputs the gate decision and proposed values for a fragment.
func (p *Printer) PrintSuggestion(text string, context *types.MatchContext, match *types.MatchResult) {
	var sb strings.Builder

	fragment := text
	if len(fragment) > 50 {
		fragment = fragment[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Fragment: %s\n", fragment))

	if context == nil {
		sb.WriteString("Decision: skip (no gate match)")
		p.printBox("SUGGESTION", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Gate:     %s (%q)\n", context.Type, context.Match))
	if context.Section != "" {
		sb.WriteString(fmt.Sprintf("Section:  %s\n", context.Section))
	}

	if match == nil {
		sb.WriteString("Match:    none")
		p.printBox("SUGGESTION", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Method:   %s (%.3f)\n", match.Method, match.Confidence))
	if match.MatchedText != "" {
		matched := match.MatchedText
		if len(matched) > 40 {
			matched = matched[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Nearest:  %s\n", matched))
	}
	if match.MatchedKeyword != "" {
		sb.WriteString(fmt.Sprintf("Keyword:  %s\n", match.MatchedKeyword))
	}
	sb.WriteString(fmt.Sprintf("Values:   relevance=%s requirement=%s\n", orDash(match.Relevance), orDash(match.Requirement)))
	sb.WriteString(fmt.Sprintf("          passion=%s identity=%s", orDash(match.Passion), orDash(match.Identity)))

	p.printBox("SUGGESTION", sb.String())
}

// PrintRebuildSummary outputs a human-readable summary after a rebuild.
func (p *Printer) PrintRebuildSummary(record *types.PriorsRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Version:        %d\n", record.Version))
	sb.WriteString(fmt.Sprintf("Sentences:      %d\n", record.Index.Count))
	sb.WriteString(fmt.Sprintf("Model:          %s\n", record.Index.Model))
	sb.WriteString(fmt.Sprintf("Skill priors:   %d\n", len(record.SkillPriors)))
	if !record.Index.BuiltAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Built at:       %s", record.Index.BuiltAt.Format("2006-01-02 15:04:05 MST")))
	}

	p.printBox("REBUILD COMPLETE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs the record's suggestion and rebuild bookkeeping, plus the
// most confident learned priors.
func (p *Printer) PrintStats(record *types.PriorsRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	stats := record.Stats
	sb.WriteString(fmt.Sprintf("Suggestions made:   %d\n", stats.TotalSuggestionsMade))
	sb.WriteString(fmt.Sprintf("Accepted unchanged: %d\n", stats.AcceptedUnchanged))
	sb.WriteString(fmt.Sprintf("Edited:             %d\n", stats.Edited))
	sb.WriteString(fmt.Sprintf("Deleted:            %d\n", stats.Deleted))
	sb.WriteString(fmt.Sprintf("Since last build:   %d\n", stats.AnnotationsSinceBuild))
	sb.WriteString(fmt.Sprintf("Corpus at build:    %d\n", stats.TotalAnnotationsAtBuild))

	confident := confidentPriors(record)
	if len(confident) > 0 {
		sb.WriteString("\nMost confident priors:\n")
		count := min(len(confident), maxItemsToShow)
		for i := 0; i < count; i++ {
			kw := confident[i]
			prior := record.SkillPriors[kw]
			sb.WriteString(fmt.Sprintf("  • %s (%.2f, n=%d)", kw, prior.Relevance.Confidence, prior.Relevance.N))
			if prior.Avoid {
				sb.WriteString(" [avoid]")
			}
			sb.WriteString("\n")
		}
		if len(confident) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more", len(confident)-maxItemsToShow))
		}
	}

	p.printBox("LEARNED PRIORS", strings.TrimSuffix(sb.String(), "\n"))
}

// confidentPriors returns prior keywords with at least one observation, most
// confident relevance first, ties alphabetical.
func confidentPriors(record *types.PriorsRecord) []string {
	var keywords []string
	for kw, prior := range record.SkillPriors {
		if prior.Relevance.N > 0 {
			keywords = append(keywords, kw)
		}
	}

	// Sort by descending confidence, then keyword for stable output
	sort.Slice(keywords, func(i, j int) bool {
		ci := record.SkillPriors[keywords[i]].Relevance.Confidence
		cj := record.SkillPriors[keywords[j]].Relevance.Confidence
		if ci != cj {
			return ci > cj
		}
		return keywords[i] < keywords[j]
	})
	return keywords
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
