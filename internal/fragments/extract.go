// Package fragments splits a saved job description into the annotatable text
// fragments the suggestion engine consumes.
package fragments

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fragment is a single annotatable piece of a job description, with the JD
// section it was found under when that could be determined.
type Fragment struct {
	Text    string `json:"text"`
	Section string `json:"section,omitempty"`
}

// minFragmentLength filters out fragments too short to annotate meaningfully.
const minFragmentLength = 10

// sectionHeadings maps heading keywords to canonical JD section names.
// Checked in order; more specific keywords come first so "preferred
// qualifications" lands in nice_to_have, not requirements.
var sectionHeadings = []struct {
	keyword string
	section string
}{
	{"nice to have", "nice_to_have"},
	{"preferred", "nice_to_have"},
	{"bonus", "nice_to_have"},
	{"requirement", "requirements"},
	{"qualification", "requirements"},
	{"responsibilit", "responsibilities"},
	{"what you'll do", "responsibilities"},
	{"what you will", "responsibilities"},
	{"benefit", "benefits"},
	{"perks", "benefits"},
	{"education", "education"},
	{"about", "about"},
}

// ExtractFromHTML parses a locally saved JD page and returns its list items
// and paragraphs as fragments, tracking the current section from the headings
// above them.
func ExtractFromHTML(htmlContent string) ([]Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	section := ""
	var fragments []Fragment

	doc.Find("h1, h2, h3, h4, li, p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}

		if goquery.NodeName(s)[0] == 'h' {
			section = classifySection(text)
			return
		}

		// Skip container elements whose text is really their children's
		if s.ChildrenFiltered("li, p").Length() > 0 {
			return
		}

		if len(text) < minFragmentLength {
			return
		}
		fragments = append(fragments, Fragment{Text: text, Section: section})
	})

	return fragments, nil
}

// SplitText turns a plain-text JD into one fragment per non-empty line,
// carrying a section forward from lines that look like headings.
func SplitText(text string) []Fragment {
	section := ""
	var fragments []Fragment

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• \t"))
		if line == "" {
			continue
		}

		if looksLikeHeading(line) {
			section = classifySection(line)
			continue
		}

		if len(line) < minFragmentLength {
			continue
		}
		fragments = append(fragments, Fragment{Text: line, Section: section})
	}
	return fragments
}

// classifySection maps a heading to a canonical section name, or "" when the
// heading is unrecognized.
func classifySection(heading string) string {
	lower := strings.ToLower(heading)
	for _, h := range sectionHeadings {
		if strings.Contains(lower, h.keyword) {
			return h.section
		}
	}
	return ""
}

// looksLikeHeading treats short lines ending in a colon, or recognized section
// names, as headings.
func looksLikeHeading(line string) bool {
	if strings.HasSuffix(line, ":") && len(line) < 60 {
		return true
	}
	return len(line) < 40 && classifySection(line) != ""
}
