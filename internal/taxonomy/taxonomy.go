// Package taxonomy loads the static skill and signal vocabulary consumed by
// the generation gate and the rebuilder.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/jd-annotator/internal/types"
)

// Load reads a taxonomy JSON file. An empty path returns the built-in
// defaults. File entries are merged over the defaults field by field, so a
// partial file only overrides what it names.
func Load(path string) (*types.Taxonomy, error) {
	tax := Default()
	if path == "" {
		return tax, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}

	var loaded types.Taxonomy
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy JSON: %w", err)
	}

	if len(loaded.JDSignals) > 0 {
		tax.JDSignals = loaded.JDSignals
	}
	if len(loaded.HardSkills) > 0 {
		tax.HardSkills = loaded.HardSkills
	}
	if len(loaded.SoftSkills) > 0 {
		tax.SoftSkills = loaded.SoftSkills
	}
	if len(loaded.SkillAliases) > 0 {
		tax.SkillAliases = loaded.SkillAliases
	}
	return tax, nil
}

// Default returns the built-in taxonomy.
func Default() *types.Taxonomy {
	return &types.Taxonomy{
		JDSignals: map[string][]string{
			"requirements": {
				"years of experience",
				"proficiency in",
				"strong background",
				"hands-on experience",
				"track record",
			},
			"responsibilities": {
				"you will",
				"own the",
				"collaborate with",
				"drive the",
				"responsible for",
			},
			"culture": {
				"fast-paced",
				"cross-functional",
				"mission-driven",
				"ownership mindset",
			},
		},
		HardSkills: []string{
			"go", "python", "java", "javascript", "typescript",
			"kubernetes", "docker", "terraform", "aws", "gcp", "azure",
			"postgresql", "mongodb", "redis", "kafka", "graphql", "grpc",
			"react", "node.js", "sql", "linux", "ci/cd", "machine learning",
		},
		SoftSkills: []string{
			"communication", "leadership", "mentoring", "collaboration",
			"problem solving", "stakeholder management", "ownership",
		},
		SkillAliases: map[string][]string{
			"go":         {"golang", "go lang"},
			"javascript": {"js"},
			"typescript": {"ts"},
			"kubernetes": {"k8s"},
			"react":      {"react.js", "reactjs"},
			"node.js":    {"nodejs", "node js"},
			"postgresql": {"postgres"},
			"aws":        {"amazon web services"},
			"gcp":        {"google cloud"},
			"ci/cd":      {"continuous integration", "continuous delivery"},
		},
	}
}

// Canonicalize maps a skill spelling to its canonical taxonomy keyword. The
// input is lowercased and trimmed; alias spellings resolve to the keyword they
// belong to, anything else is returned as-is.
func Canonicalize(tax *types.Taxonomy, skill string) string {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	if normalized == "" {
		return ""
	}

	for canonical, aliases := range tax.SkillAliases {
		for _, alias := range aliases {
			if normalized == strings.ToLower(alias) {
				return canonical
			}
		}
	}
	return normalized
}
