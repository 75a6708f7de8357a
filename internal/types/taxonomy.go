package types

// Taxonomy is the static skill and signal vocabulary consumed by the
// generation gate: per-section JD signal phrases, the hard/soft skill sets,
// and alias spellings that map to canonical skill names.
type Taxonomy struct {
	JDSignals    map[string][]string `json:"jd_signals,omitempty"`
	HardSkills   []string            `json:"hard_skills,omitempty"`
	SoftSkills   []string            `json:"soft_skills,omitempty"`
	SkillAliases map[string][]string `json:"skill_aliases,omitempty"`
}
