package reference

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var rawTables []byte

// Band maps a score threshold to a human-readable label. A score falls
// into the first band whose Min it meets when bands are ordered from
// highest Min to lowest.
type Band struct {
	Label string `yaml:"label" json:"label"`
	Min   int    `yaml:"min" json:"min"`
}

// ToneSignal is one row of the perception audit's tone table. It
// carries json tags because the perception result embeds it directly.
type ToneSignal struct {
	Signal string `yaml:"signal" json:"signal"`
	Status string `yaml:"status" json:"status"`
}

// Tables holds every static reference table the audit handlers draw
// from. Loaded once at startup and read-only afterwards.
type Tables struct {
	StrengthBands []Band       `yaml:"strength_bands"`
	ClarityBands  []Band       `yaml:"clarity_bands"`
	ToneSignals   []ToneSignal `yaml:"tone_signals"`
	TestPrompts   []string     `yaml:"test_prompts"`

	PerceptionQuickWins []string `yaml:"perception_quick_wins"`

	CitationActions struct {
		Cited   string `yaml:"cited"`
		Uncited string `yaml:"uncited"`
	} `yaml:"citation_actions"`
	CitationRecommendations []string `yaml:"citation_recommendations"`

	CompetitorRoadmap []string `yaml:"competitor_roadmap"`

	EntityChecklist []string          `yaml:"entity_checklist"`
	PriorityFixes   map[string]string `yaml:"priority_fixes"`

	GeoActions struct {
		Present string `yaml:"present"`
		Missing string `yaml:"missing"`
	} `yaml:"geo_actions"`
	GeoPlaybook []string `yaml:"geo_playbook"`
}

// Load parses the embedded reference tables and validates that every
// table the handlers depend on is present and well-formed. A failure
// here is a startup error; the server must not begin serving without
// complete tables.
func Load() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(rawTables, &t); err != nil {
		return nil, fmt.Errorf("parse reference tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid reference tables: %w", err)
	}
	return &t, nil
}

func (t *Tables) validate() error {
	lists := map[string]int{
		"strength_bands":           len(t.StrengthBands),
		"clarity_bands":            len(t.ClarityBands),
		"tone_signals":             len(t.ToneSignals),
		"test_prompts":             len(t.TestPrompts),
		"perception_quick_wins":    len(t.PerceptionQuickWins),
		"citation_recommendations": len(t.CitationRecommendations),
		"competitor_roadmap":       len(t.CompetitorRoadmap),
		"entity_checklist":         len(t.EntityChecklist),
		"geo_playbook":             len(t.GeoPlaybook),
	}
	for name, n := range lists {
		if n == 0 {
			return fmt.Errorf("table %q is empty", name)
		}
	}
	if t.CitationActions.Cited == "" || t.CitationActions.Uncited == "" {
		return fmt.Errorf("citation_actions must define both cited and uncited")
	}
	if t.GeoActions.Present == "" || t.GeoActions.Missing == "" {
		return fmt.Errorf("geo_actions must define both present and missing")
	}
	if err := validateTemplate("geo_actions.missing", t.GeoActions.Missing); err != nil {
		return err
	}
	for i, p := range t.TestPrompts {
		if err := validateTemplate(fmt.Sprintf("test_prompts[%d]", i), p); err != nil {
			return err
		}
	}
	if err := validateBands("strength_bands", t.StrengthBands); err != nil {
		return err
	}
	if err := validateBands("clarity_bands", t.ClarityBands); err != nil {
		return err
	}
	for _, b := range t.ClarityBands {
		if _, ok := t.PriorityFixes[b.Label]; !ok {
			return fmt.Errorf("priority_fixes missing entry for clarity band %q", b.Label)
		}
	}
	return nil
}

// validateTemplate requires exactly one %s verb and no other % verbs.
// These templates get a single value substituted at use; any other
// shape would leak format noise into tool output.
func validateTemplate(name, s string) error {
	if strings.Count(s, "%s") != 1 || strings.Count(s, "%") != 1 {
		return fmt.Errorf("%s: template %q must contain exactly one %%s verb", name, s)
	}
	return nil
}

// validateBands requires bands to cover the full 0-100 scale: at least
// one band with Min 0, all thresholds in range and distinct.
func validateBands(name string, bands []Band) error {
	seen := make(map[int]bool, len(bands))
	lowest := 101
	for _, b := range bands {
		if b.Label == "" {
			return fmt.Errorf("%s: band with empty label", name)
		}
		if b.Min < 0 || b.Min > 100 {
			return fmt.Errorf("%s: band %q threshold %d out of range", name, b.Label, b.Min)
		}
		if seen[b.Min] {
			return fmt.Errorf("%s: duplicate threshold %d", name, b.Min)
		}
		seen[b.Min] = true
		if b.Min < lowest {
			lowest = b.Min
		}
	}
	if lowest != 0 {
		return fmt.Errorf("%s: no band covers score 0", name)
	}
	return nil
}

// BandFor returns the label of the highest band whose threshold the
// score meets.
func BandFor(bands []Band, score int) string {
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min > sorted[j].Min })
	for _, b := range sorted {
		if score >= b.Min {
			return b.Label
		}
	}
	return sorted[len(sorted)-1].Label
}
