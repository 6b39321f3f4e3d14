package audit

import (
	"fmt"
	"sort"

	"github.com/Elactrac/newtation-mcp/internal/reference"
)

// CompetitorEntry is one row of a competitor comparison ranking.
type CompetitorEntry struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Strength  string `json:"strength"`
	Rationale string `json:"rationale"`
	You       bool   `json:"you,omitempty"`
}

// ComparisonResult is the output of a competitor comparison.
type ComparisonResult struct {
	AuditID    string `json:"audit_id"`
	Brand      string `json:"brand"`
	Category   string `json:"category"`
	BrandScore int    `json:"brand_score"`

	// Ranking covers the brand and every competitor, highest score
	// first; equal scores are ordered by name.
	Ranking []CompetitorEntry `json:"ranking"`

	Leader      string `json:"leader"`
	LeaderScore int    `json:"leader_score"`
	Gap         int    `json:"gap"`

	Findings        []Finding `json:"findings"`
	Recommendations []string  `json:"recommendations"`
}

// CompetitorComparison ranks the brand against its competitors on AI
// visibility within a category.
func CompetitorComparison(ref *reference.Tables, brand string, competitors []string, category string) *ComparisonResult {
	entries := make([]CompetitorEntry, 0, len(competitors)+1)
	entries = append(entries, makeEntry(ref, brand, category, true))
	for _, c := range competitors {
		entries = append(entries, makeEntry(ref, c, category, false))
	}

	// Score descending; lexical ascending on ties.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})

	brandScore := Score(brand + category)
	leader := entries[0]
	gap := leader.Score - brandScore
	if gap < 0 {
		gap = 0
	}

	findings := []Finding{
		{
			Observation: fmt.Sprintf("%s leads AI visibility in %s", leader.Name, category),
			Evidence:    fmt.Sprintf("score %d/100", leader.Score),
		},
		{
			Observation: "high-visibility brands have more indexed content, clearer entity definition, and consistent mentions across diverse sources",
		},
	}
	if gap > 0 {
		findings = append(findings, Finding{
			Observation: fmt.Sprintf("%s trails the leader by %d points", brand, gap),
		})
	}

	return &ComparisonResult{
		AuditID:         auditID("competitor_comparison", append([]string{brand, category}, competitors...)...),
		Brand:           brand,
		Category:        category,
		BrandScore:      brandScore,
		Ranking:         entries,
		Leader:          leader.Name,
		LeaderScore:     leader.Score,
		Gap:             gap,
		Findings:        findings,
		Recommendations: ref.CompetitorRoadmap,
	}
}

func makeEntry(ref *reference.Tables, name, category string, you bool) CompetitorEntry {
	score := Score(name + category)
	strength := reference.BandFor(ref.StrengthBands, score)
	rationale := fmt.Sprintf("%s AI visibility signals in %s", strength, category)
	return CompetitorEntry{
		Name:      name,
		Score:     score,
		Strength:  strength,
		Rationale: rationale,
		You:       you,
	}
}
