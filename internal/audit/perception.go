package audit

import (
	"fmt"

	"github.com/Elactrac/newtation-mcp/internal/reference"
)

// PerceptionResult is the output of a brand perception audit.
type PerceptionResult struct {
	AuditID      string `json:"audit_id"`
	Brand        string `json:"brand"`
	Industry     string `json:"industry"`
	Website      string `json:"website,omitempty"`
	Score        int    `json:"score"`
	ClarityScore int    `json:"clarity_score"`

	ToneSignals     []reference.ToneSignal `json:"tone_signals"`
	Findings        []Finding              `json:"findings"`
	TestPrompts     []string               `json:"test_prompts"`
	Recommendations []string               `json:"recommendations"`
	NextStep        string                 `json:"next_step"`
}

// PerceptionAudit scores how AI models likely perceive a brand within
// its industry. The overall score hashes brand+industry; the clarity
// sub-score grows with the number of distinct descriptive words in the
// industry field and never decreases as more detail is added.
func PerceptionAudit(ref *reference.Tables, brand, industry, website string) *PerceptionResult {
	score := Score(brand + industry)

	clarity := scoreFloor + 10*distinctWords(industry)
	if clarity > 100 {
		clarity = 100
	}

	findings := []Finding{
		{
			Observation: fmt.Sprintf("%s likely appears as a regional or niche player rather than a category authority", brand),
			Evidence:    "brands without active citation signals default to generic category language",
		},
		{
			Observation: "AI tends to describe the brand by function rather than by outcome or unique method",
		},
		{
			Observation: fmt.Sprintf("%s is likely missing from top-of-mind lists when users ask for %s recommendations", brand, industry),
		},
	}

	prompts := make([]string, len(ref.TestPrompts))
	for i, tmpl := range ref.TestPrompts {
		subject := brand
		if i == 0 {
			// The first prompt asks about the category, not the brand.
			subject = industry
		}
		prompts[i] = fmt.Sprintf(tmpl, subject)
	}

	return &PerceptionResult{
		AuditID:         auditID("brand_perception_audit", brand, industry, website),
		Brand:           brand,
		Industry:        industry,
		Website:         website,
		Score:           score,
		ClarityScore:    clarity,
		ToneSignals:     ref.ToneSignals,
		Findings:        findings,
		TestPrompts:     prompts,
		Recommendations: ref.PerceptionQuickWins,
		NextStep:        fmt.Sprintf("Run citation_check to see which specific topics %s needs content for", brand),
	}
}
