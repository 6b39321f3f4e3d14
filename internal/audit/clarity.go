package audit

import (
	"fmt"

	"github.com/Elactrac/newtation-mcp/internal/reference"
)

// ClarityResult is the output of an entity clarity score.
type ClarityResult struct {
	AuditID string `json:"audit_id"`
	Brand   string `json:"brand"`

	// Score is on the documented 0-100 scale.
	Score       int    `json:"score"`
	Band        string `json:"band"`
	Description string `json:"description,omitempty"`

	Findings        []Finding `json:"findings"`
	Recommendations []string  `json:"recommendations"`
	PriorityFix     string    `json:"priority_fix"`
}

// EntityClarityScore scores how clearly AI models understand what a
// brand is. The tagline is whitespace-normalized before scoring, so
// whitespace-only edits never change the result.
func EntityClarityScore(ref *reference.Tables, brand, tagline string) *ClarityResult {
	desc := NormalizeSpace(tagline)

	input := brand
	if desc != "" {
		input = brand + " " + desc
	}
	score := Score(input)
	band := reference.BandFor(ref.ClarityBands, score)

	findings := []Finding{
		{
			Observation: fmt.Sprintf("AI models hold a %s entity representation of %s", band, brand),
			Evidence:    fmt.Sprintf("clarity score %d/100", score),
		},
	}
	switch band {
	case "Strong":
		findings = append(findings, Finding{
			Observation: "AI descriptions likely capture the brand's positioning well",
		})
	case "Moderate":
		findings = append(findings, Finding{
			Observation: "AI descriptions are likely partially accurate but miss key differentiators",
		})
	default:
		findings = append(findings, Finding{
			Observation: "AI descriptions are likely vague or hedged, and the brand risks confusion with similarly named entities",
		})
	}
	if desc == "" {
		findings = append(findings, Finding{
			Observation: "no brand description was provided; AI has only the name to anchor the entity on",
		})
	}

	return &ClarityResult{
		AuditID:         auditID("entity_clarity_score", brand, desc),
		Brand:           brand,
		Score:           score,
		Band:            band,
		Description:     desc,
		Findings:        findings,
		Recommendations: ref.EntityChecklist,
		PriorityFix:     ref.PriorityFixes[band],
	}
}
