package audit

import (
	"reflect"
	"testing"
)

func TestPerceptionAudit(t *testing.T) {
	ref := loadTables(t)

	result := PerceptionAudit(ref, "Acme Corp", "SEO agency", "https://acme.example")

	if result.Score < 40 || result.Score > 90 {
		t.Errorf("Score = %d, want within [40, 90]", result.Score)
	}
	if result.ClarityScore < 0 || result.ClarityScore > 100 {
		t.Errorf("ClarityScore = %d, want within [0, 100]", result.ClarityScore)
	}
	if len(result.Findings) == 0 {
		t.Error("expected at least one finding")
	}
	if len(result.Recommendations) == 0 {
		t.Error("expected at least one recommendation")
	}
	if len(result.ToneSignals) != len(ref.ToneSignals) {
		t.Errorf("ToneSignals: got %d rows, want %d", len(result.ToneSignals), len(ref.ToneSignals))
	}
	if len(result.TestPrompts) != len(ref.TestPrompts) {
		t.Errorf("TestPrompts: got %d, want %d", len(result.TestPrompts), len(ref.TestPrompts))
	}
	if result.AuditID == "" {
		t.Error("AuditID is empty")
	}
}

func TestPerceptionAudit_Deterministic(t *testing.T) {
	ref := loadTables(t)

	a := PerceptionAudit(ref, "Acme Corp", "SEO agency", "")
	b := PerceptionAudit(ref, "Acme Corp", "SEO agency", "")

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

// Adding distinguishing descriptive detail to the industry field must
// never lower the clarity sub-score.
func TestPerceptionAudit_ClarityMonotonicInIndustryDetail(t *testing.T) {
	ref := loadTables(t)

	industries := []string{
		"agency",
		"SEO agency",
		"technical SEO agency",
		"technical SEO agency for e-commerce brands",
	}

	prev := -1
	for _, industry := range industries {
		result := PerceptionAudit(ref, "Acme Corp", industry, "")
		if result.ClarityScore < prev {
			t.Errorf("ClarityScore dropped to %d for %q (previous %d)", result.ClarityScore, industry, prev)
		}
		prev = result.ClarityScore
	}
}
