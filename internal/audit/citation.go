package audit

import (
	"fmt"

	"github.com/Elactrac/newtation-mcp/internal/reference"
)

// citationThreshold is the score above which a topic counts as cited.
const citationThreshold = 65

// TopicFinding is the per-topic verdict of a citation check.
type TopicFinding struct {
	Topic  string `json:"topic"`
	Cited  bool   `json:"cited"`
	Action string `json:"action"`
}

// CitationResult is the output of a citation check.
type CitationResult struct {
	AuditID      string `json:"audit_id"`
	Brand        string `json:"brand"`
	CitedCount   int    `json:"cited_count"`
	TopicCount   int    `json:"topic_count"`
	CitationRate int    `json:"citation_rate_percent"`

	Topics          []TopicFinding `json:"topics"`
	Findings        []Finding      `json:"findings"`
	Recommendations []string       `json:"recommendations"`
}

// CitationCheck judges, per topic, whether AI models are likely to
// cite the brand as a source. Output order matches input order, one
// entry per topic.
func CitationCheck(ref *reference.Tables, brand string, topics []string) *CitationResult {
	findings := make([]TopicFinding, len(topics))
	cited := 0
	for i, topic := range topics {
		isCited := Score(brand+topic) > citationThreshold
		action := ref.CitationActions.Uncited
		if isCited {
			action = ref.CitationActions.Cited
			cited++
		}
		findings[i] = TopicFinding{Topic: topic, Cited: isCited, Action: action}
	}

	rate := 0
	if len(topics) > 0 {
		rate = cited * 100 / len(topics)
	}

	return &CitationResult{
		AuditID:      auditID("citation_check", append([]string{brand}, topics...)...),
		Brand:        brand,
		CitedCount:   cited,
		TopicCount:   len(topics),
		CitationRate: rate,
		Topics:       findings,
		Findings: []Finding{
			{
				Observation: fmt.Sprintf("%s is cited for %d of %d tracked topics", brand, cited, len(topics)),
				Evidence:    fmt.Sprintf("citation rate %d%%", rate),
			},
			{
				Observation: "AI models answer from sources they have learned to trust; uncited topics mean invisibility at the moment of recommendation",
			},
		},
		Recommendations: ref.CitationRecommendations,
	}
}
