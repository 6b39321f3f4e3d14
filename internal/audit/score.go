package audit

import (
	"strings"

	"github.com/google/uuid"
)

// Scores live on a 0-100 scale. The hash maps any input into [40, 90]
// so demo output looks plausible without ever claiming perfection.
const (
	scoreFloor = 40
	scoreSpan  = 51
)

// auditNamespace seeds deterministic audit IDs. Fixed so the same tool
// invoked with the same inputs always yields the same ID.
var auditNamespace = uuid.MustParse("7a1e3f62-9c4b-4d8a-b1f0-2e5d6c7a8b90")

// Score derives a deterministic 40-90 score from a string by summing
// its code points. Not a measure of anything real; it exists so
// repeated audits of the same brand agree with each other.
func Score(text string) int {
	sum := 0
	for _, r := range text {
		sum += int(r)
	}
	return scoreFloor + sum%scoreSpan
}

// NormalizeSpace collapses all runs of whitespace to single spaces and
// trims the ends. Scores computed over normalized text are stable
// under whitespace-only edits.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// auditID produces a stable identifier for one audit: the same tool
// and inputs always map to the same UUID.
func auditID(tool string, inputs ...string) string {
	payload := tool + "\x00" + strings.Join(inputs, "\x00")
	return uuid.NewSHA1(auditNamespace, []byte(payload)).String()
}

// distinctWords counts unique lowercase words in a description.
func distinctWords(s string) int {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		seen[w] = true
	}
	return len(seen)
}

// Finding is one supporting observation in an audit result.
type Finding struct {
	Observation string `json:"observation"`
	Evidence    string `json:"evidence,omitempty"`
}
