package audit

import (
	"fmt"

	"github.com/Elactrac/newtation-mcp/internal/reference"
)

// geoThreshold is the score above which a brand counts as appearing in
// AI recommendations for a location.
const geoThreshold = 62

// LocationFinding is the per-location verdict of a geo audit.
type LocationFinding struct {
	Location    string `json:"location"`
	Recommended bool   `json:"recommended"`
	Action      string `json:"action"`
}

// GeoResult is the output of a geographic recommendation audit.
type GeoResult struct {
	AuditID string `json:"audit_id"`
	Brand   string `json:"brand"`
	Service string `json:"service"`

	AppearingCount int `json:"appearing_count"`
	LocationCount  int `json:"location_count"`

	Locations       []LocationFinding `json:"locations"`
	Findings        []Finding         `json:"findings"`
	Recommendations []string          `json:"recommendations"`
	FastestWin      string            `json:"fastest_win"`
}

// GeoRecommendations judges, per target location, whether AI models
// are likely to recommend the brand for a service there. Output order
// matches input order, one entry per location.
func GeoRecommendations(ref *reference.Tables, brand, service string, locations []string) *GeoResult {
	entries := make([]LocationFinding, len(locations))
	appearing := 0
	firstMissing := ""
	for i, loc := range locations {
		recommended := Score(brand+loc) > geoThreshold
		action := fmt.Sprintf(ref.GeoActions.Missing, loc)
		if recommended {
			action = ref.GeoActions.Present
			appearing++
		} else if firstMissing == "" {
			firstMissing = loc
		}
		entries[i] = LocationFinding{Location: loc, Recommended: recommended, Action: action}
	}

	findings := []Finding{
		{
			Observation: fmt.Sprintf("%s appears in AI recommendations for %d of %d target locations", brand, appearing, len(locations)),
		},
		{
			Observation: fmt.Sprintf("location-specific queries like \"best %s in <city>\" are answered from training data; absent brands are invisible even where they operate", service),
		},
	}

	fastestWin := "All target locations are covered; defend them with fresh local content."
	if firstMissing != "" {
		fastestWin = fmt.Sprintf("Create one strong piece of %s-specific content this week.", firstMissing)
	}

	return &GeoResult{
		AuditID:         auditID("geo_recommendations", append([]string{brand, service}, locations...)...),
		Brand:           brand,
		Service:         service,
		AppearingCount:  appearing,
		LocationCount:   len(locations),
		Locations:       entries,
		Findings:        findings,
		Recommendations: ref.GeoPlaybook,
		FastestWin:      fastestWin,
	}
}
