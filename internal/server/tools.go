package server

import (
	"github.com/Elactrac/newtation-mcp/internal/reference"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "brand_perception_audit",
			Description: "Analyze how AI language models currently perceive and describe your brand. " +
				"Returns a structured audit covering tone, category placement, trust signals, " +
				"and recommended prompts you can use to test your own AI presence.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"brand_name": map[string]any{
						"type":        "string",
						"description": "The brand or company name to audit (e.g. 'Newtation')",
					},
					"industry": map[string]any{
						"type":        "string",
						"description": "Industry or category (e.g. 'SEO agency', 'SaaS', 'e-commerce')",
					},
					"website": map[string]any{
						"type":        "string",
						"description": "Brand website URL (optional, used for context)",
					},
				},
				"required": []string{"brand_name", "industry"},
			},
		},
		{
			Name: "citation_check",
			Description: "Check whether and how AI models cite your brand as a credible source. " +
				"Returns citation likelihood, content gaps, and actionable recommendations " +
				"to improve how often AI references your brand in answers.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"brand_name": map[string]any{
						"type":        "string",
						"description": "Brand name to check citation status for",
					},
					"topics": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Topics you want to be cited for (e.g. ['AI SEO', 'brand visibility', 'MCP servers'])",
					},
				},
				"required": []string{"brand_name", "topics"},
			},
		},
		{
			Name: "competitor_comparison",
			Description: "Compare how AI models perceive your brand versus your key competitors. " +
				"Surfaces which competitor is winning AI mindshare and why, with a gap analysis " +
				"and concrete steps to close the visibility gap.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"brand_name": map[string]any{
						"type":        "string",
						"description": "Your brand name",
					},
					"competitors": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "List of competitor brand names to compare against",
					},
					"category": map[string]any{
						"type":        "string",
						"description": "The market category or service type being compared",
					},
				},
				"required": []string{"brand_name", "competitors", "category"},
			},
		},
		{
			Name: "entity_clarity_score",
			Description: "Score how clearly AI models understand what your brand is, what it does, " +
				"and who it serves. A low score means AI confuses you with others or gives " +
				"vague descriptions. Returns a 0-100 score with specific fixes.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"brand_name": map[string]any{
						"type":        "string",
						"description": "Brand name to score",
					},
					"tagline_or_description": map[string]any{
						"type":        "string",
						"description": "Your brand's own description of itself (from homepage or About page)",
					},
				},
				"required": []string{"brand_name"},
			},
		},
		{
			Name: "geo_recommendations",
			Description: "Test whether AI recommends your brand when users ask location-specific questions. " +
				"Returns which cities/regions your brand appears in AI recommendations, " +
				"which it's missing from, and how to expand your geographic AI footprint.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"brand_name": map[string]any{
						"type":        "string",
						"description": "Brand name to check",
					},
					"service": map[string]any{
						"type":        "string",
						"description": "The service or product to test recommendations for",
					},
					"target_locations": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Cities or regions you want to appear in (e.g. ['New York', 'London', 'Sydney'])",
					},
				},
				"required": []string{"brand_name", "service", "target_locations"},
			},
		},
	}
}

// registerTools binds every tool definition to its handler. Order here
// is the order tools/list advertises.
func registerTools(reg *Registry, ref *reference.Tables) error {
	handlers := map[string]HandlerFunc{
		"brand_perception_audit": perceptionHandler(ref),
		"citation_check":         citationHandler(ref),
		"competitor_comparison":  competitorHandler(ref),
		"entity_clarity_score":   clarityHandler(ref),
		"geo_recommendations":    geoHandler(ref),
	}

	for _, tool := range GetToolDefinitions() {
		if err := reg.Register(tool, handlers[tool.Name]); err != nil {
			return err
		}
	}
	return nil
}
