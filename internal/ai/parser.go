package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pawprint/labresolve/internal/match"
	"github.com/pawprint/labresolve/internal/model"
	"github.com/pawprint/labresolve/internal/service"
)

// parseVerdict extracts a verdict from the model's JSON reply. A "match"
// must name an item from the supplied catalog; anything else is rejected
// rather than trusted.
func parseVerdict(content string, items []model.CanonicalItem) (*service.Verdict, error) {
	var reply struct {
		NewItem *struct {
			Name        string `json:"name"`
			DisplayName string `json:"displayName"`
			DefaultUnit string `json:"defaultUnit"`
		} `json:"newItem"`
		Match      string  `json:"match"`
		Reasoning  string  `json:"reasoning"`
		Confidence float64 `json:"confidence"`
	}

	content = stripMarkdownFence(content)
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	switch {
	case reply.Match != "":
		normMatch := match.Normalize(reply.Match)
		for i := range items {
			if match.Normalize(items[i].Name) == normMatch {
				return &service.Verdict{
					Item:       &items[i],
					Confidence: reply.Confidence,
					Reasoning:  reply.Reasoning,
				}, nil
			}
		}
		return nil, fmt.Errorf("matched item %q is not in the catalog", reply.Match)

	case reply.NewItem != nil:
		if reply.NewItem.Name == "" {
			return nil, fmt.Errorf("new item suggestion has no name")
		}
		return &service.Verdict{
			Draft: &model.CanonicalItem{
				Name:        reply.NewItem.Name,
				DisplayName: reply.NewItem.DisplayName,
				DefaultUnit: reply.NewItem.DefaultUnit,
				Source:      model.ItemSourceAI,
			},
			Reasoning: reply.Reasoning,
		}, nil

	default:
		// Neither a match nor a suggestion: a declined verdict.
		return &service.Verdict{Reasoning: reply.Reasoning}, nil
	}
}

// stripMarkdownFence removes a ```json ... ``` wrapper if present.
func stripMarkdownFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
