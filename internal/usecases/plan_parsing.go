package usecases

import (
	"encoding/json"
	"fmt"
	"strings"

	"focus_forge/internal/models"
)

// PlanSeparator splits the prose from the JSON in a weekly plan reply.
const PlanSeparator = "|||PLAN|||"

// ParsePlanResponse returns the prose and up to MaxOutcomesPerWeek
// suggestions. Without a separator the whole reply is prose.
func ParsePlanResponse(response string) (string, []models.PlanSuggestion, error) {
	if !strings.Contains(response, PlanSeparator) {
		return CleanAdvice(response), nil, nil
	}

	parts := strings.SplitN(response, PlanSeparator, 3)
	prose := CleanAdvice(parts[0])

	jsonText := strings.TrimSpace(parts[1])
	jsonText = strings.TrimPrefix(jsonText, "```json")
	jsonText = strings.TrimPrefix(jsonText, "```")
	jsonText = strings.TrimSuffix(jsonText, "```")
	jsonText = strings.TrimSpace(jsonText)

	if jsonText == "" || jsonText == "[]" {
		return prose, nil, nil
	}

	suggestions, err := parsePlanJSON(jsonText)
	if err != nil {
		return prose, nil, fmt.Errorf("plan json: %w", err)
	}
	return prose, suggestions, nil
}

func parsePlanJSON(jsonText string) ([]models.PlanSuggestion, error) {
	var raw []models.PlanSuggestion

	if strings.HasPrefix(jsonText, "{") {
		var single models.PlanSuggestion
		if err := json.Unmarshal([]byte(jsonText), &single); err != nil {
			return nil, err
		}
		raw = []models.PlanSuggestion{single}
	} else if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, err
	}

	suggestions := make([]models.PlanSuggestion, 0, len(raw))
	for _, s := range raw {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			continue
		}

		commitments := []string{}
		for _, c := range s.Commitments {
			if c = strings.TrimSpace(c); c != "" {
				commitments = append(commitments, c)
			}
		}

		suggestions = append(suggestions, models.PlanSuggestion{Title: title, Commitments: commitments})
		if len(suggestions) == models.MaxOutcomesPerWeek {
			break
		}
	}
	return suggestions, nil
}
