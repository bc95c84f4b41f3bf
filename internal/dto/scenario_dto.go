package dto

import "github.com/praxis-ed/praxis-api/internal/models"

// ScenarioResponse serializes a catalog entry.
type ScenarioResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

// AccessTokenResponse carries a provider token granting entry into a
// roleplay session for one scenario.
type AccessTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// NewScenarioResponse converts a Scenario model into a DTO.
func NewScenarioResponse(model models.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Difficulty:  model.Difficulty,
	}
}

// NewScenarioResponseSlice converts scenario models into DTOs.
func NewScenarioResponseSlice(models []models.Scenario) []ScenarioResponse {
	responses := make([]ScenarioResponse, 0, len(models))
	for _, scenario := range models {
		responses = append(responses, NewScenarioResponse(scenario))
	}

	return responses
}
