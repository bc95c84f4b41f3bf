package dto

import (
	"time"

	"github.com/praxis-ed/praxis-api/internal/models"
)

// SubmissionRequest describes the payload notifying the platform that a
// roleplay session finished for a scenario.
type SubmissionRequest struct {
	ScenarioID uint   `json:"scenario_id" validate:"required,gt=0"`
	SessionID  string `json:"session_id" validate:"required,min=1,max=255"`
}

// SubmissionResponse is returned after a submission has been recorded.
type SubmissionResponse struct {
	Score               float64 `json:"score"`
	EvaluationGenerated bool    `json:"evaluation_generated"`
}

// AttemptResponse serializes a teacher's attempt at one scenario.
type AttemptResponse struct {
	ID         uint                   `json:"id"`
	ScenarioID uint                   `json:"scenario_id"`
	Scenario   ScenarioResponse       `json:"scenario"`
	Status     string                 `json:"status"`
	SessionID  string                 `json:"session_id,omitempty"`
	Score      *float64               `json:"score"`
	Feedback   string                 `json:"feedback,omitempty"`
	RawPayload map[string]interface{} `json:"raw_payload,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// NewAttemptResponse converts an Attempt model into a DTO.
func NewAttemptResponse(model models.Attempt) AttemptResponse {
	response := AttemptResponse{
		ID:         model.ID,
		ScenarioID: model.ScenarioID,
		Status:     model.Status,
		SessionID:  model.SessionID,
		Score:      model.Score,
		Feedback:   model.Feedback,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}

	if model.Scenario.ID != 0 {
		response.Scenario = NewScenarioResponse(model.Scenario)
	}

	if len(model.RawPayload) > 0 {
		response.RawPayload = map[string]interface{}(model.RawPayload)
	}

	return response
}

// NewAttemptResponseSlice converts attempt models into DTOs.
func NewAttemptResponseSlice(models []models.Attempt) []AttemptResponse {
	responses := make([]AttemptResponse, 0, len(models))
	for _, attempt := range models {
		responses = append(responses, NewAttemptResponse(attempt))
	}

	return responses
}
