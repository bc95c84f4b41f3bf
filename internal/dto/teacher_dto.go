package dto

import (
	"time"

	"github.com/praxis-ed/praxis-api/internal/models"
)

// Completion buckets computed from attempt statuses at read time. Nothing is
// stored; a teacher's bucket follows their attempts.
const (
	CompletionNotStarted = "not_started"
	CompletionInProgress = "in_progress"
	CompletionCompleted  = "completed"
)

// TeacherListFilter narrows the admin teacher listing.
type TeacherListFilter struct {
	Completion *string `query:"status" validate:"omitempty,oneof=not_started in_progress completed"`
}

// EvaluationResponse serializes the aggregate evaluation of a teacher.
type EvaluationResponse struct {
	Summary     string    `json:"summary"`
	MeanScore   float64   `json:"mean_score"`
	GeneratedAt time.Time `json:"generated_at"`
}

// TeacherProgressResponse is the read-side view of one teacher: profile,
// attempts in catalog order and the evaluation once all four are complete.
type TeacherProgressResponse struct {
	Teacher    UserResponse        `json:"teacher"`
	Attempts   []AttemptResponse   `json:"attempts"`
	Evaluation *EvaluationResponse `json:"evaluation"`
}

// TeacherSummaryResponse is one row of the admin teacher listing.
type TeacherSummaryResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Subject        string   `json:"subject,omitempty"`
	Institution    string   `json:"institution,omitempty"`
	AttemptCount   int      `json:"attempt_count"`
	CompletedCount int      `json:"completed_count"`
	Completion     string   `json:"completion"`
	MeanScore      *float64 `json:"mean_score"`
}

// NewEvaluationResponse converts an Evaluation model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		Summary:     model.Summary,
		MeanScore:   model.MeanScore,
		GeneratedAt: model.GeneratedAt,
	}
}
