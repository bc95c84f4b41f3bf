package models

import (
	"time"

	"gorm.io/datatypes"
)

// Attempt records a teacher's outcome for a single scenario. The unique index
// on (teacher_id, scenario_id) backs the at-most-one-attempt-per-pair
// invariant; re-submissions update the existing row in place.
type Attempt struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	TeacherID  uint              `gorm:"not null;uniqueIndex:idx_attempts_teacher_scenario" json:"teacher_id"`
	ScenarioID uint              `gorm:"not null;uniqueIndex:idx_attempts_teacher_scenario" json:"scenario_id"`
	Status     string            `gorm:"size:32;not null;default:not_started" json:"status"`
	SessionID  string            `gorm:"size:255" json:"session_id"`
	RawPayload datatypes.JSONMap `gorm:"type:json" json:"raw_payload"`
	Score      *float64          `json:"score"`
	Feedback   string            `gorm:"type:text" json:"feedback"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Teacher    User              `gorm:"foreignKey:TeacherID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Scenario   Scenario          `gorm:"foreignKey:ScenarioID" json:"scenario"`
}

const (
	// AttemptStatusNotStarted is the logical default before any submission.
	AttemptStatusNotStarted = "not_started"
	// AttemptStatusInProgress marks a roleplay session started with the
	// provider but not yet submitted. Never set by the submission path.
	AttemptStatusInProgress = "in_progress"
	// AttemptStatusCompleted marks an attempt backed by a finalized session.
	AttemptStatusCompleted = "completed"
)

// IsCompleted reports whether the attempt counts toward program completion.
func (a Attempt) IsCompleted() bool {
	return a.Status == AttemptStatusCompleted
}
