package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/praxis-ed/praxis-api/internal/dto"
	"github.com/praxis-ed/praxis-api/internal/models"
	"github.com/praxis-ed/praxis-api/internal/observability"
	"github.com/praxis-ed/praxis-api/internal/repository"
)

var (
	// ErrTeacherNotFound indicates the teacher account does not exist.
	ErrTeacherNotFound = errors.New("teacher not found")
	// ErrScenarioNotFound indicates the scenario is not part of the catalog.
	ErrScenarioNotFound = errors.New("scenario not found")
)

// ProgressInvalidator drops cached read-side projections for a teacher after
// their attempt state changes.
type ProgressInvalidator interface {
	InvalidateTeacher(ctx context.Context, teacherID uint)
}

// AttemptService is the only writer of attempt rows. It records the outcome
// of finished roleplay sessions and holds the at-most-one-attempt-per-pair
// invariant, sequentially and under concurrent submissions.
type AttemptService interface {
	RecordSubmission(ctx context.Context, teacherID uint, payload dto.SubmissionRequest) (dto.SubmissionResponse, error)
}

type attemptService struct {
	attempts    repository.AttemptRepository
	users       repository.UserRepository
	scenarios   repository.ScenarioRepository
	gateway     SessionGateway
	evaluations EvaluationService
	invalidator ProgressInvalidator
	validator   *validator.Validate
	locks       *pairLock
	logger      zerolog.Logger
}

// NewAttemptService constructs an AttemptService instance.
func NewAttemptService(attemptRepo repository.AttemptRepository, userRepo repository.UserRepository, scenarioRepo repository.ScenarioRepository, gateway SessionGateway, evaluations EvaluationService, invalidator ProgressInvalidator, validate *validator.Validate, logger zerolog.Logger) AttemptService {
	return &attemptService{
		attempts:    attemptRepo,
		users:       userRepo,
		scenarios:   scenarioRepo,
		gateway:     gateway,
		evaluations: evaluations,
		invalidator: invalidator,
		validator:   validate,
		locks:       newPairLock(),
		logger:      logger.With().Str("component", "attempt_service").Logger(),
	}
}

// RecordSubmission fetches the session outcome from the provider and upserts
// the teacher's attempt for the scenario. A failed gateway fetch leaves all
// state untouched; a failed evaluation recompute never rolls back the
// already-persisted attempt. Re-submitting the same pair overwrites the
// previous outcome, last write wins.
func (s *attemptService) RecordSubmission(ctx context.Context, teacherID uint, payload dto.SubmissionRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrTeacherNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if !teacher.IsTeacher() {
		return dto.SubmissionResponse{}, ErrTeacherNotFound
	}

	if _, err := s.scenarios.GetByID(ctx, payload.ScenarioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrScenarioNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	// No automatic retry here; the caller decides whether to re-submit.
	outcome, err := s.gateway.FetchOutcome(ctx, payload.SessionID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	unlock := s.locks.lock(teacherID, payload.ScenarioID)
	defer unlock()

	score := outcome.Score
	attempt := models.Attempt{
		TeacherID:  teacherID,
		ScenarioID: payload.ScenarioID,
		Status:     models.AttemptStatusCompleted,
		SessionID:  payload.SessionID,
		RawPayload: datatypes.JSONMap(outcome.Raw),
		Score:      &score,
		Feedback:   outcome.Feedback,
	}

	if err := s.attempts.Upsert(ctx, &attempt); err != nil {
		return dto.SubmissionResponse{}, err
	}

	observability.SubmissionsRecorded().WithLabelValues(strconv.FormatUint(uint64(payload.ScenarioID), 10)).Inc()
	s.logger.Info().
		Uint("teacher_id", teacherID).
		Uint("scenario_id", payload.ScenarioID).
		Str("session_id", payload.SessionID).
		Msg("attempt recorded")

	// The attempt is committed; aggregation is an independent unit of
	// failure and any later submission retries it.
	triggered := false
	if evaluation, err := s.evaluations.MaybeRecompute(ctx, teacherID); err != nil {
		s.logger.Warn().Err(err).Uint("teacher_id", teacherID).Msg("evaluation recompute failed")
	} else if evaluation != nil {
		triggered = true
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateTeacher(ctx, teacherID)
	}

	return dto.SubmissionResponse{Score: outcome.Score, EvaluationGenerated: triggered}, nil
}
