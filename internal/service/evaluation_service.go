package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/praxis-ed/praxis-api/internal/dto"
	"github.com/praxis-ed/praxis-api/internal/models"
	"github.com/praxis-ed/praxis-api/internal/observability"
	"github.com/praxis-ed/praxis-api/internal/repository"
)

// EvaluationService decides when a teacher's program is complete and
// (re)builds the aggregate evaluation.
type EvaluationService interface {
	MaybeRecompute(ctx context.Context, teacherID uint) (*dto.EvaluationResponse, error)
}

type evaluationService struct {
	users       repository.UserRepository
	attempts    repository.AttemptRepository
	evaluations repository.EvaluationRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEvaluationService constructs an EvaluationService instance.
func NewEvaluationService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository, evaluationRepo repository.EvaluationRepository, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		users:       userRepo,
		attempts:    attemptRepo,
		evaluations: evaluationRepo,
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
		now:         time.Now,
	}
}

// MaybeRecompute regenerates the teacher's evaluation if every scenario in
// the catalog has a completed attempt, and returns nil otherwise. The summary
// is a pure function of the persisted attempt data, so concurrent recomputes
// converge on the same content and the teacher_id upsert keeps a single row.
func (s *evaluationService) MaybeRecompute(ctx context.Context, teacherID uint) (*dto.EvaluationResponse, error) {
	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	status := models.AttemptStatusCompleted
	attempts, err := s.attempts.List(ctx, repository.AttemptFilter{TeacherID: &teacherID, Status: &status})
	if err != nil {
		return nil, err
	}

	// Count distinct scenarios; a duplicate row for the same scenario must
	// not let a teacher reach completion with fewer scenarios covered.
	byScenario := make(map[uint]models.Attempt, models.CatalogSize)
	for _, attempt := range attempts {
		if _, seen := byScenario[attempt.ScenarioID]; !seen {
			byScenario[attempt.ScenarioID] = attempt
		}
	}

	if len(byScenario) < models.CatalogSize {
		s.logger.Debug().
			Uint("teacher_id", teacherID).
			Int("completed", len(byScenario)).
			Msg("program incomplete, skipping evaluation")
		return nil, nil
	}

	ordered := make([]models.Attempt, 0, len(byScenario))
	for _, attempt := range byScenario {
		ordered = append(ordered, attempt)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ScenarioID < ordered[j].ScenarioID })

	var total float64
	for _, attempt := range ordered {
		if attempt.Score != nil {
			total += *attempt.Score
		}
	}
	mean := total / float64(models.CatalogSize)

	evaluation := models.Evaluation{
		TeacherID:   teacherID,
		Summary:     buildSummary(teacher.Name, ordered, mean),
		MeanScore:   mean,
		GeneratedAt: s.now(),
	}

	if err := s.evaluations.Upsert(ctx, &evaluation); err != nil {
		return nil, err
	}

	observability.EvaluationsGenerated().Inc()
	s.logger.Info().Uint("teacher_id", teacherID).Float64("mean_score", mean).Msg("evaluation generated")

	response := dto.NewEvaluationResponse(evaluation)
	return &response, nil
}

// buildSummary renders the aggregate summary from the completed attempts.
// Deliberately deterministic: repeated recomputes over unchanged attempts
// must produce byte-identical text.
func buildSummary(teacherName string, attempts []models.Attempt, mean float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall performance summary for %s\n", teacherName)
	fmt.Fprintf(&b, "All %d roleplay scenarios completed. Average score: %s%%.\n\n", models.CatalogSize, formatScore(mean))

	for _, attempt := range attempts {
		title := attempt.Scenario.Title
		if title == "" {
			title = fmt.Sprintf("Scenario %d", attempt.ScenarioID)
		}

		score := 0.0
		if attempt.Score != nil {
			score = *attempt.Score
		}

		fmt.Fprintf(&b, "- %s: %s%%", title, formatScore(score))
		if attempt.Feedback != "" {
			fmt.Fprintf(&b, " - %s", attempt.Feedback)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
