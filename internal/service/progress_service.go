package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/praxis-ed/praxis-api/internal/dto"
	"github.com/praxis-ed/praxis-api/internal/models"
	"github.com/praxis-ed/praxis-api/internal/repository"
)

// ProgressService is the read side: it assembles teachers, attempts and
// evaluations into dashboard views. It never mutates attempt or evaluation
// state; the cache is a read-through projection only.
type ProgressService interface {
	GetTeacherProgress(ctx context.Context, teacherID uint) (dto.TeacherProgressResponse, error)
	ListTeachers(ctx context.Context, filter dto.TeacherListFilter) ([]dto.TeacherSummaryResponse, error)
	InvalidateTeacher(ctx context.Context, teacherID uint)
}

type progressService struct {
	users       repository.UserRepository
	attempts    repository.AttemptRepository
	evaluations repository.EvaluationRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewProgressService builds the read-side assembler.
func NewProgressService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository, evaluationRepo repository.EvaluationRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) ProgressService {
	return &progressService{
		users:       userRepo,
		attempts:    attemptRepo,
		evaluations: evaluationRepo,
		cache:       cache,
		cacheTTL:    ttl,
		validator:   validate,
		logger:      logger.With().Str("component", "progress_service").Logger(),
	}
}

func progressCacheKey(teacherID uint) string {
	return fmt.Sprintf("progress:teacher:%d", teacherID)
}

func (s *progressService) GetTeacherProgress(ctx context.Context, teacherID uint) (dto.TeacherProgressResponse, error) {
	cacheKey := progressCacheKey(teacherID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.TeacherProgressResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("teacher_id", teacherID).Msg("progress cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read progress cache")
		}
	}

	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherProgressResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherProgressResponse{}, err
	}

	if !teacher.IsTeacher() {
		return dto.TeacherProgressResponse{}, ErrTeacherNotFound
	}

	attempts, err := s.attempts.List(ctx, repository.AttemptFilter{TeacherID: &teacherID})
	if err != nil {
		return dto.TeacherProgressResponse{}, err
	}

	response := dto.TeacherProgressResponse{
		Teacher:  dto.NewUserResponse(teacher),
		Attempts: dto.NewAttemptResponseSlice(attempts),
	}

	evaluation, err := s.evaluations.GetByTeacher(ctx, teacherID)
	switch {
	case err == nil:
		evaluationResponse := dto.NewEvaluationResponse(evaluation)
		response.Evaluation = &evaluationResponse
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Mid-program: no evaluation yet.
	default:
		return dto.TeacherProgressResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store progress cache")
			}
		}
	}

	return response, nil
}

func (s *progressService) ListTeachers(ctx context.Context, filter dto.TeacherListFilter) ([]dto.TeacherSummaryResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	role := models.RoleTeacher
	teachers, err := s.users.List(ctx, repository.UserFilter{Role: &role})
	if err != nil {
		return nil, err
	}

	teacherIDs := make([]uint, 0, len(teachers))
	for _, teacher := range teachers {
		teacherIDs = append(teacherIDs, teacher.ID)
	}

	attemptsByTeacher, err := s.attemptsByTeacher(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}

	evaluations, err := s.evaluations.ListByTeachers(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}

	meanByTeacher := make(map[uint]float64, len(evaluations))
	for _, evaluation := range evaluations {
		meanByTeacher[evaluation.TeacherID] = evaluation.MeanScore
	}

	summaries := make([]dto.TeacherSummaryResponse, 0, len(teachers))
	for _, teacher := range teachers {
		attempts := attemptsByTeacher[teacher.ID]

		completed := 0
		for _, attempt := range attempts {
			if attempt.IsCompleted() {
				completed++
			}
		}

		summary := dto.TeacherSummaryResponse{
			ID:             teacher.ID,
			Name:           teacher.Name,
			Email:          teacher.Email,
			Subject:        teacher.Subject,
			Institution:    teacher.Institution,
			AttemptCount:   len(attempts),
			CompletedCount: completed,
			Completion:     completionBucket(len(attempts), completed),
		}

		if mean, ok := meanByTeacher[teacher.ID]; ok {
			summary.MeanScore = &mean
		}

		if filter.Completion != nil && summary.Completion != *filter.Completion {
			continue
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// InvalidateTeacher drops the cached progress view after a submission so the
// next read reflects backend truth. Cache failures are logged and ignored;
// the entry expires on its TTL anyway.
func (s *progressService) InvalidateTeacher(ctx context.Context, teacherID uint) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, progressCacheKey(teacherID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("teacher_id", teacherID).Msg("failed to invalidate progress cache")
	}
}

func (s *progressService) attemptsByTeacher(ctx context.Context, teacherIDs []uint) (map[uint][]models.Attempt, error) {
	grouped := make(map[uint][]models.Attempt, len(teacherIDs))

	attempts, err := s.attempts.List(ctx, repository.AttemptFilter{})
	if err != nil {
		return nil, err
	}

	known := make(map[uint]struct{}, len(teacherIDs))
	for _, id := range teacherIDs {
		known[id] = struct{}{}
	}

	for _, attempt := range attempts {
		if _, ok := known[attempt.TeacherID]; ok {
			grouped[attempt.TeacherID] = append(grouped[attempt.TeacherID], attempt)
		}
	}

	return grouped, nil
}

// completionBucket derives the dashboard bucket from attempt statuses at read
// time; it is never stored.
func completionBucket(attemptCount, completedCount int) string {
	switch {
	case completedCount >= models.CatalogSize:
		return dto.CompletionCompleted
	case attemptCount > 0:
		return dto.CompletionInProgress
	default:
		return dto.CompletionNotStarted
	}
}
