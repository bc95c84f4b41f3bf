package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/praxis-ed/praxis-api/internal/models"
)

// AttemptFilter narrows attempt queries.
type AttemptFilter struct {
	TeacherID *uint
	Status    *string
}

// AttemptRepository defines data operations for scenario attempts. The
// attempt service is the only writer; the upsert is keyed on the
// (teacher_id, scenario_id) unique index so concurrent submissions for the
// same pair can never produce a second row.
type AttemptRepository interface {
	List(ctx context.Context, filter AttemptFilter) ([]models.Attempt, error)
	GetByTeacherAndScenario(ctx context.Context, teacherID, scenarioID uint) (models.Attempt, error)
	Upsert(ctx context.Context, attempt *models.Attempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates the repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Attempt{}).Preload("Scenario")
}

func (r *attemptRepository) List(ctx context.Context, filter AttemptFilter) ([]models.Attempt, error) {
	query := r.baseQuery(ctx)

	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var attempts []models.Attempt
	if err := query.Order("scenario_id ASC").Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (r *attemptRepository) GetByTeacherAndScenario(ctx context.Context, teacherID, scenarioID uint) (models.Attempt, error) {
	var attempt models.Attempt
	if err := r.baseQuery(ctx).
		Where("teacher_id = ?", teacherID).
		Where("scenario_id = ?", scenarioID).
		First(&attempt).Error; err != nil {
		return models.Attempt{}, err
	}

	return attempt, nil
}

// Upsert persists the attempt as insert-or-update on the pair index. A
// conflicting insert turns into an update of the existing row, never a
// duplicate.
func (r *attemptRepository) Upsert(ctx context.Context, attempt *models.Attempt) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "teacher_id"}, {Name: "scenario_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "session_id", "raw_payload", "score", "feedback", "updated_at"}),
	}).Create(attempt).Error
}
