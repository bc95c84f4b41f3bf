package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/praxis-ed/praxis-api/internal/models"
)

// EvaluationRepository defines data operations for aggregate evaluations.
type EvaluationRepository interface {
	GetByTeacher(ctx context.Context, teacherID uint) (models.Evaluation, error)
	ListByTeachers(ctx context.Context, teacherIDs []uint) ([]models.Evaluation, error)
	Upsert(ctx context.Context, evaluation *models.Evaluation) error
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates the repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) GetByTeacher(ctx context.Context, teacherID uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).First(&evaluation).Error; err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

func (r *evaluationRepository) ListByTeachers(ctx context.Context, teacherIDs []uint) ([]models.Evaluation, error) {
	if len(teacherIDs) == 0 {
		return nil, nil
	}

	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).Where("teacher_id IN ?", teacherIDs).Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}

// Upsert creates or overwrites the teacher's evaluation. Keyed on the
// teacher_id unique index so concurrent recomputes resolve to last-write-wins
// instead of a second row.
func (r *evaluationRepository) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "teacher_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary", "mean_score", "generated_at", "updated_at"}),
	}).Create(evaluation).Error
}
