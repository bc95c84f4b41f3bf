package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/praxis-ed/praxis-api/internal/models"
)

// ScenarioRepository defines data operations for the scenario catalog.
type ScenarioRepository interface {
	List(ctx context.Context) ([]models.Scenario, error)
	GetByID(ctx context.Context, id uint) (models.Scenario, error)
	SeedCatalog(ctx context.Context, scenarios []models.Scenario) error
}

type scenarioRepository struct {
	db *gorm.DB
}

// NewScenarioRepository instantiates the repository.
func NewScenarioRepository(db *gorm.DB) ScenarioRepository {
	return &scenarioRepository{db: db}
}

func (r *scenarioRepository) List(ctx context.Context) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&scenarios).Error; err != nil {
		return nil, err
	}

	return scenarios, nil
}

func (r *scenarioRepository) GetByID(ctx context.Context, id uint) (models.Scenario, error) {
	var scenario models.Scenario
	if err := r.db.WithContext(ctx).First(&scenario, id).Error; err != nil {
		return models.Scenario{}, err
	}

	return scenario, nil
}

// SeedCatalog inserts the fixed scenarios, leaving existing rows untouched so
// the seed stays idempotent across restarts.
func (r *scenarioRepository) SeedCatalog(ctx context.Context, scenarios []models.Scenario) error {
	if len(scenarios) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&scenarios).Error
}
