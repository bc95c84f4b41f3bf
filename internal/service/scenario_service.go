package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/praxis-ed/praxis-api/internal/dto"
	"github.com/praxis-ed/praxis-api/internal/models"
	"github.com/praxis-ed/praxis-api/internal/repository"
)

// ScenarioService exposes the fixed scenario catalog and hands out provider
// access tokens for starting roleplay sessions.
type ScenarioService interface {
	List(ctx context.Context) ([]dto.ScenarioResponse, error)
	AccessToken(ctx context.Context, scenarioID uint) (dto.AccessTokenResponse, error)
	SeedCatalog(ctx context.Context) error
}

type scenarioService struct {
	scenarios repository.ScenarioRepository
	gateway   SessionGateway
	logger    zerolog.Logger
}

// NewScenarioService constructs a ScenarioService instance.
func NewScenarioService(scenarioRepo repository.ScenarioRepository, gateway SessionGateway, logger zerolog.Logger) ScenarioService {
	return &scenarioService{
		scenarios: scenarioRepo,
		gateway:   gateway,
		logger:    logger.With().Str("component", "scenario_service").Logger(),
	}
}

func (s *scenarioService) List(ctx context.Context) ([]dto.ScenarioResponse, error) {
	scenarios, err := s.scenarios.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewScenarioResponseSlice(scenarios), nil
}

func (s *scenarioService) AccessToken(ctx context.Context, scenarioID uint) (dto.AccessTokenResponse, error) {
	if _, err := s.scenarios.GetByID(ctx, scenarioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccessTokenResponse{}, ErrScenarioNotFound
		}
		return dto.AccessTokenResponse{}, err
	}

	token, err := s.gateway.ScenarioAccessToken(ctx, strconv.FormatUint(uint64(scenarioID), 10))
	if err != nil {
		return dto.AccessTokenResponse{}, err
	}

	return dto.AccessTokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt}, nil
}

// SeedCatalog installs the four fixed scenarios. Safe to run on every
// startup.
func (s *scenarioService) SeedCatalog(ctx context.Context) error {
	if err := s.scenarios.SeedCatalog(ctx, models.ScenarioCatalog()); err != nil {
		return err
	}

	s.logger.Info().Int("scenarios", models.CatalogSize).Msg("scenario catalog seeded")
	return nil
}
