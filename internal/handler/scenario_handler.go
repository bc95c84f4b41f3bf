package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/praxis-ed/praxis-api/internal/dto"
	"github.com/praxis-ed/praxis-api/internal/service"
	"github.com/praxis-ed/praxis-api/internal/utils"
	"github.com/praxis-ed/praxis-api/pkg/roleplay"
)

// ScenarioHandler manages the scenario catalog and submission endpoints.
type ScenarioHandler struct {
	scenarios service.ScenarioService
	attempts  service.AttemptService
	logger    zerolog.Logger
}

// NewScenarioHandler builds a scenario handler instance.
func NewScenarioHandler(scenarios service.ScenarioService, attempts service.AttemptService, logger zerolog.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		scenarios: scenarios,
		attempts:  attempts,
		logger:    logger.With().Str("component", "scenario_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ScenarioHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:scenarioId/token", h.accessToken)
	router.Post("/submit", h.submit)
}

func (h *ScenarioHandler) list(c *fiber.Ctx) error {
	scenarios, err := h.scenarios.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scenarios retrieved", scenarios)
}

func (h *ScenarioHandler) accessToken(c *fiber.Ctx) error {
	scenarioID, err := parseUintParam(c, "scenarioId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	token, err := h.scenarios.AccessToken(c.Context(), scenarioID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "access token issued", token)
}

func (h *ScenarioHandler) submit(c *fiber.Ctx) error {
	teacherID := userIDFromContext(c)
	if teacherID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.SubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.attempts.RecordSubmission(c.Context(), teacherID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session processed", result)
}

func (h *ScenarioHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
	case errors.Is(err, service.ErrScenarioNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
	case errors.Is(err, roleplay.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, roleplay.ErrSessionNotFinalized):
		return utils.SendError(c, fiber.StatusConflict, "session not finalized yet")
	case errors.Is(err, roleplay.ErrUnavailable):
		return utils.SendError(c, fiber.StatusBadGateway, "roleplay provider unavailable")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
