package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/praxis-ed/praxis-api/internal/dto"
	"github.com/praxis-ed/praxis-api/internal/service"
	"github.com/praxis-ed/praxis-api/internal/utils"
)

// TeacherHandler manages the admin review endpoints.
type TeacherHandler struct {
	progress service.ProgressService
	logger   zerolog.Logger
}

// NewTeacherHandler builds a teacher handler instance.
func NewTeacherHandler(progress service.ProgressService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		progress: progress,
		logger:   logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.details)
}

func (h *TeacherHandler) list(c *fiber.Ctx) error {
	filter := dto.TeacherListFilter{}
	if status := c.Query("status"); status != "" {
		filter.Completion = &status
	}

	teachers, err := h.progress.ListTeachers(c.Context(), filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) details(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	progress, err := h.progress.GetTeacherProgress(c.Context(), teacherID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher progress retrieved", progress)
}

func (h *TeacherHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
