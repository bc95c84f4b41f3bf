package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/praxis-ed/praxis-api/internal/dto"
	"github.com/praxis-ed/praxis-api/internal/service"
	"github.com/praxis-ed/praxis-api/internal/utils"
	"github.com/praxis-ed/praxis-api/pkg/roleplay"
)

func testHandlerLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func decodeResponse(t *testing.T, resp *http.Response) utils.APIResponse {
	t.Helper()

	var payload utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

type mockScenarioService struct {
	scenarios []dto.ScenarioResponse
	token     dto.AccessTokenResponse
	err       error
}

func (m *mockScenarioService) List(ctx context.Context) ([]dto.ScenarioResponse, error) {
	return m.scenarios, m.err
}

func (m *mockScenarioService) AccessToken(ctx context.Context, scenarioID uint) (dto.AccessTokenResponse, error) {
	if m.err != nil {
		return dto.AccessTokenResponse{}, m.err
	}
	return m.token, nil
}

func (m *mockScenarioService) SeedCatalog(ctx context.Context) error {
	return nil
}

type mockAttemptService struct {
	result     dto.SubmissionResponse
	err        error
	teacherID  uint
	submission dto.SubmissionRequest
}

func (m *mockAttemptService) RecordSubmission(ctx context.Context, teacherID uint, payload dto.SubmissionRequest) (dto.SubmissionResponse, error) {
	m.teacherID = teacherID
	m.submission = payload
	if m.err != nil {
		return dto.SubmissionResponse{}, m.err
	}
	return m.result, nil
}

func newScenarioTestApp(scenarios *mockScenarioService, attempts *mockAttemptService, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})

	h := NewScenarioHandler(scenarios, attempts, testHandlerLogger())
	h.Register(app.Group("/api/scenarios"))
	return app
}

func TestScenarioHandlerList(t *testing.T) {
	scenarios := &mockScenarioService{scenarios: []dto.ScenarioResponse{
		{ID: 1, Title: "Classroom Management", Difficulty: "beginner"},
	}}
	app := newScenarioTestApp(scenarios, &mockAttemptService{}, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeResponse(t, resp)
	require.True(t, payload.Success)
	require.Len(t, payload.Data, 1)
}

func TestScenarioHandlerAccessToken(t *testing.T) {
	scenarios := &mockScenarioService{token: dto.AccessTokenResponse{Token: "tok-abc"}}
	app := newScenarioTestApp(scenarios, &mockAttemptService{}, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/2/token", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeResponse(t, resp)
	require.True(t, payload.Success)
	data := payload.Data.(map[string]interface{})
	require.Equal(t, "tok-abc", data["token"])
}

func TestScenarioHandlerAccessTokenBadParam(t *testing.T) {
	app := newScenarioTestApp(&mockScenarioService{}, &mockAttemptService{}, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/0/token", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func submitRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/submit", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestScenarioHandlerSubmit(t *testing.T) {
	attempts := &mockAttemptService{result: dto.SubmissionResponse{Score: 85, EvaluationGenerated: true}}
	app := newScenarioTestApp(&mockScenarioService{}, attempts, 7)

	resp, err := app.Test(submitRequest(t, dto.SubmissionRequest{ScenarioID: 2, SessionID: "sess-1"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeResponse(t, resp)
	require.True(t, payload.Success)
	data := payload.Data.(map[string]interface{})
	require.Equal(t, 85.0, data["score"])
	require.Equal(t, true, data["evaluation_generated"])

	require.Equal(t, uint(7), attempts.teacherID)
	require.Equal(t, "sess-1", attempts.submission.SessionID)
}

func TestScenarioHandlerSubmitUnauthenticated(t *testing.T) {
	app := newScenarioTestApp(&mockScenarioService{}, &mockAttemptService{}, 0)

	resp, err := app.Test(submitRequest(t, dto.SubmissionRequest{ScenarioID: 2, SessionID: "sess-1"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestScenarioHandlerSubmitErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown teacher", service.ErrTeacherNotFound, fiber.StatusNotFound},
		{"unknown scenario", service.ErrScenarioNotFound, fiber.StatusNotFound},
		{"unknown session", roleplay.ErrSessionNotFound, fiber.StatusNotFound},
		{"session not finalized", roleplay.ErrSessionNotFinalized, fiber.StatusConflict},
		{"provider down", roleplay.ErrUnavailable, fiber.StatusBadGateway},
		{"unexpected", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attempts := &mockAttemptService{err: tc.err}
			app := newScenarioTestApp(&mockScenarioService{}, attempts, 1)

			resp, err := app.Test(submitRequest(t, dto.SubmissionRequest{ScenarioID: 1, SessionID: "sess-1"}))
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.StatusCode)

			payload := decodeResponse(t, resp)
			require.False(t, payload.Success)
		})
	}
}

func TestScenarioHandlerSubmitMalformedBody(t *testing.T) {
	app := newScenarioTestApp(&mockScenarioService{}, &mockAttemptService{}, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/submit", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
