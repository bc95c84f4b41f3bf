package roleplay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel errors distinguishing the provider's failure modes. Callers decide
// retry policy based on which of these they observe; the client never retries.
var (
	// ErrSessionNotFound indicates the provider has no session with that id.
	ErrSessionNotFound = errors.New("roleplay session not found")
	// ErrSessionNotFinalized indicates the session exists but its analysis
	// has not finished yet. Retryable from the caller's point of view.
	ErrSessionNotFinalized = errors.New("roleplay session not finalized")
	// ErrUnavailable indicates a transport failure or provider outage.
	ErrUnavailable = errors.New("roleplay provider unavailable")
)

// Outcome is the result payload of a finalized roleplay session. Raw carries
// the provider's full structured report untouched; its shape is owned by the
// provider and may change.
type Outcome struct {
	Score    float64
	Feedback string
	Raw      map[string]interface{}
}

// AccessToken grants a browser client entry into a scenario session.
type AccessToken struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// SessionSummary is one entry of the provider's session listing.
type SessionSummary struct {
	ID         string `json:"id"`
	ScenarioID string `json:"scenario_id"`
	UserEmail  string `json:"user_email"`
	Status     string `json:"status"`
}

// Config contains credentials required to talk to the roleplay provider.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is an HTTP client for the external roleplay session provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

// New constructs a roleplay provider client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("roleplay provider credentials must be provided")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "roleplay_client").Logger(),
	}, nil
}

// FetchOutcome retrieves the outcome of a completed roleplay session.
func (c *Client) FetchOutcome(ctx context.Context, sessionID string) (Outcome, error) {
	var payload map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/"+url.PathEscape(sessionID), nil, &payload); err != nil {
		return Outcome{}, err
	}

	if !sessionFinalized(payload) {
		return Outcome{}, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFinalized)
	}

	return Outcome{
		Score:    floatField(payload, "evaluation_score"),
		Feedback: stringField(payload, "evaluation_note"),
		Raw:      payload,
	}, nil
}

// ScenarioAccessToken requests a client access token for the given scenario.
func (c *Client) ScenarioAccessToken(ctx context.Context, scenarioID string) (AccessToken, error) {
	body := map[string]string{"scenario_id": scenarioID}

	var token AccessToken
	if err := c.doJSON(ctx, http.MethodPost, "/scenario-access-token", body, &token); err != nil {
		return AccessToken{}, err
	}

	return token, nil
}

// TriggerAnalysis asks the provider to (re)run analysis for a session.
func (c *Client) TriggerAnalysis(ctx context.Context, sessionID string) error {
	body := map[string]string{"session_id": sessionID}
	return c.doJSON(ctx, http.MethodPost, "/sessions/analyze", body, nil)
}

// ListSessions returns the provider's sessions, optionally filtered by
// scenario and user email.
func (c *Client) ListSessions(ctx context.Context, scenarioID, userEmail string) ([]SessionSummary, error) {
	query := url.Values{}
	if scenarioID != "" {
		query.Set("scenario_id", scenarioID)
	}
	if userEmail != "" {
		query.Set("user_email", userEmail)
	}

	endpoint := "/sessions"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var sessions []SessionSummary
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrSessionNotFound
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return ErrSessionNotFinalized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("provider rejected request: status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	return nil
}

func sessionFinalized(payload map[string]interface{}) bool {
	status := strings.ToLower(stringField(payload, "status"))
	switch status {
	case "", "completed", "finalized", "analyzed":
		return true
	default:
		return false
	}
}

func floatField(payload map[string]interface{}, key string) float64 {
	if value, ok := payload[key]; ok {
		switch v := value.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f
			}
		}
	}
	return 0
}

func stringField(payload map[string]interface{}, key string) string {
	if value, ok := payload[key]; ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}
