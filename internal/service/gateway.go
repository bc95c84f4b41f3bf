package service

import (
	"context"

	"github.com/praxis-ed/praxis-api/pkg/roleplay"
)

// SessionGateway is the narrow view of the roleplay provider the services
// depend on. Implemented by pkg/roleplay; faked in tests.
type SessionGateway interface {
	FetchOutcome(ctx context.Context, sessionID string) (roleplay.Outcome, error)
	ScenarioAccessToken(ctx context.Context, scenarioID string) (roleplay.AccessToken, error)
}
