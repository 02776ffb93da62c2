package ports

import (
	"context"

	"github.com/aretw0/chainalign/pkg/domain"
)

// SessionService is the external comparison service.
// The composer only calls Start with chains that already passed validation; turn
// processing and voting are relayed without interpretation.
type SessionService interface {
	Start(ctx context.Context, req domain.StartSessionRequest) (*domain.StartSessionResponse, error)
	Process(ctx context.Context, req domain.ProcessInputRequest) (*domain.ProcessInputResponse, error)
	Vote(ctx context.Context, req domain.VoteRequest) (*domain.VoteResponse, error)
}
