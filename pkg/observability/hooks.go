package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/chainalign/pkg/domain"
)

// LoggingHooks returns editor lifecycle hooks that log every event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			logger.DebugContext(ctx, "chain_commit", "origin", e.Origin, "revision", e.Revision.String(), "units", e.Units)
		},
		OnBatchStart: func(ctx context.Context, e *domain.BatchEvent) {
			logger.DebugContext(ctx, "batch_start", "origin", e.Origin, "epoch", e.Epoch, "positions", e.Positions)
		},
		OnBatchSettled: func(ctx context.Context, e *domain.BatchEvent) {
			logger.DebugContext(ctx, "batch_settled", "origin", e.Origin, "epoch", e.Epoch, "abandoned", e.Abandoned)
		},
		OnSync: func(ctx context.Context, e *domain.SyncEvent) {
			logger.DebugContext(ctx, "chain_sync", "origin", e.Origin, "revision", e.Revision.String(), "echo", e.Echo)
		},
	}
}

// Chain combines several hook sets; each event is delivered to every non-nil hook in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			for _, h := range sets {
				if h.OnCommit != nil {
					h.OnCommit(ctx, e)
				}
			}
		},
		OnBatchStart: func(ctx context.Context, e *domain.BatchEvent) {
			for _, h := range sets {
				if h.OnBatchStart != nil {
					h.OnBatchStart(ctx, e)
				}
			}
		},
		OnBatchSettled: func(ctx context.Context, e *domain.BatchEvent) {
			for _, h := range sets {
				if h.OnBatchSettled != nil {
					h.OnBatchSettled(ctx, e)
				}
			}
		},
		OnSync: func(ctx context.Context, e *domain.SyncEvent) {
			for _, h := range sets {
				if h.OnSync != nil {
					h.OnSync(ctx, e)
				}
			}
		},
	}
}
