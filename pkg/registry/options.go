package registry

import (
	"log/slog"

	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/ports"
)

// Option configures a Registry.
type Option func(*Registry)

// WithSessionService sets the service chain sets are submitted to.
func WithSessionService(svc ports.SessionService) Option {
	return func(r *Registry) {
		r.service = svc
	}
}

// WithLogger sets a custom structured logger for the registry and its editors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers hooks installed on every editor the registry creates.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Registry) {
		r.hooks = hooks
	}
}
