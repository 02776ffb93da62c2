package editor

import (
	"context"
	"log/slog"

	"github.com/aretw0/chainalign/pkg/domain"
)

// Option configures an Editor.
type Option func(*Editor)

// WithOrigin names the editor in the revisions it emits.
func WithOrigin(origin string) Option {
	return func(e *Editor) {
		e.origin = origin
	}
}

// WithOnChange registers the callback receiving committed chain contents.
func WithOnChange(fn func(domain.Commit)) Option {
	return func(e *Editor) {
		e.onChange = fn
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithContext sets the context handed to lifecycle hooks.
func WithContext(ctx context.Context) Option {
	return func(e *Editor) {
		e.ctx = ctx
	}
}
