/*
Package observability provides Prometheus metrics and structured-log hooks for chainalign.

Metrics implements session.Recorder for the comparison service and exposes editor
lifecycle hooks, so commits and transition batches can be counted without the editor
knowing about Prometheus. LoggingHooks writes the same lifecycle events to a slog.Logger.
*/
package observability
