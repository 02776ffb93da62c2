package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/chainalign"
	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/ports"
	"github.com/aretw0/chainalign/pkg/session"
	"github.com/aretw0/chainalign/pkg/validation"
	"github.com/go-chi/chi/v5"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Server implements the generated ServerInterface on top of a session service and its catalog.
type Server struct {
	Service ports.SessionService
	Catalog *catalog.Catalog
	Streams *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithServerLogger sets a custom structured logger for request handling.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler of the reference session service.
func NewHandler(svc ports.SessionService, cat *catalog.Catalog, opts ...ServerOption) http.Handler {
	s := &Server{
		Service: svc,
		Catalog: cat,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()

	r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	handler := HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			s.writeError(w, http.StatusBadRequest, err.Error())
		},
	})
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>chainalign API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	s.writeJSON(w, http.StatusOK, InfoResponse{
		App:        "chainalign-http",
		Version:    strings.TrimSpace(chainalign.Version),
		ApiVersion: apiVersion,
	})
}

// ListModels handles GET /models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	units := s.Catalog.Units()
	models := make([]Unit, len(units))
	for i, u := range units {
		models[i] = mapUnitFromDomain(u)
	}
	s.writeJSON(w, http.StatusOK, ModelsResponse{Models: models, Count: len(models)})
}

// GetModel handles GET /models/{id}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request, id string) {
	u, ok := s.Catalog.ByID(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("Model with id '%s' not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, mapUnitFromDomain(u))
}

// ValidateChains handles POST /chains/validate. Chains reference units by id or name.
func (s *Server) ValidateChains(w http.ResponseWriter, r *http.Request) {
	var body ValidateChainsJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("ValidateChains: Invalid request body", "error", err)
		return
	}

	chains := make([][]domain.Unit, len(body.ModelChains))
	for i, refs := range body.ModelChains {
		units, err := s.Catalog.ResolveAll(refs)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		chains[i] = units
	}

	report := validation.ValidateChainSet(chains)
	errs := report.Messages()
	if errs == nil {
		errs = []string{}
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: report.Valid, Errors: errs})
}

// StartSession handles POST /session/start.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartSessionJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("StartSession: Invalid request body", "error", err)
		return
	}

	resp, err := s.Service.Start(r.Context(), domain.StartSessionRequest{ModelChains: body.ModelChains})
	if err != nil {
		s.fail(w, "StartSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, StartSessionResponse{
		SessionId: resp.SessionID,
		NumChains: resp.NumChains,
		Message:   resp.Message,
	})
}

// ProcessInput handles POST /session/process.
func (s *Server) ProcessInput(w http.ResponseWriter, r *http.Request) {
	var body ProcessInputJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("ProcessInput: Invalid request body", "error", err)
		return
	}

	resp, err := s.Service.Process(r.Context(), domain.ProcessInputRequest{
		SessionID: body.SessionId,
		UserInput: body.UserInput,
	})
	if err != nil {
		s.fail(w, "ProcessInput", err)
		return
	}

	out := ProcessInputResponse{
		SessionId: resp.SessionID,
		MatchupId: resp.MatchupID,
		OutputA:   resp.OutputA,
		OutputB:   resp.OutputB,
	}
	s.Streams.Publish(resp.SessionID, EventMatchup, out)
	s.writeJSON(w, http.StatusOK, out)
}

// CastVote handles POST /session/vote. The vote category is relayed as received.
func (s *Server) CastVote(w http.ResponseWriter, r *http.Request) {
	var body CastVoteJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("CastVote: Invalid request body", "error", err)
		return
	}

	resp, err := s.Service.Vote(r.Context(), domain.VoteRequest{
		SessionID: body.SessionId,
		MatchupID: body.MatchupId,
		Vote:      domain.Vote(body.Vote),
	})
	if err != nil {
		s.fail(w, "CastVote", err)
		return
	}

	out := VoteResponse{
		SessionId: resp.SessionID,
		MatchupId: resp.MatchupID,
		Vote:      Vote(resp.Vote),
		Message:   resp.Message,
	}
	s.Streams.Publish(resp.SessionID, EventVote, out)
	s.writeJSON(w, http.StatusOK, out)
}

func mapUnitFromDomain(u domain.Unit) Unit {
	out := Unit{
		Id:         u.ID,
		Name:       u.Name,
		Provider:   u.Provider,
		InputType:  MediaType(u.InputType),
		OutputType: MediaType(u.OutputType),
	}
	if u.Description != "" {
		out.Description = &u.Description
	}
	if len(u.Capabilities) > 0 {
		caps := append([]string(nil), u.Capabilities...)
		out.Capabilities = &caps
	}
	return out
}

// fail maps service errors onto status codes and the reference error details.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, domain.ErrMatchupNotFound):
		s.writeError(w, http.StatusNotFound, "Matchup not found")
	case errors.Is(err, domain.ErrInvalidVote):
		s.writeError(w, http.StatusBadRequest, "Invalid vote. Must be one of: A, B, tie, both_bad")
	case errors.Is(err, session.ErrNoChains):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s error: %v", op, err))
		s.logger.Error(op+" failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, ErrorResponse{Detail: detail})
}
