package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/chainalign"
	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/editor"
	"github.com/aretw0/chainalign/pkg/validation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource exposing the unit catalog.
const CatalogURI = "chainalign://catalog"

// UnitsResponse lists catalog units.
type UnitsResponse struct {
	Units []domain.Unit `json:"units" jsonschema_description:"Matching units in catalog order"`
	Count int           `json:"count" jsonschema_description:"Number of matching units"`
}

// AvailableResponse lists the units that may be placed at a chain position.
type AvailableResponse struct {
	Position int           `json:"position" jsonschema_description:"Zero-based chain position"`
	Units    []domain.Unit `json:"units" jsonschema_description:"Units compatible with both neighbours"`
}

// ValidateResponse is the outcome of a chain-set validation.
type ValidateResponse struct {
	Valid  bool     `json:"valid" jsonschema_description:"True when the chain set may be submitted"`
	Errors []string `json:"errors" jsonschema_description:"Human-readable validation errors"`
}

// Server exposes the catalog and the chain validator as an MCP server.
type Server struct {
	catalog   *catalog.Catalog
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		mcpServer: server.NewMCPServer("chainalign-mcp", strings.TrimSpace(chainalign.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_units",
		mcp.WithDescription("List catalog units, optionally filtered by media type or provider."),
		mcp.WithString("input_type", mcp.Description("Only units consuming this medium (text, audio, video, image)")),
		mcp.WithString("output_type", mcp.Description("Only units producing this medium")),
		mcp.WithString("provider", mcp.Description("Only units of this provider (case-insensitive)")),
		mcp.WithOutputSchema[UnitsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListUnits))

	availableTool := mcp.NewTool("available_units",
		mcp.WithDescription("List the units that can be placed at a position of a chain."),
		mcp.WithString("chain", mcp.Required(), mcp.Description("JSON array of unit ids or names, in chain order")),
		mcp.WithNumber("position", mcp.Required(), mcp.Description("Zero-based position to fill")),
		mcp.WithOutputSchema[AvailableResponse](),
	)
	s.mcpServer.AddTool(availableTool, mcp.NewStructuredToolHandler(s.handleAvailableUnits))

	validateTool := mcp.NewTool("validate_chains",
		mcp.WithDescription("Validate a chain set before submitting it to a comparison session."),
		mcp.WithString("chains", mcp.Required(), mcp.Description("JSON array of chains, each an array of unit ids or names")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateChains))
}

func (s *Server) handleListUnits(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (UnitsResponse, error) {
	var q catalog.Query
	for key, dst := range map[string]*domain.MediaType{"input_type": &q.Input, "output_type": &q.Output} {
		tag, _ := args[key].(string)
		if tag == "" {
			continue
		}
		media, err := domain.ParseMediaType(tag)
		if err != nil {
			return UnitsResponse{}, err
		}
		*dst = media
	}

	units := s.catalog.Filter(q)
	if provider, _ := args["provider"].(string); provider != "" {
		filtered := units[:0]
		for _, u := range units {
			if strings.EqualFold(u.Provider, provider) {
				filtered = append(filtered, u)
			}
		}
		units = filtered
	}

	return UnitsResponse{Units: units, Count: len(units)}, nil
}

func (s *Server) handleAvailableUnits(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AvailableResponse, error) {
	refs, err := stringList(args["chain"])
	if err != nil {
		return AvailableResponse{}, fmt.Errorf("invalid chain: %w", err)
	}
	units, err := s.catalog.ResolveAll(refs)
	if err != nil {
		return AvailableResponse{}, err
	}

	pos, ok := args["position"].(float64)
	if !ok {
		return AvailableResponse{}, fmt.Errorf("position must be a number")
	}

	ed := editor.New(s.catalog, units, editor.WithLogger(s.logger))
	if int(pos) < 0 || int(pos) >= ed.Len() {
		return AvailableResponse{}, fmt.Errorf("%w: %d (chain has %d links)", domain.ErrPositionOutOfRange, int(pos), ed.Len())
	}

	return AvailableResponse{Position: int(pos), Units: ed.AvailableUnits(int(pos))}, nil
}

func (s *Server) handleValidateChains(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	raw, err := chainList(args["chains"])
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("invalid chains: %w", err)
	}

	chains := make([][]domain.Unit, len(raw))
	for i, refs := range raw {
		units, err := s.catalog.ResolveAll(refs)
		if err != nil {
			return ValidateResponse{}, fmt.Errorf("chain %d: %w", i+1, err)
		}
		chains[i] = units
	}

	report := validation.ValidateChainSet(chains)
	s.logger.Debug("MCP validate_chains", "chains", len(chains), "valid", report.Valid)
	return ValidateResponse{Valid: report.Valid, Errors: report.Messages()}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Unit Catalog",
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.catalog.Units())
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// stringList accepts a JSON-encoded array or an already decoded one.
func stringList(v any) ([]string, error) {
	var out []string
	if err := decodeArg(v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func chainList(v any) ([][]string, error) {
	var out [][]string
	if err := decodeArg(v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeArg(v any, dst any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("missing argument")
	case string:
		return json.Unmarshal([]byte(val), dst)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dst)
	}
}
