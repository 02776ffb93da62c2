package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/chainalign/pkg/adapters/memory"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...ServerOption) http.Handler {
	t.Helper()
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	svc := session.NewService(session.NewManager(memory.NewStore()), session.WithSeed(7))
	return NewHandler(svc, cat, opts...)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndModels(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/models", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	models := decode[ModelsResponse](t, rec)
	assert.Equal(t, len(models.Models), models.Count)
	assert.NotZero(t, models.Count)

	rec = doJSON(t, h, http.MethodGet, "/models/tts-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	u := decode[domain.Unit](t, rec)
	assert.Equal(t, domain.MediaAudio, u.OutputType)

	rec = doJSON(t, h, http.MethodGet, "/models/gpt-9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Model with id 'gpt-9' not found", decode[ErrorResponse](t, rec).Detail)
}

func TestSessionFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/session/start", domain.StartSessionRequest{
		ModelChains: [][]string{{"GPT-4", "TTS-1"}, {"Claude 3 Haiku", "TTS-1"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	started := decode[domain.StartSessionResponse](t, rec)
	assert.Equal(t, 2, started.NumChains)

	rec = doJSON(t, h, http.MethodPost, "/session/process", domain.ProcessInputRequest{SessionID: started.SessionID, UserInput: "hi"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	played := decode[domain.ProcessInputResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/session/vote", domain.VoteRequest{SessionID: started.SessionID, MatchupID: played.MatchupID, Vote: "sideways"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid vote. Must be one of: A, B, tie, both_bad", decode[ErrorResponse](t, rec).Detail)

	rec = doJSON(t, h, http.MethodPost, "/session/vote", domain.VoteRequest{SessionID: started.SessionID, MatchupID: played.MatchupID, Vote: domain.VoteB})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Vote 'B' recorded successfully", decode[domain.VoteResponse](t, rec).Message)
}

func TestSessionErrors(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/session/process", domain.ProcessInputRequest{SessionID: "missing", UserInput: "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Session not found", decode[ErrorResponse](t, rec).Detail)

	rec = doJSON(t, h, http.MethodPost, "/session/start", domain.StartSessionRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session/start", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	started := decode[domain.StartSessionResponse](t, doJSON(t, h, http.MethodPost, "/session/start",
		domain.StartSessionRequest{ModelChains: [][]string{{"GPT-4"}}}))
	rec = doJSON(t, h, http.MethodPost, "/session/vote", domain.VoteRequest{SessionID: started.SessionID, MatchupID: "nope", Vote: domain.VoteA})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Matchup not found", decode[ErrorResponse](t, rec).Detail)
}

func TestValidateChains(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/chains/validate", domain.StartSessionRequest{
		ModelChains: [][]string{{"gpt-4", "tts-1"}, {"GPT-4"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[ValidateResponse](t, rec)
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"Chain 2 has inconsistent output type: expected audio but got text"}, got.Errors)

	rec = doJSON(t, h, http.MethodPost, "/chains/validate", domain.StartSessionRequest{
		ModelChains: [][]string{{"gpt-4", "unknown-model"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSAndMetrics(t *testing.T) {
	h := newTestHandler(t, WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/session/start", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = doJSON(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, "metrics", rec.Body.String())
}

func TestSubscribeEvents(t *testing.T) {
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	svc := session.NewService(session.NewManager(memory.NewStore()))
	h := NewHandler(svc, cat)
	srv := httptest.NewServer(h)
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()
	started, err := client.Start(ctx, domain.StartSessionRequest{ModelChains: [][]string{{"GPT-4"}, {"Gemini Pro"}}})
	require.NoError(t, err)

	streamCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, srv.URL+"/session/"+started.SessionID+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	played, err := client.Process(ctx, domain.ProcessInputRequest{SessionID: started.SessionID, UserInput: "hello"})
	require.NoError(t, err)

	var event, data string
	for lines.Scan() {
		line := lines.Text()
		if strings.HasPrefix(line, "event: ") && line != "event: ping" {
			event = strings.TrimPrefix(line, "event: ")
		}
		if event != "" && strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}
	assert.Equal(t, EventMatchup, event)
	assert.Contains(t, data, played.MatchupID)
}

func TestOpenAPIDocument(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"/session/vote"`)

	swagger, err := GetSwagger()
	require.NoError(t, err)
	require.NoError(t, swagger.Validate(context.Background()))

	rec = doJSON(t, h, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[InfoResponse](t, rec)
	assert.Equal(t, swagger.Info.Version, info.ApiVersion)
	assert.Equal(t, "chainalign-http", info.App)
}

func TestEveryDocumentedOperationIsRouted(t *testing.T) {
	h := newTestHandler(t)
	swagger, err := GetSwagger()
	require.NoError(t, err)

	for path, item := range swagger.Paths.Map() {
		for method, op := range item.Operations() {
			if op.OperationID == "subscribeEvents" {
				continue // streams until the client leaves
			}
			target := strings.ReplaceAll(path, "{id}", "x")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader("{}")))

			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", method, path)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), "%s %s is answered by its handler", method, path)
		}
	}
}

func TestGeneratedVoteCategories(t *testing.T) {
	h := newTestHandler(t)

	started := decode[StartSessionResponse](t, doJSON(t, h, http.MethodPost, "/session/start",
		StartSessionRequest{ModelChains: [][]string{{"GPT-4"}, {"Claude 3 Haiku"}}}))
	played := decode[ProcessInputResponse](t, doJSON(t, h, http.MethodPost, "/session/process",
		ProcessInputRequest{SessionId: started.SessionId, UserInput: "hi"}))

	for _, vote := range []Vote{A, B, Tie, BothBad} {
		rec := doJSON(t, h, http.MethodPost, "/session/vote",
			VoteRequest{SessionId: started.SessionId, MatchupId: played.MatchupId, Vote: vote})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, vote, decode[VoteResponse](t, rec).Vote)
	}
}
