package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/google/uuid"
)

// ErrNoChains is returned when a session is started without any chain.
var ErrNoChains = errors.New("session requires at least one chain")

// Recorder receives session activity, typically for metrics.
type Recorder interface {
	SessionStarted(chains int)
	MatchupPlayed()
	VoteRecorded(vote domain.Vote)
}

// Service is an in-process comparison service.
// Chains are "run" by echoing the user input through their unit names.
type Service struct {
	manager  *Manager
	recorder Recorder
	logger   *slog.Logger

	mu   sync.Mutex // guards rand
	rand *rand.Rand
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRecorder reports session activity to rec.
func WithRecorder(rec Recorder) ServiceOption {
	return func(s *Service) {
		s.recorder = rec
	}
}

// WithServiceLogger sets a custom structured logger for the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSeed makes chain pairing deterministic.
func WithSeed(seed int64) ServiceOption {
	return func(s *Service) {
		s.rand = rand.New(rand.NewSource(seed))
	}
}

// NewService creates a session service storing its sessions through manager.
func NewService(manager *Manager, opts ...ServiceOption) *Service {
	s := &Service{
		manager: manager,
		logger:  logging.NewNop(),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers a chain set and returns the new session's identifier.
func (s *Service) Start(ctx context.Context, req domain.StartSessionRequest) (*domain.StartSessionResponse, error) {
	if len(req.ModelChains) == 0 {
		return nil, ErrNoChains
	}

	session := domain.NewSession(uuid.NewString(), req.ModelChains)
	if err := s.manager.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	n := len(req.ModelChains)
	if s.recorder != nil {
		s.recorder.SessionStarted(n)
	}
	s.logger.Info("Session started", "session_id", session.ID, "chains", n)

	return &domain.StartSessionResponse{
		SessionID: session.ID,
		NumChains: n,
		Message:   fmt.Sprintf("Arena session created with %d chains", n),
	}, nil
}

// Process plays one matchup: two distinct chains (when the session has more than one)
// are drawn at random and both produce an output for the user input.
func (s *Service) Process(ctx context.Context, req domain.ProcessInputRequest) (*domain.ProcessInputResponse, error) {
	var resp *domain.ProcessInputResponse

	err := s.manager.Update(ctx, req.SessionID, func(session *domain.Session) error {
		if len(session.ModelChains) == 0 {
			return ErrNoChains
		}
		if session.Matchups == nil {
			session.Matchups = make(map[string]*domain.Matchup)
		}
		a, b := s.pair(len(session.ModelChains))
		m := &domain.Matchup{
			ID:        uuid.NewString(),
			UserInput: req.UserInput,
			ChainA:    a,
			ChainB:    b,
		}
		session.Matchups[m.ID] = m

		resp = &domain.ProcessInputResponse{
			SessionID: session.ID,
			MatchupID: m.ID,
			OutputA:   run(session.ModelChains[a], req.UserInput),
			OutputB:   run(session.ModelChains[b], req.UserInput),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.MatchupPlayed()
	}
	s.logger.Debug("Matchup played", "session_id", req.SessionID, "matchup_id", resp.MatchupID)
	return resp, nil
}

// Vote records the preferred output of a matchup.
func (s *Service) Vote(ctx context.Context, req domain.VoteRequest) (*domain.VoteResponse, error) {
	err := s.manager.Update(ctx, req.SessionID, func(session *domain.Session) error {
		m, ok := session.Matchups[req.MatchupID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrMatchupNotFound, req.MatchupID)
		}
		vote, err := domain.ParseVote(string(req.Vote))
		if err != nil {
			return err
		}
		m.Vote = vote
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.VoteRecorded(req.Vote)
	}
	s.logger.Debug("Vote recorded", "session_id", req.SessionID, "matchup_id", req.MatchupID, "vote", req.Vote)

	return &domain.VoteResponse{
		SessionID: req.SessionID,
		MatchupID: req.MatchupID,
		Vote:      req.Vote,
		Message:   fmt.Sprintf("Vote '%s' recorded successfully", req.Vote),
	}, nil
}

// pair draws two distinct chain indexes, or the same one twice for a single chain.
func (s *Service) pair(n int) (int, int) {
	if n < 2 {
		return 0, 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.rand.Intn(n)
	b := s.rand.Intn(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

func run(chain []string, input string) string {
	return fmt.Sprintf("[%s] %s", strings.Join(chain, " > "), input)
}
