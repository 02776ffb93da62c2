package domain

import (
	"fmt"
	"time"
)

// Vote is the outcome of a head-to-head matchup. The composer relays it untouched.
type Vote string

const (
	VoteA       Vote = "A"
	VoteB       Vote = "B"
	VoteTie     Vote = "tie"
	VoteBothBad Vote = "both_bad"
)

// Votes lists every accepted vote category.
var Votes = []Vote{VoteA, VoteB, VoteTie, VoteBothBad}

// ParseVote validates a vote category. Matching is exact.
func ParseVote(s string) (Vote, error) {
	for _, v := range Votes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of A, B, tie, both_bad", ErrInvalidVote, s)
}

// StartSessionRequest is the submission payload: one list of unit names per chain.
type StartSessionRequest struct {
	ModelChains [][]string `json:"model_chains"`
}

// StartSessionResponse is returned by the session service when a session is created.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	NumChains int    `json:"num_chains"`
	Message   string `json:"message"`
}

// ProcessInputRequest asks the session service to run one turn through two chains.
type ProcessInputRequest struct {
	SessionID string `json:"session_id"`
	UserInput string `json:"user_input"`
}

// ProcessInputResponse carries the two anonymized outputs of a matchup.
type ProcessInputResponse struct {
	SessionID string `json:"session_id"`
	MatchupID string `json:"matchup_id"`
	OutputA   string `json:"output_a"`
	OutputB   string `json:"output_b"`
}

// VoteRequest records which output of a matchup was preferred.
type VoteRequest struct {
	SessionID string `json:"session_id"`
	MatchupID string `json:"matchup_id"`
	Vote      Vote   `json:"vote"`
}

// VoteResponse confirms a recorded vote.
type VoteResponse struct {
	SessionID string `json:"session_id"`
	MatchupID string `json:"matchup_id"`
	Vote      Vote   `json:"vote"`
	Message   string `json:"message"`
}

// Matchup is a single turn played between two chains of a session.
type Matchup struct {
	ID        string `json:"id"`
	UserInput string `json:"user_input"`
	ChainA    int    `json:"chain_a"`
	ChainB    int    `json:"chain_b"`
	Vote      Vote   `json:"vote,omitempty"`
}

// Session is the record kept by the session service for a submitted chain set.
type Session struct {
	ID          string              `json:"id"`
	ModelChains [][]string          `json:"model_chains"`
	Matchups    map[string]*Matchup `json:"matchups"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewSession creates an empty session record for the given chains.
func NewSession(id string, chains [][]string) *Session {
	return &Session{
		ID:          id,
		ModelChains: chains,
		Matchups:    make(map[string]*Matchup),
		CreatedAt:   time.Now().UTC(),
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	out.ModelChains = make([][]string, len(s.ModelChains))
	for i, chain := range s.ModelChains {
		out.ModelChains[i] = append([]string(nil), chain...)
	}
	out.Matchups = make(map[string]*Matchup, len(s.Matchups))
	for id, m := range s.Matchups {
		cp := *m
		out.Matchups[id] = &cp
	}
	return &out
}
