package domain

import "errors"

// ErrMissingMediaType is returned when a catalog record has no media type tag.
var ErrMissingMediaType = errors.New("media type is missing")

// ErrUnknownMediaType is returned when a catalog record carries an unrecognized media type tag.
var ErrUnknownMediaType = errors.New("unknown media type")

// ErrPositionOutOfRange is returned when an edit targets a link that does not exist.
var ErrPositionOutOfRange = errors.New("position out of range")

// ErrIncompatibleUnit is returned when a unit cannot consume the output of the previous link.
var ErrIncompatibleUnit = errors.New("incompatible unit")

// ErrUnknownUnit is returned when a unit reference cannot be resolved against the catalog.
var ErrUnknownUnit = errors.New("unknown unit")

// ErrChainNotFound is returned when a chain identifier is not present in the registry.
var ErrChainNotFound = errors.New("chain not found")

// ErrLastChain is returned when removing a chain would leave the chain set empty.
var ErrLastChain = errors.New("cannot remove the last chain")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrMatchupNotFound is returned when a vote references a matchup the session never produced.
var ErrMatchupNotFound = errors.New("matchup not found")

// ErrInvalidVote is returned when a vote is not one of the known categories.
var ErrInvalidVote = errors.New("invalid vote")
