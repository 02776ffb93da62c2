package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommit       EventType = "commit"
	EventBatchStart   EventType = "batch_start"
	EventBatchSettled EventType = "batch_settled"
	EventSync         EventType = "sync"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Origin    string    `json:"origin"`
}

// CommitEvent is emitted when an editor pushes settled contents upward.
type CommitEvent struct {
	EventBase
	Revision Revision `json:"revision"`
	Units    []string `json:"units"`
}

// BatchEvent describes a removal/reset batch waiting on its completion barrier.
type BatchEvent struct {
	EventBase
	Epoch     uint64 `json:"epoch"`
	Positions []int  `json:"positions"`
	// Abandoned is set when the batch was superseded by a newer edit before settling.
	Abandoned bool `json:"abandoned,omitempty"`
}

// SyncEvent is emitted when an editor receives externally supplied contents.
type SyncEvent struct {
	EventBase
	Revision Revision `json:"revision"`
	Echo     bool     `json:"echo"`
}

// LifecycleHooks defines callbacks for editor observability.
type LifecycleHooks struct {
	OnCommit       func(context.Context, *CommitEvent)
	OnBatchStart   func(context.Context, *BatchEvent)
	OnBatchSettled func(context.Context, *BatchEvent)
	OnSync         func(context.Context, *SyncEvent)
}
