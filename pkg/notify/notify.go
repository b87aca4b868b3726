package notify

import (
	"context"
	"time"
)

// EventType identifies what happened.
type EventType string

const (
	// EventWalletUpdated is published after every successful balance change.
	EventWalletUpdated EventType = "walletUpdate"
	// EventPlayerJoined is published when a player takes a slot in a match.
	EventPlayerJoined EventType = "playerJoined"
	// EventPlayerLeft is published when a player gives up a slot.
	EventPlayerLeft EventType = "playerLeft"
	// EventMatchStatusChanged is published on every match status transition.
	EventMatchStatusChanged EventType = "matchStatusChanged"
	// EventResultsPublished is published once final results are recorded.
	EventResultsPublished EventType = "resultsPublished"
)

// Event is a single notification handed to the push service.
type Event struct {
	Type       EventType   `json:"type"`
	UserIDs    []string    `json:"user_ids,omitempty"`
	MatchID    string      `json:"match_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// WalletUpdatePayload is the payload of a walletUpdate event.
type WalletUpdatePayload struct {
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	Change        int64  `json:"change"`
	NewBalance    int64  `json:"new_balance"`
}

// MatchStatusPayload is the payload of a matchStatusChanged event.
type MatchStatusPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

//go:generate mockery --name=Publisher --output=mocks

// Publisher defines the interface for handing events to the push service.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoOpPublisher is a publisher that does nothing.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
