// Package matches runs the match lifecycle: creation with a validated prize
// distribution, registration against capacity with the entry fee debited in
// the same write, status transitions and the one-time results upload.
package matches

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/storage"
)

var (
	// ErrInvalidMatchSpec is returned when match attributes are missing or out of range.
	ErrInvalidMatchSpec = errors.New("invalid match spec")

	// ErrResultsPayloadInvalid is returned when an uploaded results payload is inconsistent.
	ErrResultsPayloadInvalid = errors.New("invalid results payload")

	// ErrMissingUser is returned when an operation needs a user ID and none was given.
	ErrMissingUser = errors.New("user ID is required")
)

// MaxPlayersLimit is the largest lobby a match can be created with.
const MaxPlayersLimit = 100

// Wallets answers the affordability pre-check before a join.
type Wallets interface {
	CanAfford(ctx context.Context, userID string, amount int64) (bool, error)
}

// Config holds caller policy for the engine.
type Config struct {
	// CompleteAfter is how long after its start time a live match is
	// completed by AutoUpdateStatuses. Zero leaves completion to results upload.
	CompleteAfter time.Duration
}

// Engine implements the match operations.
type Engine struct {
	store     storage.MatchStore
	wallets   Wallets
	publisher notify.Publisher
	cfg       Config
	now       func() time.Time
}

// NewEngine creates a new Engine. A nil publisher disables notifications.
func NewEngine(store storage.MatchStore, wallets Wallets, publisher notify.Publisher, cfg Config) *Engine {
	if publisher == nil {
		publisher = &notify.NoOpPublisher{}
	}
	return &Engine{
		store:     store,
		wallets:   wallets,
		publisher: publisher,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// publish hands an event to the push service. Failures are logged only.
func (e *Engine) publish(ctx context.Context, event notify.Event) {
	event.OccurredAt = e.now()
	if err := e.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "type", event.Type, "match_id", event.MatchID, "error", err)
	}
}
