package storage

import (
	"context"
	"time"

	"github.com/chris/squad-arena/pkg/models"
)

// MatchReader defines the interface for reading match documents.
type MatchReader interface {
	// GetMatch retrieves a match by its ID.
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)

	// ListMatches retrieves all matches, or only those in status when it is non-empty.
	ListMatches(ctx context.Context, status models.MatchStatus) ([]models.Match, error)

	// ListMatchesStartedBefore retrieves matches in status whose start time is at or before t.
	ListMatchesStartedBefore(ctx context.Context, status models.MatchStatus, t time.Time) ([]models.Match, error)
}

// MatchWriter defines the conditional writes that move a match through its lifecycle.
type MatchWriter interface {
	// CreateMatch stores a new match document.
	CreateMatch(ctx context.Context, match *models.Match) (*models.Match, error)

	// UpdateMatchDetails replaces the admin-editable fields of a non-terminal match.
	UpdateMatchDetails(ctx context.Context, match *models.Match) (*models.Match, error)

	// TransitionMatchStatus moves a match from one status to another, failing
	// with ErrInvalidMatchState when the match is no longer in from.
	TransitionMatchStatus(ctx context.Context, matchID string, from, to models.MatchStatus) (*models.Match, error)

	// AddRegistration appends a registration and, when fee is non-nil, debits the
	// entry fee in the same atomic write.
	AddRegistration(ctx context.Context, matchID string, reg models.Registration, fee *models.Transaction) (*models.Match, error)

	// CancelRegistration cancels the active registration at index and, when refund
	// is non-nil, credits it back in the same atomic write.
	CancelRegistration(ctx context.Context, matchID string, index int, userID string, refund *models.Transaction) (*models.Match, error)

	// ConfirmRegistration marks the registration at index as confirmed.
	ConfirmRegistration(ctx context.Context, matchID string, index int, userID string) (*models.Match, error)

	// RecordResults writes final results once and completes the match.
	RecordResults(ctx context.Context, matchID string, results *models.Results) (*models.Match, error)
}

// MatchStore combines the reader and writer interfaces.
type MatchStore interface {
	MatchReader
	MatchWriter
}
