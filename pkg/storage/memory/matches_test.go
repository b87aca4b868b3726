package memory

import (
	"context"
	"testing"
	"time"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMatch(t *testing.T, s *Store, maxPlayers int, fee int64) *models.Match {
	t.Helper()
	m, err := s.CreateMatch(context.Background(), &models.Match{
		ID:                "m1",
		Name:              "Scrims",
		EntryFee:          fee,
		MaxPlayers:        maxPlayers,
		Map:               models.MapLivik,
		StartTime:         time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:            models.MatchUpcoming,
		RegisteredPlayers: []models.Registration{},
		Version:           1,
	})
	require.NoError(t, err)
	return m
}

func entry(userID string, fee int64) models.Registration {
	return models.Registration{UserID: userID, EntryFeePaid: fee, Status: models.RegistrationRegistered}
}

func TestAddRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("Charges Fee With Slot", func(t *testing.T) {
		s := New()
		seedWallet(t, s, "u1", 100)
		seedMatch(t, s, 2, 30)

		m, err := s.AddRegistration(ctx, "m1", entry("u1", 30), debit("u1", 30, "match:m1:entry:0"))
		require.NoError(t, err)
		assert.Equal(t, 1, m.ActiveCount)
		assert.Equal(t, []string{"u1"}, m.ActiveUserIDs)

		w, _ := s.GetWallet(ctx, "u1")
		assert.Equal(t, int64(70), w.Balance)
	})

	t.Run("Failed Debit Leaves Slot Free", func(t *testing.T) {
		s := New()
		seedWallet(t, s, "u1", 10)
		seedMatch(t, s, 2, 30)

		_, err := s.AddRegistration(ctx, "m1", entry("u1", 30), debit("u1", 30, "match:m1:entry:0"))
		assert.ErrorIs(t, err, storage.ErrInsufficientBalance)

		m, _ := s.GetMatch(ctx, "m1")
		assert.Equal(t, 0, m.ActiveCount)
		assert.Empty(t, m.RegisteredPlayers)
	})

	t.Run("Capacity And Duplicates", func(t *testing.T) {
		s := New()
		seedMatch(t, s, 1, 0)

		_, err := s.AddRegistration(ctx, "m1", entry("u1", 0), nil)
		require.NoError(t, err)
		_, err = s.AddRegistration(ctx, "m1", entry("u1", 0), nil)
		assert.ErrorIs(t, err, storage.ErrAlreadyRegistered)
		_, err = s.AddRegistration(ctx, "m1", entry("u2", 0), nil)
		assert.ErrorIs(t, err, storage.ErrMatchFull)
	})

	t.Run("Stale Entry Fee", func(t *testing.T) {
		s := New()
		seedMatch(t, s, 2, 50)

		_, err := s.AddRegistration(ctx, "m1", entry("u1", 0), nil)
		assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)
	})
}

func TestCancelRegistration(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedWallet(t, s, "u1", 100)
	seedMatch(t, s, 2, 30)

	_, err := s.AddRegistration(ctx, "m1", entry("u1", 30), debit("u1", 30, "match:m1:entry:0"))
	require.NoError(t, err)

	refund := &models.Transaction{UserID: "u1", Type: models.CREDIT, Amount: 30, ReferenceID: "refund:match:m1:entry:0"}
	m, err := s.CancelRegistration(ctx, "m1", 0, "u1", refund)
	require.NoError(t, err)
	assert.Equal(t, 0, m.ActiveCount)
	assert.Empty(t, m.ActiveUserIDs)
	assert.Equal(t, models.RegistrationCancelled, m.RegisteredPlayers[0].Status)

	w, _ := s.GetWallet(ctx, "u1")
	assert.Equal(t, int64(100), w.Balance)

	_, err = s.CancelRegistration(ctx, "m1", 0, "u1", nil)
	assert.ErrorIs(t, err, storage.ErrNotRegistered)
}

func TestConfirmRegistration(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedMatch(t, s, 2, 0)
	_, err := s.AddRegistration(ctx, "m1", entry("u1", 0), nil)
	require.NoError(t, err)

	m, err := s.ConfirmRegistration(ctx, "m1", 0, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationConfirmed, m.RegisteredPlayers[0].Status)

	_, err = s.ConfirmRegistration(ctx, "m1", 0, "u1")
	assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)

	_, err = s.ConfirmRegistration(ctx, "m1", 0, "u2")
	assert.ErrorIs(t, err, storage.ErrNotRegistered)
}

func TestTransitionMatchStatus(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedMatch(t, s, 2, 0)

	m, err := s.TransitionMatchStatus(ctx, "m1", models.MatchUpcoming, models.MatchLive)
	require.NoError(t, err)
	assert.Equal(t, models.MatchLive, m.Status)
	assert.Equal(t, int64(2), m.Version)

	_, err = s.TransitionMatchStatus(ctx, "m1", models.MatchUpcoming, models.MatchLive)
	assert.ErrorIs(t, err, storage.ErrInvalidMatchState)
}

func TestListMatchesStartedBefore(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedMatch(t, s, 2, 0)

	before, err := s.ListMatchesStartedBefore(ctx, models.MatchUpcoming, time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, before)

	at, err := s.ListMatchesStartedBefore(ctx, models.MatchUpcoming, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, at, 1)

	live, err := s.ListMatches(ctx, models.MatchLive)
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestUpdateMatchDetails(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedMatch(t, s, 2, 0)
	_, err := s.AddRegistration(ctx, "m1", entry("u1", 0), nil)
	require.NoError(t, err)
	_, err = s.AddRegistration(ctx, "m1", entry("u2", 0), nil)
	require.NoError(t, err)

	m, _ := s.GetMatch(ctx, "m1")
	m.MaxPlayers = 1
	_, err = s.UpdateMatchDetails(ctx, m)
	assert.ErrorIs(t, err, storage.ErrCapacityBelowRegistrations)

	m.MaxPlayers = 10
	m.Name = "Finals"
	updated, err := s.UpdateMatchDetails(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, "Finals", updated.Name)
	assert.Equal(t, 2, updated.ActiveCount)
}

func TestRecordResultsOnce(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedMatch(t, s, 2, 0)

	_, err := s.RecordResults(ctx, "m1", &models.Results{IsCompleted: true})
	assert.ErrorIs(t, err, storage.ErrInvalidMatchState)

	_, err = s.TransitionMatchStatus(ctx, "m1", models.MatchUpcoming, models.MatchLive)
	require.NoError(t, err)

	m, err := s.RecordResults(ctx, "m1", &models.Results{IsCompleted: true, TotalPaid: 10})
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, m.Status)

	_, err = s.RecordResults(ctx, "m1", &models.Results{IsCompleted: true})
	assert.ErrorIs(t, err, storage.ErrResultsAlreadyRecorded)
}
