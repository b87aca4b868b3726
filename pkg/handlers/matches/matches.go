package matches

import (
	"context"
	"net/http"
	"time"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/handlers/respond"
	"github.com/chris/squad-arena/pkg/mapping"
	engine "github.com/chris/squad-arena/pkg/matches"
	"github.com/chris/squad-arena/pkg/middleware"
	"github.com/chris/squad-arena/pkg/models"
)

// Engine is the set of match operations exposed over HTTP.
type Engine interface {
	CreateMatch(ctx context.Context, spec engine.MatchSpec) (*models.Match, error)
	UpdateMatch(ctx context.Context, matchID string, spec engine.MatchSpec) (*models.Match, error)
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
	ListMatches(ctx context.Context, status models.MatchStatus) ([]models.Match, error)
	SetStatus(ctx context.Context, matchID string, to models.MatchStatus) (*models.Match, error)
	JoinMatch(ctx context.Context, matchID, userID, squadID string) (*models.Registration, error)
	LeaveMatch(ctx context.Context, matchID, userID string) (*models.Match, error)
	ConfirmRegistration(ctx context.Context, matchID, userID string) (*models.Match, error)
	UploadResults(ctx context.Context, matchID string, payload engine.ResultsPayload) (*models.Match, error)
	AutoUpdateStatuses(ctx context.Context, now time.Time) (int, error)
}

// MatchesHandler holds the dependencies for match-related handlers.
type MatchesHandler struct {
	Engine Engine
}

// NewMatchesHandler creates a new MatchesHandler.
func NewMatchesHandler(e Engine) *MatchesHandler {
	return &MatchesHandler{Engine: e}
}

func (h *MatchesHandler) writeMatch(w http.ResponseWriter, r *http.Request, status int, match *models.Match, err error) {
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	api.WriteJSON(w, status, mapping.ToApiMatch(match))
}

// CreateMatch handles the logic for creating a new match.
func (h *MatchesHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var spec api.MatchSpec
	if !respond.Decode(w, r, &spec) {
		return
	}

	match, err := h.Engine.CreateMatch(r.Context(), mapping.ToDomainMatchSpec(&spec))
	h.writeMatch(w, r, http.StatusCreated, match, err)
}

// UpdateMatch replaces the editable attributes of a match.
func (h *MatchesHandler) UpdateMatch(w http.ResponseWriter, r *http.Request, matchId string) {
	var spec api.MatchSpec
	if !respond.Decode(w, r, &spec) {
		return
	}

	match, err := h.Engine.UpdateMatch(r.Context(), matchId, mapping.ToDomainMatchSpec(&spec))
	h.writeMatch(w, r, http.StatusOK, match, err)
}

func (h *MatchesHandler) GetMatch(w http.ResponseWriter, r *http.Request, matchId string) {
	match, err := h.Engine.GetMatch(r.Context(), matchId)
	h.writeMatch(w, r, http.StatusOK, match, err)
}

// ListMatches handles the logic for retrieving matches, optionally filtered by status.
func (h *MatchesHandler) ListMatches(w http.ResponseWriter, r *http.Request, params api.ListMatchesParams) {
	var status models.MatchStatus
	if params.Status != nil {
		status = models.MatchStatus(*params.Status)
	}

	found, err := h.Engine.ListMatches(r.Context(), status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiMatches := make([]*api.Match, len(found))
	for i := range found {
		apiMatches[i] = mapping.ToApiMatch(&found[i])
	}

	api.WriteJSON(w, http.StatusOK, apiMatches)
}

func (h *MatchesHandler) SetMatchStatus(w http.ResponseWriter, r *http.Request, matchId string) {
	var update api.MatchStatusUpdate
	if !respond.Decode(w, r, &update) {
		return
	}

	match, err := h.Engine.SetStatus(r.Context(), matchId, models.MatchStatus(update.Status))
	h.writeMatch(w, r, http.StatusOK, match, err)
}

// JoinMatch registers the calling user and charges the entry fee.
func (h *MatchesHandler) JoinMatch(w http.ResponseWriter, r *http.Request, matchId string) {
	var join api.JoinRequest
	if r.ContentLength != 0 && !respond.Decode(w, r, &join) {
		return
	}

	reg, err := h.Engine.JoinMatch(r.Context(), matchId, middleware.UserID(r.Context()), join.SquadId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, mapping.ToApiRegistration(reg))
}

// LeaveMatch cancels the calling user's registration.
func (h *MatchesHandler) LeaveMatch(w http.ResponseWriter, r *http.Request, matchId string) {
	match, err := h.Engine.LeaveMatch(r.Context(), matchId, middleware.UserID(r.Context()))
	h.writeMatch(w, r, http.StatusOK, match, err)
}

func (h *MatchesHandler) ConfirmRegistration(w http.ResponseWriter, r *http.Request, matchId string, userId string) {
	match, err := h.Engine.ConfirmRegistration(r.Context(), matchId, userId)
	h.writeMatch(w, r, http.StatusOK, match, err)
}

// UploadResults records the final standings and completes the match.
func (h *MatchesHandler) UploadResults(w http.ResponseWriter, r *http.Request, matchId string) {
	var upload api.ResultsUpload
	if !respond.Decode(w, r, &upload) {
		return
	}

	match, err := h.Engine.UploadResults(r.Context(), matchId, mapping.ToDomainResults(&upload))
	h.writeMatch(w, r, http.StatusOK, match, err)
}

// AutoUpdateStatuses runs one pass of time-based status changes. It is the
// hook for an external scheduler.
func (h *MatchesHandler) AutoUpdateStatuses(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Engine.AutoUpdateStatuses(r.Context(), time.Now().UTC())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.AutoUpdateResult{Updated: updated})
}
