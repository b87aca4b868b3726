package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/handlers/respond"
	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/matches"
	"github.com/chris/squad-arena/pkg/middleware"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage/memory"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t      *testing.T
	server *httptest.Server
}

func newClient(t *testing.T) *client {
	store := memory.New()
	ledgerService := ledger.NewService(store, nil)
	engine := matches.NewEngine(store, ledgerService, nil, matches.Config{})

	router := chi.NewRouter()
	router.Use(middleware.Identity)
	api.HandlerWithOptions(NewApiHandler(ledgerService, engine), api.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: respond.ParamError,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &client{t: t, server: server}
}

func (c *client) do(method, path, userID string, body, out interface{}) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	if userID != "" {
		req.Header.Set(middleware.UserHeader, userID)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestMatchDayOverHTTP(t *testing.T) {
	c := newClient(t)
	opening := int64(1000)

	for _, u := range []string{"alice", "bob"} {
		code := c.do(http.MethodPost, "/wallets", "", api.NewWallet{UserId: u, OpeningBalance: &opening}, nil)
		require.Equal(t, http.StatusCreated, code)
	}

	spec := api.MatchSpec{
		Name:       "Friday Scrims",
		EntryFee:   100,
		PrizePool:  500,
		MaxPlayers: 1,
		Map:        "Sanhok",
		StartTime:  time.Now().Add(time.Hour).UTC(),
		PrizeDistribution: models.PrizeDistribution{
			RankRewards: models.RankRewards{Ranks: []models.RankReward{{Rank: 1, Label: "Winner", Amount: 500}}, Total: 500},
			Summary:     models.PrizeSummary{RankRewardsTotal: 500, TotalDistributed: 500},
		},
	}
	var match api.Match
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/matches", "", spec, &match))

	join := fmt.Sprintf("/matches/%s/join", match.Id)
	assert.Equal(t, http.StatusCreated, c.do(http.MethodPost, join, "alice", api.JoinRequest{SquadId: "alpha"}, nil))

	var failure api.Error
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, join, "bob", nil, &failure))
	assert.Equal(t, api.CodeMatchFull, failure.Code)

	var balance api.Balance
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/wallets/alice/balance", "", nil, &balance))
	assert.Equal(t, int64(900), balance.Balance)

	var page api.TransactionPage
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/wallets/alice/transactions?limit=1", "", nil, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, api.TransactionType("debit"), page.Items[0].Type)
	require.NotNil(t, page.NextCursor)

	status := fmt.Sprintf("/matches/%s/status", match.Id)
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, status, "", api.MatchStatusUpdate{Status: "live"}, nil))

	upload := api.ResultsUpload{SquadRankings: []models.SquadRanking{
		{SquadID: "alpha", Rank: 1, Players: []models.PlayerResult{{UserID: "alice", Kills: 3}}},
	}}
	var completed api.Match
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, fmt.Sprintf("/matches/%s/results", match.Id), "", upload, &completed))
	assert.Equal(t, api.MatchStatus("completed"), completed.Status)
	require.NotNil(t, completed.Results)
	assert.Equal(t, int64(500), completed.Results.TotalPaid)

	var report api.AuditReport
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/wallets/alice/audit", "", nil, &report))
	assert.True(t, report.Consistent)
}

func TestParameterBindingErrors(t *testing.T) {
	c := newClient(t)

	var failure api.Error
	code := c.do(http.MethodGet, "/wallets/alice/transactions?limit=many", "", nil, &failure)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, api.CodeValidation, failure.Code)
}
