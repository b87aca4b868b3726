// Package respond maps domain errors onto API error responses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/matches"
	"github.com/chris/squad-arena/pkg/prize"
	"github.com/chris/squad-arena/pkg/storage"
)

type kind struct {
	status int
	code   string
}

// kinds is checked in order; the first match wins.
var kinds = []struct {
	err error
	kind
}{
	{prize.ErrPrizeDistributionInvalid, kind{http.StatusUnprocessableEntity, api.CodePrizeDistribution}},
	{matches.ErrResultsPayloadInvalid, kind{http.StatusUnprocessableEntity, api.CodeResultsPayload}},
	{matches.ErrInvalidMatchSpec, kind{http.StatusBadRequest, api.CodeValidation}},
	{matches.ErrMissingUser, kind{http.StatusBadRequest, api.CodeValidation}},
	{ledger.ErrInvalidAmount, kind{http.StatusBadRequest, api.CodeValidation}},
	{ledger.ErrInvalidUserID, kind{http.StatusBadRequest, api.CodeValidation}},
	{ledger.ErrInvalidStatus, kind{http.StatusBadRequest, api.CodeValidation}},
	{ledger.ErrReservedReference, kind{http.StatusBadRequest, api.CodeValidation}},
	{storage.ErrInvalidCursor, kind{http.StatusBadRequest, api.CodeValidation}},
	{storage.ErrInsufficientBalance, kind{http.StatusUnprocessableEntity, api.CodeInsufficientBalance}},
	{storage.ErrMatchFull, kind{http.StatusConflict, api.CodeMatchFull}},
	{storage.ErrAlreadyRegistered, kind{http.StatusConflict, api.CodeAlreadyRegistered}},
	{storage.ErrNotRegistered, kind{http.StatusConflict, api.CodeNotRegistered}},
	{storage.ErrInvalidMatchState, kind{http.StatusConflict, api.CodeInvalidMatchState}},
	{storage.ErrResultsAlreadyRecorded, kind{http.StatusConflict, api.CodeInvalidMatchState}},
	{storage.ErrCapacityBelowRegistrations, kind{http.StatusConflict, api.CodeConflict}},
	{storage.ErrDuplicateReference, kind{http.StatusConflict, api.CodeDuplicateReference}},
	{storage.ErrNotFound, kind{http.StatusNotFound, api.CodeNotFound}},
	{storage.ErrWalletExists, kind{http.StatusConflict, api.CodeConflict}},
	{storage.ErrMatchExists, kind{http.StatusConflict, api.CodeConflict}},
	{storage.ErrWalletNotActive, kind{http.StatusConflict, api.CodeConflict}},
	{storage.ErrDepositNotPending, kind{http.StatusConflict, api.CodeConflict}},
	{storage.ErrConcurrentUpdate, kind{http.StatusConflict, api.CodeConflict}},
}

// Error writes err as an API error. Unknown errors are logged and reported
// as internal without their message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			api.WriteError(w, k.status, k.code, err.Error())
			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
}

// ParamError handles parameter binding failures from the api router.
func ParamError(w http.ResponseWriter, r *http.Request, err error) {
	api.WriteError(w, http.StatusBadRequest, api.CodeValidation, err.Error())
}

// Decode reads a JSON body into v, writing a validation error on failure.
func Decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidation, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}
