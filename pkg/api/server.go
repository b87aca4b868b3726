package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by pkg/handlers, one method per route.
type ServerInterface interface {
	// POST /wallets
	CreateWallet(w http.ResponseWriter, r *http.Request)
	// GET /wallets/{userId}
	GetWalletByUserId(w http.ResponseWriter, r *http.Request, userId string)
	// GET /wallets/{userId}/balance
	GetBalance(w http.ResponseWriter, r *http.Request, userId string)
	// PUT /wallets/{userId}/status
	SetWalletStatus(w http.ResponseWriter, r *http.Request, userId string)
	// GET /wallets/{userId}/audit
	AuditWallet(w http.ResponseWriter, r *http.Request, userId string)
	// GET /wallets/{userId}/transactions
	ListTransactions(w http.ResponseWriter, r *http.Request, userId string, params ListTransactionsParams)
	// POST /wallets/{userId}/credit
	CreditWallet(w http.ResponseWriter, r *http.Request, userId string)
	// POST /wallets/{userId}/debit
	DebitWallet(w http.ResponseWriter, r *http.Request, userId string)
	// POST /wallets/{userId}/deposits
	RecordDeposit(w http.ResponseWriter, r *http.Request, userId string)
	// POST /deposits/{transactionId}/complete
	CompleteDeposit(w http.ResponseWriter, r *http.Request, transactionId string)
	// POST /matches
	CreateMatch(w http.ResponseWriter, r *http.Request)
	// GET /matches
	ListMatches(w http.ResponseWriter, r *http.Request, params ListMatchesParams)
	// POST /matches/auto-update
	AutoUpdateStatuses(w http.ResponseWriter, r *http.Request)
	// GET /matches/{matchId}
	GetMatch(w http.ResponseWriter, r *http.Request, matchId string)
	// PUT /matches/{matchId}
	UpdateMatch(w http.ResponseWriter, r *http.Request, matchId string)
	// PUT /matches/{matchId}/status
	SetMatchStatus(w http.ResponseWriter, r *http.Request, matchId string)
	// POST /matches/{matchId}/join
	JoinMatch(w http.ResponseWriter, r *http.Request, matchId string)
	// POST /matches/{matchId}/leave
	LeaveMatch(w http.ResponseWriter, r *http.Request, matchId string)
	// POST /matches/{matchId}/players/{userId}/confirm
	ConfirmRegistration(w http.ResponseWriter, r *http.Request, matchId string, userId string)
	// POST /matches/{matchId}/results
	UploadResults(w http.ResponseWriter, r *http.Request, matchId string)
}

// MiddlewareFunc wraps a single operation handler.
type MiddlewareFunc func(http.Handler) http.Handler

// InvalidParamFormatError is passed to the error handler when a parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ServerInterfaceWrapper converts chi requests into ServerInterface calls.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// pathParam binds a required string path parameter.
func (siw *ServerInterfaceWrapper) pathParam(w http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) CreateWallet(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateWallet)
}

func (siw *ServerInterfaceWrapper) GetWalletByUserId(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.GetWalletByUserId(w, r, userId) })
}

func (siw *ServerInterfaceWrapper) GetBalance(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.GetBalance(w, r, userId) })
}

func (siw *ServerInterfaceWrapper) SetWalletStatus(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.SetWalletStatus(w, r, userId) })
}

func (siw *ServerInterfaceWrapper) AuditWallet(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.AuditWallet(w, r, userId) })
}

func (siw *ServerInterfaceWrapper) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}

	var params ListTransactionsParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "cursor", r.URL.Query(), &params.Cursor); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "cursor", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.ListTransactions(w, r, userId, params) })
}

func (siw *ServerInterfaceWrapper) CreditWallet(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.CreditWallet(w, r, userId) })
}

func (siw *ServerInterfaceWrapper) DebitWallet(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.DebitWallet(w, r, userId) })
}

func (siw *ServerInterfaceWrapper) RecordDeposit(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.RecordDeposit(w, r, userId) })
}

func (siw *ServerInterfaceWrapper) CompleteDeposit(w http.ResponseWriter, r *http.Request) {
	var transactionId string
	if !siw.pathParam(w, r, "transactionId", &transactionId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.CompleteDeposit(w, r, transactionId) })
}

func (siw *ServerInterfaceWrapper) CreateMatch(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateMatch)
}

func (siw *ServerInterfaceWrapper) ListMatches(w http.ResponseWriter, r *http.Request) {
	var params ListMatchesParams
	if err := runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &params.Status); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "status", Err: err})
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.ListMatches(w, r, params) })
}

func (siw *ServerInterfaceWrapper) AutoUpdateStatuses(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.AutoUpdateStatuses)
}

func (siw *ServerInterfaceWrapper) GetMatch(w http.ResponseWriter, r *http.Request) {
	var matchId string
	if !siw.pathParam(w, r, "matchId", &matchId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.GetMatch(w, r, matchId) })
}

func (siw *ServerInterfaceWrapper) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	var matchId string
	if !siw.pathParam(w, r, "matchId", &matchId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.UpdateMatch(w, r, matchId) })
}

func (siw *ServerInterfaceWrapper) SetMatchStatus(w http.ResponseWriter, r *http.Request) {
	var matchId string
	if !siw.pathParam(w, r, "matchId", &matchId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.SetMatchStatus(w, r, matchId) })
}

func (siw *ServerInterfaceWrapper) JoinMatch(w http.ResponseWriter, r *http.Request) {
	var matchId string
	if !siw.pathParam(w, r, "matchId", &matchId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.JoinMatch(w, r, matchId) })
}

func (siw *ServerInterfaceWrapper) LeaveMatch(w http.ResponseWriter, r *http.Request) {
	var matchId string
	if !siw.pathParam(w, r, "matchId", &matchId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.LeaveMatch(w, r, matchId) })
}

func (siw *ServerInterfaceWrapper) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	var matchId, userId string
	if !siw.pathParam(w, r, "matchId", &matchId) || !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.ConfirmRegistration(w, r, matchId, userId) })
}

func (siw *ServerInterfaceWrapper) UploadResults(w http.ResponseWriter, r *http.Request) {
	var matchId string
	if !siw.pathParam(w, r, "matchId", &matchId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.UploadResults(w, r, matchId) })
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler routes every ServerInterface method on a new chi router.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerFromMux routes every ServerInterface method on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{BaseRouter: r})
}

// HandlerWithOptions is Handler with a base URL, middlewares and an error handler.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/wallets", wrapper.CreateWallet)
		r.Get(options.BaseURL+"/wallets/{userId}", wrapper.GetWalletByUserId)
		r.Get(options.BaseURL+"/wallets/{userId}/balance", wrapper.GetBalance)
		r.Put(options.BaseURL+"/wallets/{userId}/status", wrapper.SetWalletStatus)
		r.Get(options.BaseURL+"/wallets/{userId}/audit", wrapper.AuditWallet)
		r.Get(options.BaseURL+"/wallets/{userId}/transactions", wrapper.ListTransactions)
		r.Post(options.BaseURL+"/wallets/{userId}/credit", wrapper.CreditWallet)
		r.Post(options.BaseURL+"/wallets/{userId}/debit", wrapper.DebitWallet)
		r.Post(options.BaseURL+"/wallets/{userId}/deposits", wrapper.RecordDeposit)
		r.Post(options.BaseURL+"/deposits/{transactionId}/complete", wrapper.CompleteDeposit)
		r.Post(options.BaseURL+"/matches", wrapper.CreateMatch)
		r.Get(options.BaseURL+"/matches", wrapper.ListMatches)
		r.Post(options.BaseURL+"/matches/auto-update", wrapper.AutoUpdateStatuses)
		r.Get(options.BaseURL+"/matches/{matchId}", wrapper.GetMatch)
		r.Put(options.BaseURL+"/matches/{matchId}", wrapper.UpdateMatch)
		r.Put(options.BaseURL+"/matches/{matchId}/status", wrapper.SetMatchStatus)
		r.Post(options.BaseURL+"/matches/{matchId}/join", wrapper.JoinMatch)
		r.Post(options.BaseURL+"/matches/{matchId}/leave", wrapper.LeaveMatch)
		r.Post(options.BaseURL+"/matches/{matchId}/players/{userId}/confirm", wrapper.ConfirmRegistration)
		r.Post(options.BaseURL+"/matches/{matchId}/results", wrapper.UploadResults)
	})

	return r
}
