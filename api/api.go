// Package api assembles the messagely HTTP surface: the open login and
// register routes plus the guarded per-user resources.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/reamslin/messagely/auth"
	authapi "github.com/reamslin/messagely/auth/api"
	"github.com/reamslin/messagely/internal/logutil"
	"github.com/reamslin/messagely/store"
	"github.com/rs/zerolog/log"
)

type (
	handler struct {
		authn  *auth.Authenticator
		tokens *auth.TokenService
		store  *store.Store
	}

	userDetail struct {
		Username    string    `json:"username"`
		FirstName   string    `json:"first_name"`
		LastName    string    `json:"last_name"`
		Phone       string    `json:"phone"`
		JoinAt      time.Time `json:"join_at"`
		LastLoginAt time.Time `json:"last_login_at"`
	}
)

// AsHandler builds the full route table. Guarded routes go through the
// realm's token gate, per-user ones also through the ownership gate.
func AsHandler(authn *auth.Authenticator, tokens *auth.TokenService, st *store.Store) http.Handler {
	h := handler{authn: authn, tokens: tokens, store: st}
	realm := authapi.NewRealm(tokens)

	router := httprouter.New()
	router.Handler("POST", "/login", http.HandlerFunc(h.login))
	router.Handler("POST", "/register", http.HandlerFunc(h.register))
	router.Handler("GET", "/users", realm.Protect(http.HandlerFunc(h.listUsers)))
	router.Handler("GET", "/users/:username", realm.ProtectOwner(http.HandlerFunc(h.getUser)))
	router.Handler("GET", "/users/:username/to", realm.ProtectOwner(http.HandlerFunc(h.messagesTo)))
	router.Handler("GET", "/users/:username/from", realm.ProtectOwner(http.HandlerFunc(h.messagesFrom)))
	return requestLogger(router)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = logutil.WithRequest(r, log.Logger)
		logger := logutil.GetOrDefault(r.Context())
		logger.Debug().Msg("Handling request")
		next.ServeHTTP(w, r)
	})
}

func (h handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Missing username/password", http.StatusBadRequest)
		return
	}
	ok, err := h.authn.Authenticate(r.Context(), req.Username, req.Password)
	var notFound auth.NotFound
	switch {
	case errors.As(err, &notFound):
		// an unknown username answers exactly like a wrong password
		http.Error(w, "Invalid username/password", http.StatusBadRequest)
		return
	case err != nil:
		internalError(w, r, err)
		return
	case !ok:
		http.Error(w, "Invalid username/password", http.StatusBadRequest)
		return
	}
	if _, err := h.authn.RecordLogin(r.Context(), req.Username); err != nil {
		internalError(w, r, err)
		return
	}
	h.issueToken(w, r, req.Username)
}

func (h handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" || req.FirstName == "" ||
		req.LastName == "" || req.Phone == "" {
		http.Error(w, "Missing required information", http.StatusBadRequest)
		return
	}
	_, err := h.authn.Register(r.Context(), req.Username, req.Password,
		req.FirstName, req.LastName, req.Phone)
	var conflict auth.Conflict
	switch {
	case errors.As(err, &conflict):
		http.Error(w, conflict.Error(), http.StatusConflict)
		return
	case err != nil:
		internalError(w, r, err)
		return
	}
	h.issueToken(w, r, req.Username)
}

func (h handler) issueToken(w http.ResponseWriter, r *http.Request, username string) {
	token, err := h.tokens.Issue(username)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, map[string]string{"token": token})
}

func (h handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, map[string]interface{}{"users": users})
}

func (h handler) getUser(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName(authapi.OwnerParam)
	acct, err := h.store.FindByUsername(r.Context(), username)
	var notFound auth.NotFound
	switch {
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
		return
	case err != nil:
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, map[string]interface{}{"user": userDetail{
		Username:    acct.Username,
		FirstName:   acct.FirstName,
		LastName:    acct.LastName,
		Phone:       acct.Phone,
		JoinAt:      acct.JoinAt,
		LastLoginAt: acct.LastLoginAt,
	}})
}

func (h handler) messagesTo(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName(authapi.OwnerParam)
	msgs, err := h.store.MessagesTo(r.Context(), username)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, map[string]interface{}{"messages": msgs})
}

func (h handler) messagesFrom(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName(authapi.OwnerParam)
	msgs, err := h.store.MessagesFrom(r.Context(), username)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, map[string]interface{}{"messages": msgs})
}
