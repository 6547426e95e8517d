package api

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/reamslin/messagely/auth"
	"github.com/steinfletcher/apitest"
)

func acquireTokens(t *testing.T) *auth.TokenService {
	tokens, err := auth.NewTokenService([]byte("filter-test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tokens
}

func TestProtect(t *testing.T) {
	tokens := acquireTokens(t)
	sr := NewRealm(tokens)
	var count uint32
	protected := sr.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subject, ok := Subject(r.Context()); !ok || subject != "alice" {
			t.Fatal("subject not bound to the request context")
		}
		atomic.AddUint32(&count, 1)
		http.Error(w, "OK", http.StatusOK)
	}))
	apitest.Handler(protected).Get("/").Expect(t).Status(http.StatusUnauthorized).End()
	apitest.Handler(protected).Get("/").Header("Authorization", "Bearer garbage").Expect(t).Status(http.StatusUnauthorized).End()
	token, err := tokens.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	apitest.Handler(protected).Get("/").Header("Authorization", fmt.Sprintf("Bearer %v", token)).Expect(t).Status(http.StatusOK).End()
	if count != 1 {
		t.Fatal("protected endpoint should have been called only once")
	}
}

func TestProtectOwner(t *testing.T) {
	tokens := acquireTokens(t)
	sr := NewRealm(tokens)
	var count uint32
	router := httprouter.New()
	router.Handler("GET", "/users/:username", sr.ProtectOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint32(&count, 1)
		http.Error(w, "OK", http.StatusOK)
	})))

	alice, err := tokens.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	bob, err := tokens.Issue("bob")
	if err != nil {
		t.Fatal(err)
	}

	apitest.Handler(router).Get("/users/alice").
		Expect(t).Status(http.StatusUnauthorized).End()
	apitest.Handler(router).Get("/users/alice").
		Header("Authorization", fmt.Sprintf("Bearer %v", bob)).
		Expect(t).Status(http.StatusForbidden).End()
	apitest.Handler(router).Get("/users/alice").
		Header("Authorization", fmt.Sprintf("Bearer %v", alice)).
		Expect(t).Status(http.StatusOK).End()
	if count != 1 {
		t.Fatal("owner endpoint should have been called only once")
	}
}
