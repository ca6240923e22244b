package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/housekey/pkg/httpx"
	"github.com/aussiebroadwan/housekey/pkg/jwtx"
)

// stubVerifier lets middleware tests control the verification outcome
// without signing real tokens.
type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(token string) (jwtx.Claims, error) {
	return s.claims, s.err
}

func TestChainOrdering(t *testing.T) {
	var order []string

	tag := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("first"), tag("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// First middleware in the list is outermost
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(httpx.CtxKeyUserID).(string)
		claims, ok := httpx.ClaimsFromCtx(r.Context())
		require.True(t, ok)
		require.Equal(t, userID, claims.Subject)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		v := stubVerifier{claims: jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
			Scopes:           []string{"invites:write"},
			Resources:        []string{"board-1"},
		}}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(v)(okHandler).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(stubVerifier{})(okHandler).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("verification failure rejected", func(t *testing.T) {
		v := stubVerifier{err: errors.New("bad signature")}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(v)(okHandler).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAnyScope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(scopes []string) *httptest.ResponseRecorder {
		v := stubVerifier{claims: jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
			Scopes:           scopes,
		}}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		rec := httptest.NewRecorder()

		h := httpx.Chain(handler, httpx.AuthnMiddleware(v), httpx.RequireAnyScope("invites:write"))
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, serve([]string{"invites:write"}).Code)
	require.Equal(t, http.StatusOK, serve([]string{"other", "invites:write"}).Code)
	require.Equal(t, http.StatusForbidden, serve([]string{"invites:read"}).Code)
	require.Equal(t, http.StatusForbidden, serve(nil).Code)
}

func TestCORSMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := httpx.CORSMiddleware([]string{"*"})(handler)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/invites/validate", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/invites/validate", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
