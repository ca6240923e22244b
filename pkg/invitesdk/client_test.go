package invitesdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateInvite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/invites/validate", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var req ValidateInviteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "some.value", req.TokenValue)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ValidateInviteResponse{
			Valid:         true,
			ResourceID:    "workspace-1",
			UsesRemaining: 3,
		})
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)
	resp, err := client.ValidateInvite(context.Background(), ValidateInviteRequest{TokenValue: "some.value"})
	require.NoError(t, err)
	require.True(t, resp.Valid)
	require.Equal(t, "workspace-1", resp.ResourceID)
	require.Equal(t, 3, resp.UsesRemaining)
}

func TestSessionSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(MintInviteResponse{
			TokenValue: "id.secret",
			Invite:     Invite{ID: "id", ResourceID: "workspace-1", State: "active"},
		})
	}))
	defer srv.Close()

	session := NewSDKClient(srv.URL).WithToken("access-token")
	resp, err := session.MintInvite(context.Background(), MintInviteRequest{ResourceID: "workspace-1"})
	require.NoError(t, err)
	require.Equal(t, "id.secret", resp.TokenValue)
	require.Equal(t, "active", resp.Invite.State)
}

func TestAPIErrorParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:            ErrorCodeRateLimited,
			ErrorDescription: "too many validation attempts",
		})
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)
	_, err := client.ValidateInvite(context.Background(), ValidateInviteRequest{TokenValue: "x.y"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, ErrorCodeRateLimited, apiErr.Code)
	require.Equal(t, 30*time.Second, apiErr.RetryAfter)
	require.True(t, apiErr.IsRetryable())
}

func TestAPIErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)
	_, err := client.GetLiveness(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.False(t, apiErr.IsRetryable())
}
