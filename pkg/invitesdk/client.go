package invitesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the housekey invite service.
// It provides access to unauthenticated operations and can create
// authenticated Sessions from a bearer token.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new invite service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken creates an authenticated session from an access token issued
// by the identity provider the service trusts. The SDK never inspects
// the token; authorization is enforced server-side.
func (c *SDKClient) WithToken(accessToken string) *Session {
	return &Session{
		client: c,
		token:  accessToken,
	}
}

// ValidateInvite checks a token value without consuming a use.
// This is a public endpoint (no authentication required). A token that
// cannot be redeemed, for any reason, comes back as valid=false with
// reason "invalid".
func (c *SDKClient) ValidateInvite(ctx context.Context, req ValidateInviteRequest) (*ValidateInviteResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/invites/validate", body, headers)
	if err != nil {
		return nil, err
	}

	var validateResp ValidateInviteResponse
	if err := decodeJSON(resp, &validateResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &validateResp, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
