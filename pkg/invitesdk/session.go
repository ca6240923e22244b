package invitesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs operations that require a bearer token. Sessions are
// cheap and safe to share across goroutines; they hold no mutable state.
type Session struct {
	client *SDKClient
	token  string
}

// MintInvite creates a new invite token for a resource.
// Requires: invites:write scope and management of the resource.
//
// The response carries the only copy of the token value that will ever
// exist. The service stores a digest and cannot reproduce it.
func (s *Session) MintInvite(ctx context.Context, req MintInviteRequest) (*MintInviteResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invites", body, headers)
	if err != nil {
		return nil, err
	}

	var mintResp MintInviteResponse
	if err := decodeJSON(resp, &mintResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &mintResp, nil
}

// AcceptInvite redeems a token value for the calling subject. Redeeming
// an invite for a resource the caller already holds a grant on succeeds
// with AlreadyGranted set and consumes nothing, so retrying after a lost
// response is safe.
func (s *Session) AcceptInvite(ctx context.Context, req AcceptInviteRequest) (*AcceptInviteResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invites/accept", body, headers)
	if err != nil {
		return nil, err
	}

	var acceptResp AcceptInviteResponse
	if err := decodeJSON(resp, &acceptResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &acceptResp, nil
}

// RevokeInvite permanently disables an invite token by its id.
// Requires: invites:write scope and management of the token's resource.
func (s *Session) RevokeInvite(ctx context.Context, tokenID string) (*RevokeInviteResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invites/"+url.PathEscape(tokenID)+"/revoke", nil, nil)
	if err != nil {
		return nil, err
	}

	var revokeResp RevokeInviteResponse
	if err := decodeJSON(resp, &revokeResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &revokeResp, nil
}

// ListInvites returns the invites minted for a resource, newest first.
// Requires: invites:read scope and management of the resource.
func (s *Session) ListInvites(ctx context.Context, resourceID string) (*ListInvitesResponse, error) {
	query := url.Values{}
	query.Set("resource_id", resourceID)

	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/invites?"+query.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp ListInvitesResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}
