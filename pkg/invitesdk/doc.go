/*
Package invitesdk provides a client SDK for the housekey invite service.

# Overview

The invite service turns resource access into shareable, expiring,
capacity-limited token values. This package wraps its HTTP API with
typed requests, responses and errors.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: unauthenticated operations and session construction
  - Session: operations that carry a bearer token

Create an SDKClient to reach public endpoints:

	client := invitesdk.NewSDKClient("https://invites.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Preview an invite without consuming a use
	preview, err := client.ValidateInvite(ctx, invitesdk.ValidateInviteRequest{
		TokenValue: value,
	})

Sessions wrap an access token issued by the identity provider the
service trusts. The SDK does not obtain or refresh tokens itself:

	session := client.WithToken(accessToken)

	// Mint an invite (requires invites:write)
	minted, err := session.MintInvite(ctx, invitesdk.MintInviteRequest{
		ResourceID: "workspace-7",
		MaxUses:    5,
	})

	// minted.TokenValue is shown exactly once; deliver it now
	fmt.Println(minted.TokenValue)

	// Redeem an invite as the token's subject
	accepted, err := session.AcceptInvite(ctx, invitesdk.AcceptInviteRequest{
		TokenValue: minted.TokenValue,
	})

# Error Handling

Failed calls return *APIError with the service's error code, the HTTP
status and, for rate limited or unavailable responses, a RetryAfter
hint:

	var apiErr *invitesdk.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case invitesdk.ErrorCodeInviteExpired:
			// ask for a fresh invite
		case invitesdk.ErrorCodeRateLimited:
			time.Sleep(apiErr.RetryAfter)
		}
	}
*/
package invitesdk
