package invite_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/housekey/pkg/invitesdk"
	"github.com/stretchr/testify/require"
)

// TestMintValidateAcceptLifecycle walks an invite through its whole life:
// 1. A resource manager mints a two-use invite
// 2. An anonymous client validates the token value
// 3. Two grantees redeem it, exhausting the capacity
// 4. Validation flips to invalid and a third redemption is refused
func TestMintValidateAcceptLifecycle(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)
	manager := managerSession(t, client, testResource)

	// Step 1: Mint a two-use invite with a recipient hint
	mintResp := mintInvite(t, manager, invitesdk.MintInviteRequest{
		ResourceID:       testResource,
		ResourceName:     "Tab Room",
		MaxUses:          2,
		IntendedIdentity: "jordan@example.com",
	})

	require.Equal(t, 2, mintResp.Invite.MaxUses)
	require.Equal(t, "active", mintResp.Invite.State)
	require.Equal(t, "Tab Room", mintResp.Invite.ResourceName)
	require.Equal(t, adminUserID, mintResp.Invite.IssuedBy)
	require.Equal(t, "j*****@example.com", mintResp.Invite.IntendedIdentity,
		"Recipient hint should come back masked, even to the minter")

	t.Logf("Invite minted (ID: %s)", mintResp.Invite.ID)

	// Step 2: Validate anonymously, which must not consume a use
	validateResp, err := client.ValidateInvite(t.Context(), invitesdk.ValidateInviteRequest{
		TokenValue: mintResp.TokenValue,
	})
	require.NoError(t, err)
	require.True(t, validateResp.Valid, "Fresh invite should validate")
	require.Equal(t, testResource, validateResp.ResourceID)
	require.Equal(t, "Tab Room", validateResp.ResourceName,
		"Preview should carry the display name snapshot")
	require.Equal(t, 2, validateResp.UsesRemaining, "Validation should not consume a use")
	require.Equal(t, "j*****@example.com", validateResp.IntendedIdentity)
	require.NotZero(t, validateResp.ExpiresAt)

	t.Logf("Invite validates with %d uses remaining", validateResp.UsesRemaining)

	// Step 3: First grantee redeems
	alice := granteeSession(t, client, "alice")
	acceptResp, err := alice.AcceptInvite(t.Context(), invitesdk.AcceptInviteRequest{
		TokenValue: mintResp.TokenValue,
	})
	require.NoError(t, err)
	require.False(t, acceptResp.AlreadyGranted)
	require.NotEmpty(t, acceptResp.Grant.ID)
	require.Equal(t, "alice", acceptResp.Grant.GranteeID)
	require.Equal(t, testResource, acceptResp.Grant.ResourceID)
	require.Equal(t, mintResp.Invite.ID, acceptResp.Grant.TokenID,
		"Grant should record which invite produced it")

	t.Logf("First redemption granted (Grant ID: %s)", acceptResp.Grant.ID)

	// One use consumed, visible to both validation and the manager's list
	validateResp, err = client.ValidateInvite(t.Context(), invitesdk.ValidateInviteRequest{
		TokenValue: mintResp.TokenValue,
	})
	require.NoError(t, err)
	require.True(t, validateResp.Valid)
	require.Equal(t, 1, validateResp.UsesRemaining)

	listResp, err := manager.ListInvites(t.Context(), testResource)
	require.NoError(t, err)
	listed := findInviteByID(t, listResp, mintResp.Invite.ID)
	require.Equal(t, 1, listed.UseCount)
	require.Equal(t, "active", listed.State)

	// Step 4: Second grantee takes the last use
	bob := granteeSession(t, client, "bob")
	acceptResp, err = bob.AcceptInvite(t.Context(), invitesdk.AcceptInviteRequest{
		TokenValue: mintResp.TokenValue,
	})
	require.NoError(t, err)
	require.False(t, acceptResp.AlreadyGranted)
	require.Equal(t, "bob", acceptResp.Grant.GranteeID)

	t.Logf("Second redemption granted, invite is now exhausted")

	// Exhausted invites validate as plain invalid, no reason leaked
	validateResp, err = client.ValidateInvite(t.Context(), invitesdk.ValidateInviteRequest{
		TokenValue: mintResp.TokenValue,
	})
	require.NoError(t, err)
	require.False(t, validateResp.Valid)
	require.Equal(t, "invalid", validateResp.Reason)
	require.Zero(t, validateResp.UsesRemaining)

	// The manager sees the real state
	listResp, err = manager.ListInvites(t.Context(), testResource)
	require.NoError(t, err)
	listed = findInviteByID(t, listResp, mintResp.Invite.ID)
	require.Equal(t, "exhausted", listed.State)
	require.Equal(t, 2, listed.UseCount)
	require.Zero(t, listed.UsesRemaining)

	// A third redemption is refused with capacity_reached
	carol := granteeSession(t, client, "carol")
	_, err = carol.AcceptInvite(t.Context(), invitesdk.AcceptInviteRequest{
		TokenValue: mintResp.TokenValue,
	})
	assertAPIError(t, err, http.StatusConflict, invitesdk.ErrorCodeCapacityReached,
		"Redeeming an exhausted invite should be refused")

	t.Logf("Third redemption correctly refused with capacity_reached")
}

// TestMintDefaults verifies an invite minted with nothing but a resource
// gets single-use capacity and the default expiry window.
func TestMintDefaults(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)
	manager := managerSession(t, client, testResource)

	mintResp := mintInvite(t, manager, invitesdk.MintInviteRequest{
		ResourceID: testResource,
	})

	invite := mintResp.Invite
	require.Equal(t, 1, invite.MaxUses, "Default capacity should be single use")
	require.Zero(t, invite.UseCount)
	require.Equal(t, 1, invite.UsesRemaining)
	require.Equal(t, "active", invite.State)
	require.Empty(t, invite.IntendedIdentity)
	require.Zero(t, invite.RevokedAt)

	createdAt := time.Unix(invite.CreatedAt, 0)
	expiresAt := time.Unix(invite.ExpiresAt, 0)
	require.WithinDuration(t, time.Now(), createdAt, time.Minute)
	require.WithinDuration(t, createdAt.Add(7*24*time.Hour), expiresAt, time.Minute,
		"Default TTL should be seven days")

	t.Logf("Invite defaults: %d use, expires %s", invite.MaxUses, expiresAt.Format(time.RFC3339))
}

// TestMintValidation verifies malformed mint requests are rejected up front.
func TestMintValidation(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)
	manager := managerSession(t, client, testResource)

	// Missing resource
	_, err := manager.MintInvite(t.Context(), invitesdk.MintInviteRequest{})
	assertAPIError(t, err, http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest,
		"Mint without a resource should be rejected")

	// Negative capacity
	_, err = manager.MintInvite(t.Context(), invitesdk.MintInviteRequest{
		ResourceID: testResource,
		MaxUses:    -1,
	})
	assertAPIError(t, err, http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest,
		"Negative capacity should be rejected")

	// Capacity above the cap
	_, err = manager.MintInvite(t.Context(), invitesdk.MintInviteRequest{
		ResourceID: testResource,
		MaxUses:    10_001,
	})
	assertAPIError(t, err, http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest,
		"Capacity above the cap should be rejected")

	// Negative TTL
	_, err = manager.MintInvite(t.Context(), invitesdk.MintInviteRequest{
		ResourceID: testResource,
		TTLSeconds: -60,
	})
	assertAPIError(t, err, http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest,
		"Negative TTL should be rejected")

	// TTL beyond the ninety day ceiling
	_, err = manager.MintInvite(t.Context(), invitesdk.MintInviteRequest{
		ResourceID: testResource,
		TTLSeconds: int64((91 * 24 * time.Hour).Seconds()),
	})
	assertAPIError(t, err, http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest,
		"TTL beyond the ceiling should be rejected")

	t.Logf("All malformed mint requests correctly rejected with 400")
}

// TestMintRequiresManagedResource verifies the write scope alone is not
// enough, the caller must also manage the target resource.
func TestMintRequiresManagedResource(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)

	// Manager of a different resource only
	manager := managerSession(t, client, "venue:other-bar")

	_, err := manager.MintInvite(t.Context(), invitesdk.MintInviteRequest{
		ResourceID: testResource,
	})
	assertAPIError(t, err, http.StatusForbidden, invitesdk.ErrorCodePermissionDenied,
		"Minting for an unmanaged resource should be refused")

	t.Logf("Mint for unmanaged resource correctly refused with 403")
}

// TestMintRequiresWriteScope verifies a read-only token cannot mint.
func TestMintRequiresWriteScope(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)

	// Read scope and resource management, but no write scope
	reader := client.WithToken(signToken(t, adminUserID, []string{"invites:read"}, []string{testResource}))

	_, err := reader.MintInvite(t.Context(), invitesdk.MintInviteRequest{
		ResourceID: testResource,
	})
	assertAPIError(t, err, http.StatusForbidden, "",
		"Minting without invites:write should be refused")

	t.Logf("Mint without write scope correctly refused with 403")
}

// TestListInvites verifies listing order, filtering, and access control:
// 1. Mint three invites for one resource
// 2. List returns all three, newest first
// 3. A managed resource with no invites lists empty
// 4. An unmanaged resource and a missing resource are refused
func TestListInvites(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)
	manager := managerSession(t, client, testResource, "venue:empty-bar")

	// Step 1: Mint three invites
	var minted []string
	for range 3 {
		resp := mintInvite(t, manager, invitesdk.MintInviteRequest{ResourceID: testResource})
		minted = append(minted, resp.Invite.ID)
	}

	// Step 2: List returns them newest first
	listResp, err := manager.ListInvites(t.Context(), testResource)
	require.NoError(t, err)
	require.Len(t, listResp.Invites, 3)
	require.Equal(t, minted[2], listResp.Invites[0].ID, "Most recent invite should come first")
	require.Equal(t, minted[1], listResp.Invites[1].ID)
	require.Equal(t, minted[0], listResp.Invites[2].ID)

	t.Logf("Listed %d invites, newest first", len(listResp.Invites))

	// Step 3: A managed resource with no invites lists empty
	listResp, err = manager.ListInvites(t.Context(), "venue:empty-bar")
	require.NoError(t, err)
	require.Empty(t, listResp.Invites)

	// Step 4: Unmanaged resource is refused, missing resource is a bad request
	_, err = manager.ListInvites(t.Context(), "venue:not-mine")
	assertAPIError(t, err, http.StatusForbidden, invitesdk.ErrorCodePermissionDenied,
		"Listing an unmanaged resource should be refused")

	_, err = manager.ListInvites(t.Context(), "")
	assertAPIError(t, err, http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest,
		"Listing without a resource should be rejected")

	t.Logf("List filtering and access control verified")
}
