package invite_test

import (
	"testing"

	"github.com/aussiebroadwan/housekey/pkg/invitesdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint works without auth.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Version, "Version should be reported")
	require.NotEmpty(t, health.Uptime, "Uptime should be reported")

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies the readiness check reports its dependency checks.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupInviteContainer(t)
	defer cleanup()

	client := invitesdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)

	require.NotNil(t, health.Checks, "Readiness should include dependency checks")
	require.Equal(t, "ok", health.Checks.Database, "Database should be reachable")
	require.Equal(t, "ok", health.Checks.Verifier, "Verifier should hold at least one key")

	t.Logf("Readyz endpoint is healthy")
	t.Logf("Database: %s, Verifier: %s", health.Checks.Database, health.Checks.Verifier)
}
