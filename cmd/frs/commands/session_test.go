package commands

import (
	"context"
	"frsmenu/lib/cookiefile"
	"frsmenu/lib/testutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionReusedFromCookieFile(t *testing.T) {
	portal := testutil.SetupPortal(t, testutil.PortalParams{
		Name:     "frs-cli",
		Username: "40212345",
		Password: "secret",
	})
	ctx := context.Background()
	cookies := filepath.Join(t.TempDir(), "cookies.txt")

	cfg := Config{
		Username:    "40212345",
		Password:    "secret",
		BaseUrl:     portal.URL(),
		CookiesFile: cookies,
	}

	client := newClient(ctx, cfg)
	require.False(t, sessionValid(ctx, client))
	login(ctx, client, cfg)
	require.Len(t, portal.Origins(), 1)
	dumpCookies(client, cookies)
	client.Http.GetClient().CloseIdleConnections()

	saved, err := cookiefile.Read(cookies)
	require.NoError(t, err)
	require.NotEmpty(t, saved)

	// no credentials this time, the cookie file has to be enough
	cfg.Username, cfg.Password = "", ""
	reused := newClient(ctx, cfg)
	defer reused.Http.GetClient().CloseIdleConnections()
	require.True(t, sessionValid(ctx, reused))
	login(ctx, reused, cfg)
	require.Len(t, portal.Origins(), 1)

	days, err := reused.WeekMenu(ctx, "", 0)
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestCheckCredentialsIgnoresCookieFile(t *testing.T) {
	portal := testutil.SetupPortal(t, testutil.PortalParams{
		Name:     "frs-cli",
		Username: "40212345",
		Password: "secret",
	})
	ctx := context.Background()
	cookies := filepath.Join(t.TempDir(), "cookies.txt")

	cfg := Config{
		Username:    "40212345",
		Password:    "secret",
		BaseUrl:     portal.URL(),
		CookiesFile: cookies,
	}

	client := checkCredentials(ctx, cfg)
	dumpCookies(client, cookies)
	client.Http.GetClient().CloseIdleConnections()
	require.Len(t, portal.Origins(), 1)

	seeded := newClient(ctx, cfg)
	defer seeded.Http.GetClient().CloseIdleConnections()
	require.True(t, sessionValid(ctx, seeded))

	// credentials are posted again even though the cookie file is valid
	checked := checkCredentials(ctx, cfg)
	defer checked.Http.GetClient().CloseIdleConnections()
	require.Len(t, portal.Origins(), 2)
}
