package commands

import (
	"context"
	"errors"
	"frsmenu/internal/console"
	"frsmenu/lib/cookiefile"
	"frsmenu/lib/restyutil"
	"frsmenu/lib/scrapers/frs"
	"frsmenu/lib/serviceutil"
	"log/slog"
	"os"
)

// newClient creates a portal client, seeded from the cookie file when there
// is one.
func newClient(ctx context.Context, cfg Config) *frs.Client {
	if dumpHttp != "" {
		out, err := restyutil.NewFilesystemOutput(dumpHttp)
		if err != nil {
			serviceutil.Fatal("failed to create http dump directory", err)
		}
		frs.SetRestyInstrumentOutput(out)
		slog.Info("dumping http traffic", "dir", out.Directory())
	}

	opts := cfg.ClientOptions()
	if cfg.CookiesFile != "" {
		cookies, err := cookiefile.Read(cfg.CookiesFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("cookie file does not exist yet", "path", cfg.CookiesFile)
		case err != nil:
			slog.Warn("ignoring unreadable cookie file", "path", cfg.CookiesFile, "err", err)
		default:
			opts.Cookies = cookies
		}
	}

	client, err := frs.NewClient(ctx, opts)
	if err != nil {
		serviceutil.Fatal("failed to create portal client", err)
	}
	return client
}

func sessionValid(ctx context.Context, client *frs.Client) bool {
	if len(client.Cookies()) == 0 {
		return false
	}
	ok, err := client.Authenticated(ctx)
	if err != nil {
		slog.Warn("failed to check seeded session", "err", err)
	}
	return ok
}

// stdin is shared by the credential prompt and the console loop.
var stdin = console.NewInput(os.Stdin)

// login reuses the seeded session when it is still valid, otherwise it
// authenticates.
func login(ctx context.Context, client *frs.Client, cfg Config) {
	if sessionValid(ctx, client) {
		slog.Debug("reusing session from cookie file", "path", cfg.CookiesFile)
		return
	}
	authenticate(ctx, client, cfg)
}

// authenticate prompts for missing credentials on the terminal and posts
// them, whatever session the client already holds.
func authenticate(ctx context.Context, client *frs.Client, cfg Config) {
	username, password := cfg.Username, cfg.Password
	if username == "" || password == "" {
		var err error
		username, password, err = console.PromptCredentials(stdin, os.Stderr, username, password)
		if err != nil {
			serviceutil.Fatal("failed to read credentials", err)
		}
	}

	slog.Debug("logging in", "username", username)
	err := client.Login(ctx, username, password)
	if frs.IsLoginFailure(err) {
		serviceutil.Fatal("ورود ناموفق!", err)
	}
	if err != nil {
		serviceutil.Fatal("failed to log in", err)
	}
}

func connect(ctx context.Context) (*frs.Client, Config) {
	cfg := loadConfig()
	client := newClient(ctx, cfg)
	login(ctx, client, cfg)
	return client, cfg
}

func dumpCookies(client *frs.Client, path string) {
	cookies := client.Cookies()
	err := cookiefile.Write(path, cookies)
	if err != nil {
		slog.Error("failed to write cookie file", "path", path, "err", err)
		return
	}
	slog.Info("saved session cookies", "path", path, "count", len(cookies))
}
