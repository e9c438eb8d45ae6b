package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		configPath = "config.json5"
		baseUrlFlag = ""
		insecure = false
		cookiesFlag = ""
	})
}

func TestApplyOverrides(t *testing.T) {
	resetFlags(t)

	cfg := Config{
		Username:    "from-file",
		Password:    "file-secret",
		BaseUrl:     "https://frs.example.ir",
		CookiesFile: "file-cookies.txt",
	}
	env := map[string]string{"FRS_PASSWORD": "env-secret"}
	getenv := func(key string) string { return env[key] }

	out := applyOverrides(cfg, getenv)
	require.Equal(t, cfg.Username, out.Username)
	require.Equal(t, "env-secret", out.Password)
	require.Equal(t, cfg.BaseUrl, out.BaseUrl)
	require.False(t, out.Insecure)

	baseUrlFlag = "http://127.0.0.1:8080"
	insecure = true
	cookiesFlag = "flag-cookies.txt"
	env["FRS_USERNAME"] = "env-user"

	out = applyOverrides(cfg, getenv)
	require.Equal(t, "env-user", out.Username)
	require.Equal(t, "http://127.0.0.1:8080", out.BaseUrl)
	require.True(t, out.Insecure)
	require.Equal(t, "flag-cookies.txt", out.CookiesFile)
}

func TestClientOptions(t *testing.T) {
	cfg := Config{
		BaseUrl:           "https://frs.example.ir",
		UserAgent:         "frs-test",
		TimeoutSeconds:    7,
		BypassCloudflare:  true,
		RequestsPerSecond: 1.5,
	}
	opts := cfg.ClientOptions()
	require.Equal(t, 7*time.Second, opts.Timeout)
	require.Equal(t, "frs-test", opts.UserAgent)
	require.True(t, opts.BypassCloudflare)
	require.Equal(t, 1.5, opts.RequestsPerSecond)
	require.Empty(t, opts.Cookies)
}

func TestLoadConfig(t *testing.T) {
	resetFlags(t)
	t.Setenv("FRS_USERNAME", "")
	t.Setenv("FRS_PASSWORD", "")
	t.Setenv("HOME", "/home/student")

	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.json5")
	err := os.WriteFile(configPath, []byte(`{
		// comments are fine
		username: "40212345",
		password: "secret",
		timeout_seconds: 30,
		cookies_file: "~/frs/cookies.txt",
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{password: "local-secret"}`), 0600)
	require.NoError(t, err)

	cfg := loadConfig()
	require.Equal(t, "40212345", cfg.Username)
	require.Equal(t, "local-secret", cfg.Password)
	require.Equal(t, 30, cfg.TimeoutSeconds)
	require.Equal(t, "/home/student/frs/cookies.txt", cfg.CookiesFile)
}

func TestLoadConfigMissingFile(t *testing.T) {
	resetFlags(t)
	t.Setenv("FRS_USERNAME", "env-user")

	configPath = filepath.Join(t.TempDir(), "config.json5")
	cfg := loadConfig()
	require.Equal(t, "env-user", cfg.Username)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"week", "day", "console", "tui", "search", "cookies", "login"} {
		require.True(t, names[name], name)
	}
}
