package commands

import (
	"errors"
	"frsmenu/lib/configutil"
	"frsmenu/lib/osutil"
	"frsmenu/lib/scrapers/frs"
	"frsmenu/lib/serviceutil"
	"log/slog"
	"os"
	"time"
)

const defaultCookiesFile = "cookies.txt"

type Config struct {
	Username          string  `json:"username"`
	Password          string  `json:"password"`
	BaseUrl           string  `json:"base_url"`
	UserAgent         string  `json:"user_agent"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	Insecure          bool    `json:"insecure"`
	BypassCloudflare  bool    `json:"bypass_cloudflare"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CookiesFile       string  `json:"cookies_file"`
}

func (c Config) ClientOptions() frs.ClientOptions {
	return frs.ClientOptions{
		BaseUrl:           c.BaseUrl,
		UserAgent:         c.UserAgent,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		Insecure:          c.Insecure,
		BypassCloudflare:  c.BypassCloudflare,
		RequestsPerSecond: c.RequestsPerSecond,
	}
}

// applyOverrides layers flags and then the environment on top of the config
// file.
func applyOverrides(cfg Config, getenv func(string) string) Config {
	if baseUrlFlag != "" {
		cfg.BaseUrl = baseUrlFlag
	}
	if insecure {
		cfg.Insecure = true
	}
	if cookiesFlag != "" {
		cfg.CookiesFile = cookiesFlag
	}

	if username := getenv("FRS_USERNAME"); username != "" {
		cfg.Username = username
	}
	if password := getenv("FRS_PASSWORD"); password != "" {
		cfg.Password = password
	}
	return cfg
}

// loadConfig reads the config file, which is optional.
func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config](configPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using flags and environment", "path", configPath)
		err = nil
	}
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	cfg = applyOverrides(cfg, os.Getenv)
	if cfg.CookiesFile != "" {
		cfg.CookiesFile, err = osutil.ExpandHome(cfg.CookiesFile)
		if err != nil {
			serviceutil.Fatal("failed to resolve cookie file path", err)
		}
	}
	return cfg
}
