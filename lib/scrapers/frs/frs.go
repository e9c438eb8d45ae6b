package frs

import (
	"context"
	"crypto/tls"
	"errors"
	"frsmenu/lib/cookiefile"
	"frsmenu/lib/restyutil"
	"frsmenu/lib/telemetry"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl   = "https://frs.modares.ac.ir"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"
	DefaultTimeout   = 20 * time.Second
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrLoginFailed        = errors.New("login failed: wrong username or password")
	ErrModelJsonNotFound  = errors.New("could not find the login configuration (modelJson) on the login page")
	ErrNotAuthenticated   = errors.New("session is not authenticated")
)

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	jar     *cookiefile.Jar
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultUserAgent
	UserAgent string
	// defaults to DefaultTimeout
	Timeout time.Duration
	// skips TLS certificate verification, the portal has served broken
	// certificate chains before
	Insecure bool
	// wraps the transport with a browser-like TLS fingerprint
	BypassCloudflare bool
	// 0 disables rate limiting
	RequestsPerSecond float64
	// cookies to seed the session with, usually read from a cookie file
	Cookies []*http.Cookie
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, errors.New("base url must be absolute")
	}

	jar, err := cookiefile.NewJar()
	if err != nil {
		return nil, err
	}
	jar.Load(opts.Cookies)

	client := resty.New()
	client.SetBaseURL(baseUrl.String())
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(15))

	if transport, ok := client.GetClient().Transport.(*http.Transport); ok {
		if opts.Insecure {
			if transport.TLSClientConfig == nil {
				transport.TLSClientConfig = &tls.Config{}
			}
			transport.TLSClientConfig.InsecureSkipVerify = true
		}
		if opts.BypassCloudflare {
			client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(transport)
		}
	}

	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 2)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "frsmenu.lib.scrapers.frs/http")
	restyutil.InstrumentClient(client, restyInstrumentOutput)

	slog.DebugContext(
		ctx, "created portal client",
		"base_url", baseUrl.String(),
		"insecure", opts.Insecure,
		"seeded_cookies", len(opts.Cookies),
	)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		jar:     jar,
	}, nil
}

// Cookies returns every cookie the session currently holds, with enough
// attributes to write a cookie file.
func (c *Client) Cookies() []*http.Cookie {
	return c.jar.All()
}

func (c *Client) origin() string {
	return (&url.URL{Scheme: c.BaseUrl.Scheme, Host: c.BaseUrl.Host}).String()
}
