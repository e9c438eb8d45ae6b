package cookiefile

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

type entryKey struct {
	domain string
	path   string
	name   string
}

// Jar is a cookiejar.Jar that also keeps a copy of every cookie it accepts
// with its domain, path, secure flag and expiry. The standard jar only hands
// back name/value pairs, which is not enough to write a cookie file.
type Jar struct {
	inner *cookiejar.Jar

	lock    sync.Mutex
	entries map[entryKey]*http.Cookie
	now     func() time.Time
}

var _ http.CookieJar = (*Jar)(nil)

func NewJar() (*Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Jar{
		inner:   inner,
		entries: map[entryKey]*http.Cookie{},
		now:     time.Now,
	}, nil
}

func defaultPath(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" || !strings.HasPrefix(path, "/") {
		return "/"
	}
	i := strings.LastIndex(path, "/")
	if i == 0 {
		return "/"
	}
	return path[:i]
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	j.lock.Lock()
	defer j.lock.Unlock()

	now := j.now()
	for _, c := range cookies {
		stored := *c
		if stored.Domain == "" {
			stored.Domain = u.Hostname()
		} else {
			stored.Domain = "." + strings.TrimPrefix(stored.Domain, ".")
		}
		if stored.Path == "" || !strings.HasPrefix(stored.Path, "/") {
			stored.Path = defaultPath(u)
		}
		if stored.MaxAge > 0 {
			stored.Expires = now.Add(time.Duration(stored.MaxAge) * time.Second)
		}

		key := entryKey{domain: stored.Domain, path: stored.Path, name: stored.Name}
		expired := stored.MaxAge < 0 || (!stored.Expires.IsZero() && !stored.Expires.After(now))
		if expired {
			delete(j.entries, key)
			continue
		}
		stored.MaxAge = 0
		stored.Raw = ""
		stored.Unparsed = nil
		j.entries[key] = &stored
	}
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// All returns every live cookie the jar holds, sorted by domain, path and
// name.
func (j *Jar) All() []*http.Cookie {
	j.lock.Lock()
	defer j.lock.Unlock()

	now := j.now()
	out := make([]*http.Cookie, 0, len(j.entries))
	for key, c := range j.entries {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			delete(j.entries, key)
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Domain != out[b].Domain {
			return out[a].Domain < out[b].Domain
		}
		if out[a].Path != out[b].Path {
			return out[a].Path < out[b].Path
		}
		return out[a].Name < out[b].Name
	})
	return out
}

// Load seeds the jar with cookies read from a cookie file.
func (j *Jar) Load(cookies []*http.Cookie) {
	for _, c := range cookies {
		host := strings.TrimPrefix(c.Domain, ".")
		if host == "" {
			continue
		}
		scheme := "http"
		if c.Secure {
			scheme = "https"
		}
		u := &url.URL{Scheme: scheme, Host: host, Path: c.Path}

		seeded := *c
		if !strings.HasPrefix(c.Domain, ".") {
			// host-only
			seeded.Domain = ""
		}
		j.SetCookies(u, []*http.Cookie{&seeded})
	}
}
