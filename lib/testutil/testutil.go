package testutil

import (
	"encoding/json"
	"fmt"
	"frsmenu/lib/telemetry"
	"html"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

const (
	AntiForgeryName  = "idsrv.xsrf"
	AntiForgeryToken = "xsrf-token-1"
	SessionCookie    = ".AspNet.Cookies"

	callbackCode = "auth-code-1"
	// contains '&' so that the form has to be unescaped
	callbackState = "s&1"
)

type PortalParams struct {
	Name     string
	Username string
	Password string
	// answer the credential post with the dashboard directly instead of the
	// auto-post form
	SkipForm bool
	// served as JSON by the reservation API
	Week any
}

// Portal fakes the reservation portal: an identity server login page carrying
// modelJson, a credential post answered by an auto-post form, and the
// reservation API behind a session cookie.
type Portal struct {
	params PortalParams
	server *httptest.Server

	lock    sync.Mutex
	queries []string
	origins []string
}

func SetupPortal(t testing.TB, params PortalParams) *Portal {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))
	t.Cleanup(cleanup)

	p := &Portal{params: params}

	r := chi.NewRouter()
	r.Get("/", p.home)
	r.Get("/identity/login", p.loginPage)
	r.Post("/identity/login", p.postCredentials)
	r.Post("/signin-oidc", p.postCallback)
	r.Get("/api/v0/Reservation", p.reservation)

	p.server = httptest.NewServer(r)
	t.Cleanup(p.server.Close)
	return p
}

func (p *Portal) URL() string {
	return p.server.URL
}

// Queries returns the raw query of every reservation API call so far.
func (p *Portal) Queries() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string(nil), p.queries...)
}

// Origins returns the Origin header of every credential post so far.
func (p *Portal) Origins() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string(nil), p.origins...)
}

func (p *Portal) authenticated(r *http.Request) bool {
	c, err := r.Cookie(SessionCookie)
	return err == nil && c.Value == "ok"
}

func (p *Portal) home(w http.ResponseWriter, r *http.Request) {
	if !p.authenticated(r) {
		http.Redirect(w, r, "/identity/login?signin=abc", http.StatusFound)
		return
	}
	fmt.Fprint(w, DashboardHtml)
}

func writeLoginPage(w http.ResponseWriter, errorMessage string) {
	model := map[string]any{
		"loginUrl": "/identity/login?signin=abc",
		"antiForgery": map[string]string{
			"name":  AntiForgeryName,
			"value": AntiForgeryToken,
		},
		"errorMessage": nil,
	}
	if errorMessage != "" {
		model["errorMessage"] = errorMessage
	}
	encoded, _ := json.Marshal(model)
	fmt.Fprintf(
		w,
		`<html><head><title>سامانه رزرو غذا</title></head><body><div class="container"></div><script id="modelJson" type="application/json">%s</script></body></html>`,
		html.EscapeString(string(encoded)),
	)
}

func (p *Portal) loginPage(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: AntiForgeryName, Value: "cookie-half", Path: "/identity"})
	writeLoginPage(w, "")
}

const WrongPasswordMessage = "نام کاربری یا رمز عبور اشتباه است"

func (p *Portal) postCredentials(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	p.origins = append(p.origins, r.Header.Get("Origin"))
	p.lock.Unlock()

	if c, err := r.Cookie(AntiForgeryName); err != nil || c.Value != "cookie-half" {
		http.Error(w, "missing anti forgery cookie", http.StatusBadRequest)
		return
	}
	if r.PostFormValue(AntiForgeryName) != AntiForgeryToken {
		http.Error(w, "bad anti forgery token", http.StatusBadRequest)
		return
	}
	if r.PostFormValue("username") != p.params.Username || r.PostFormValue("password") != p.params.Password {
		writeLoginPage(w, WrongPasswordMessage)
		return
	}

	if p.params.SkipForm {
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "ok", Path: "/"})
		fmt.Fprint(w, DashboardHtml)
		return
	}

	fmt.Fprintf(w, `<html><body>
<form method="POST" action="/signin-oidc">
	<input type="hidden" name="code" value="%s" />
	<input type="hidden" name="state" value="%s" />
	<noscript><button>Click to continue</button></noscript>
</form>
</body></html>`, callbackCode, html.EscapeString(callbackState))
}

func (p *Portal) postCallback(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("code") != callbackCode || r.PostFormValue("state") != callbackState {
		http.Error(w, "bad callback", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "ok", Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (p *Portal) reservation(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	p.queries = append(p.queries, r.URL.RawQuery)
	p.lock.Unlock()

	if !p.authenticated(r) {
		http.Redirect(w, r, "/identity/login?signin=abc", http.StatusFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	week := p.params.Week
	if week == nil {
		week = []any{}
	}
	json.NewEncoder(w).Encode(week)
}

const DashboardHtml = `<html><body>
<nav><a href="/food-reserve">رزرو غذا</a> <a href="/account/logout">خروج</a></nav>
<h1>داشبورد</h1>
</body></html>`
