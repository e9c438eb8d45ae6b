package frs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"frsmenu/lib/htmlutil"
	"frsmenu/lib/restyutil"
	"frsmenu/lib/textutil"
	"html"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// the anti-forgery field name IdentityServer uses when the page omits it
const defaultAntiForgeryName = "idsrv.xsrf"

// SuccessKeywords are looked for (case-insensitively) in the page the login
// flow lands on. Any of them means the dashboard was reached.
var SuccessKeywords = []string{
	"خروج",
	"رزرو غذا",
	"داشبورد",
	"خوش آمدید",
	"food-reserve",
	"logout",
}

type AntiForgery struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoginModel is the JSON the identity server embeds in
// <script id="modelJson" type="application/json"> on its login page.
type LoginModel struct {
	LoginUrl     string      `json:"loginUrl"`
	AntiForgery  AntiForgery `json:"antiForgery"`
	ErrorMessage string      `json:"errorMessage"`
}

func parseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// ParseLoginModel extracts the login configuration from the login page.
func ParseLoginModel(body []byte) (LoginModel, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return LoginModel{}, err
	}
	return loginModelFromDocument(doc)
}

func loginModelFromDocument(doc *goquery.Document) (LoginModel, error) {
	script := doc.Find("script#modelJson")
	if script.Length() == 0 {
		return LoginModel{}, ErrModelJsonNotFound
	}

	// script contents are raw text, the server still html-escapes the JSON
	raw := strings.TrimSpace(htmlutil.GetText(script.Nodes[0]))
	raw = html.UnescapeString(raw)

	var model LoginModel
	err := json.Unmarshal([]byte(raw), &model)
	if err != nil {
		return LoginModel{}, fmt.Errorf("decode modelJson: %w", err)
	}
	if model.AntiForgery.Name == "" {
		model.AntiForgery.Name = defaultAntiForgeryName
	}
	return model, nil
}

// Form is an auto-submitting form, as returned by the identity server after
// a successful credential post (the SAML-like hand-off back to the portal).
type Form struct {
	Action string
	Fields url.Values
}

// ParseRedirectForm returns the first form on the page that has an action,
// with all of its hidden fields. The boolean is false when there is no such
// form.
func ParseRedirectForm(body []byte) (Form, bool, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return Form{}, false, err
	}
	form, ok := redirectFormFromDocument(doc)
	return form, ok, nil
}

func redirectFormFromDocument(doc *goquery.Document) (Form, bool) {
	form := doc.Find("form[action]").First()
	if form.Length() == 0 {
		return Form{}, false
	}
	action := strings.TrimSpace(form.AttrOr("action", ""))
	if action == "" {
		return Form{}, false
	}
	return Form{
		Action: action,
		Fields: htmlutil.HiddenFields(form),
	}, true
}

// LooksLoggedIn is the success heuristic of the login flow.
func LooksLoggedIn(body string) bool {
	return textutil.ContainsAny(body, SuccessKeywords)
}

// Login runs the full login sequence. On success the session cookies are
// held by the client.
//
//  1. GET / (redirects to the identity server) and read modelJson
//  2. POST the credentials with the anti-forgery token to loginUrl
//  3. POST the hidden fields of the returned form back to the portal
//  4. look for dashboard keywords on the final page
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	if username == "" || password == "" {
		span.SetStatus(codes.Error, ErrMissingCredentials.Error())
		return ErrMissingCredentials
	}

	res, err := c.Http.R().
		SetContext(restyutil.WithStep(ctx, "login-page")).
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		return fmt.Errorf("fetch login page: %w", err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "login page returned an error status")
		return fmt.Errorf("fetch login page: %s", res.Status())
	}

	model, err := ParseLoginModel(res.Body())
	if errors.Is(err, ErrModelJsonNotFound) && LooksLoggedIn(res.String()) {
		// seeded cookies were still valid, the portal skipped the login page
		slog.DebugContext(ctx, "session already authenticated")
		return nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse login page")
		return err
	}
	if model.LoginUrl == "" {
		span.SetStatus(codes.Error, "empty login url")
		return fmt.Errorf("modelJson has no loginUrl")
	}
	loginUrl, err := c.BaseUrl.Parse(model.LoginUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid login url")
		return fmt.Errorf("parse login url: %w", err)
	}
	span.SetAttributes(attribute.String("frs.login_url", loginUrl.String()))

	res, err = c.Http.R().
		SetContext(restyutil.WithStep(ctx, "login-credentials")).
		SetHeader("Origin", c.origin()).
		SetHeader("Referer", c.origin()+"/").
		SetFormData(map[string]string{
			"username":             username,
			"password":             password,
			model.AntiForgery.Name: model.AntiForgery.Value,
		}).
		Post(loginUrl.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to post credentials")
		return fmt.Errorf("post credentials: %w", err)
	}

	doc, err := parseDocument(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse credential response")
		return err
	}

	// still on the login page, the identity server rejected the credentials
	if rejected, err := loginModelFromDocument(doc); err == nil {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		message := htmlutil.CleanText(rejected.ErrorMessage)
		if message != "" {
			return fmt.Errorf("%w: %s", ErrLoginFailed, message)
		}
		return ErrLoginFailed
	}

	form, ok := redirectFormFromDocument(doc)
	if !ok {
		slog.DebugContext(ctx, "no redirect form after credential post, checking page directly")
		if LooksLoggedIn(res.String()) {
			return nil
		}
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return ErrLoginFailed
	}

	responseUrl := loginUrl
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		responseUrl = res.RawResponse.Request.URL
	}
	action, err := responseUrl.Parse(form.Action)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid form action")
		return fmt.Errorf("parse form action: %w", err)
	}
	span.SetAttributes(
		attribute.String("frs.form_action", action.String()),
		attribute.Int("frs.form_fields", len(form.Fields)),
	)

	res, err = c.Http.R().
		SetContext(restyutil.WithStep(ctx, "login-form")).
		SetHeader("Origin", c.origin()).
		SetHeader("Referer", action.String()).
		SetFormDataFromValues(form.Fields).
		Post(action.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit redirect form")
		return fmt.Errorf("submit redirect form: %w", err)
	}

	if !LooksLoggedIn(res.String()) {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return ErrLoginFailed
	}

	slog.DebugContext(ctx, "logged in", "cookies", len(c.jar.All()))
	return nil
}

// IsLoginFailure reports whether err means the credentials were rejected, as
// opposed to a network or parsing problem.
func IsLoginFailure(err error) bool {
	return errors.Is(err, ErrLoginFailed) || errors.Is(err, ErrMissingCredentials)
}

// Authenticated reports whether the cookies the client holds still belong to
// a logged in session.
func (c *Client) Authenticated(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:Authenticated")
	defer span.End()

	res, err := c.Http.R().
		SetContext(restyutil.WithStep(ctx, "session-check")).
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch portal")
		return false, err
	}
	if res.IsError() {
		return false, nil
	}

	doc, err := parseDocument(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse portal page")
		return false, err
	}
	if doc.Find("script#modelJson").Length() > 0 {
		return false, nil
	}
	return LooksLoggedIn(res.String()), nil
}
