package telemetry

import (
	"net/http"
	"net/url"
	"strings"
)

const redacted = "***"

// form fields that carry secrets
var redactedFields = map[string]bool{
	"password": true,
}

// RedactForm masks sensitive values of a form-urlencoded body. Bodies that
// do not parse as a form are returned as is.
func RedactForm(body string) string {
	values, err := url.ParseQuery(body)
	if err != nil || len(values) == 0 {
		return body
	}
	changed := false
	for key := range values {
		if redactedFields[key] {
			values.Set(key, redacted)
			changed = true
		}
	}
	if !changed {
		return body
	}
	return values.Encode()
}

// RedactHeader masks cookie values, keeping cookie names and attributes so
// that dumps still show which cookies went back and forth.
func RedactHeader(name, value string) string {
	switch http.CanonicalHeaderKey(name) {
	case "Cookie":
		parts := strings.Split(value, ";")
		for i, part := range parts {
			parts[i] = maskPair(part)
		}
		return strings.Join(parts, ";")
	case "Set-Cookie":
		pair, attributes, found := strings.Cut(value, ";")
		masked := maskPair(pair)
		if found {
			masked += ";" + attributes
		}
		return masked
	case "Authorization":
		return redacted
	}
	return value
}

func maskPair(pair string) string {
	key, _, found := strings.Cut(pair, "=")
	if !found {
		return pair
	}
	return key + "=" + redacted
}
