package restyutil

import (
	"fmt"
	"frsmenu/lib/telemetry"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// formatHeaders renders headers sorted by name with cookie values masked.
func formatHeaders(headers http.Header) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var out strings.Builder
	for _, name := range names {
		for _, value := range headers[name] {
			fmt.Fprintf(&out, "%s: %s\n", name, telemetry.RedactHeader(name, value))
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatRequestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("(unreadable body: %v)", err)
	}
	if body == nil {
		return ""
	}
	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("(unreadable body: %v)", err)
	}
	return telemetry.RedactForm(string(contents))
}

func writeSection(out *strings.Builder, title string, lines ...string) {
	fmt.Fprintf(out, "==== %s ====\n\n", title)
	for _, line := range lines {
		if line == "" {
			continue
		}
		out.WriteString(line)
		out.WriteString("\n\n")
	}
}

func writeRequest(out *strings.Builder, req *resty.Request) {
	var headers string
	if req.RawRequest != nil {
		headers = formatHeaders(req.RawRequest.Header)
	}
	writeSection(
		out, "REQUEST",
		fmt.Sprintf("%s %s", req.Method, req.URL),
		headers,
		formatRequestBody(req.RawRequest),
	)
}

// formatHttpMessage renders a request/response pair. The response url is the
// one after redirects were followed, which is what the login flow resolves
// form actions against.
func formatHttpMessage(res *resty.Response) string {
	var out strings.Builder
	writeRequest(&out, res.Request)

	finalUrl := res.Request.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalUrl = res.RawResponse.Request.URL.String()
	}
	writeSection(
		&out, "RESPONSE",
		fmt.Sprintf("%s %s", res.Status(), finalUrl),
		formatHeaders(res.Header()),
		res.String(),
	)
	return strings.TrimSuffix(out.String(), "\n")
}

func formatFailedRequest(req *resty.Request, err error) string {
	var out strings.Builder
	writeRequest(&out, req)
	writeSection(&out, "ERROR", err.Error())
	return strings.TrimSuffix(out.String(), "\n")
}
