package restyutil

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	lock     sync.Mutex
	messages map[string]string
}

func (m *memoryOutput) Write(id, contents string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.messages[id] = contents
}

func withDebugLogging(t *testing.T) {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestInstrumentClientWritesMessages(t *testing.T) {
	withDebugLogging(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Portal", "frs")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, out)

	_, err := client.R().
		SetContext(WithStep(context.Background(), "login-credentials")).
		SetHeader("Cookie", "idsrv.xsrf=secret-half").
		SetFormData(map[string]string{"username": "u", "password": "p"}).
		Post(srv.URL + "/login")
	require.NoError(t, err)

	_, err = client.R().Get(srv.URL + "/")
	require.NoError(t, err)

	require.Len(t, out.messages, 2)
	msg := out.messages["001-login-credentials"]
	require.Contains(t, msg, "==== REQUEST ====")
	require.Contains(t, msg, "POST "+srv.URL+"/login")
	require.Contains(t, msg, "X-Portal: frs")
	require.Contains(t, msg, "200 OK "+srv.URL+"/login")
	require.Contains(t, msg, "<html>ok</html>")
	require.NotContains(t, msg, "password=p")
	require.Contains(t, msg, "password="+url.QueryEscape("***"))
	require.Contains(t, msg, "Cookie: idsrv.xsrf=***")
	require.NotContains(t, msg, "secret-half")

	require.Contains(t, out.messages, "002-request")
}

func TestInstrumentClientWritesFailures(t *testing.T) {
	withDebugLogging(t)

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, out)

	_, err := client.R().
		SetContext(WithStep(context.Background(), "menu")).
		Get("http://127.0.0.1:1/api/v0/Reservation")
	require.Error(t, err)

	msg := out.messages["001-menu"]
	require.Contains(t, msg, "==== ERROR ====")
	require.Contains(t, msg, "GET http://127.0.0.1:1/api/v0/Reservation")
}

func TestInstrumentClientSkipsWithoutDebug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, out)

	_, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	require.Empty(t, out.messages)
}

func TestInstrumentClientNilOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, nil)
}

func TestFilesystemOutput(t *testing.T) {
	out, err := NewFilesystemOutput(t.TempDir())
	require.NoError(t, err)

	out.Write("007-login-page", "contents")
	written, err := os.ReadFile(filepath.Join(out.Directory(), "007-login-page.txt"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(written))
}

func TestFormatHeadersSorted(t *testing.T) {
	rendered := formatHeaders(http.Header{
		"B": {"2"},
		"A": {"1", "3"},
	})
	require.Equal(t, "A: 1\nA: 3\nB: 2", rendered)

	require.Equal(t, "Set-Cookie: a=***; path=/", formatHeaders(http.Header{
		"Set-Cookie": {"a=1; path=/"},
	}))
	require.False(t, strings.HasSuffix(rendered, "\n"))
}

func TestFormatRequestBodyWithoutReader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://frs.modares.ac.ir/api/v0/Reservation", nil)
	require.NoError(t, err)
	require.Equal(t, "", formatRequestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.NotPanics(t, func() {
		require.Equal(t, "", formatRequestBody(req))
	})
}
