// Package cookiefile reads and writes Netscape cookie files (the cookies.txt
// format curl and wget understand) and provides a cookie jar that remembers
// the attributes needed to write one.
package cookiefile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
)

const header = "# Netscape HTTP Cookie File"

// Cookies are expected in the shape Jar.All returns them: Domain with a
// leading dot for domain cookies, without one for host-only cookies.
func Encode(w io.Writer, cookies []*http.Cookie) error {
	_, err := fmt.Fprintln(w, header)
	if err != nil {
		return err
	}
	for _, c := range cookies {
		includeSubdomains := "FALSE"
		if strings.HasPrefix(c.Domain, ".") {
			includeSubdomains = "TRUE"
		}
		secure := "FALSE"
		if c.Secure {
			secure = "TRUE"
		}
		expires := "0"
		if !c.Expires.IsZero() {
			expires = strconv.FormatInt(c.Expires.Unix(), 10)
		}
		path := c.Path
		if path == "" {
			path = "/"
		}

		_, err = fmt.Fprintf(
			w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Domain, includeSubdomains, path, secure, expires, c.Name, c.Value,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Write dumps cookies to path atomically with mode 0600.
func Write(path string, cookies []*http.Cookie) error {
	var buf bytes.Buffer
	err := Encode(&buf, cookies)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, buf.Bytes(), 0600)
}

// curl marks HttpOnly cookies with this prefix on the domain column.
const httpOnlyPrefix = "#HttpOnly_"

func Decode(r io.Reader) ([]*http.Cookie, error) {
	var cookies []*http.Cookie

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return nil, fmt.Errorf("line %d: expected 7 tab separated fields, got %d", lineNo, len(fields))
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid expiry: %w", lineNo, err)
		}

		domain := fields[0]
		if fields[1] == "TRUE" && !strings.HasPrefix(domain, ".") {
			domain = "." + domain
		}

		cookie := &http.Cookie{
			Domain:   domain,
			Path:     fields[2],
			Secure:   fields[3] == "TRUE",
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if expires > 0 {
			cookie.Expires = time.Unix(expires, 0)
		}
		cookies = append(cookies, cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cookies, nil
}

func Read(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
