package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/hopcrawl"
	main "github.com/fwojciec/hopcrawl/cmd/hopcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMain returns a Main that never reads the user's configuration file.
func newMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	return m
}

// redirect sends every request to target regardless of the requested host.
type redirect struct {
	target *url.URL
}

func (r *redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

// site records the requests it serves.
type site struct {
	mu     sync.Mutex
	paths  []string
	agents []string
}

func (s *site) requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

func (s *site) seen() (paths, agents []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...), append([]string(nil), s.agents...)
}

// serveSite starts a server answering with pages keyed by path and returns a
// transport routing all requests to it. Unknown paths return 404.
func serveSite(t *testing.T, pages map[string]string) (http.RoundTripper, *site) {
	t.Helper()
	rec := &site{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.paths = append(rec.paths, r.URL.Path)
		rec.agents = append(rec.agents, r.UserAgent())
		rec.mu.Unlock()

		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return &redirect{target: target}, rec
}

func chain() map[string]string {
	return map[string]string{
		"/":  `<html><a href="http://example.com/a">a</a></html>`,
		"/a": `<html><a href="http://example.com/b">b</a></html>`,
		"/b": `<html>end</html>`,
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"--help", "-h"} {
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := newMain(t).Run(context.Background(), []string{flag}, stdout, stderr)

			require.NoError(t, err)
			help := stdout.String()
			assert.Contains(t, help, "hopcrawl")
			assert.Contains(t, help, "<hops>")
			assert.Contains(t, help, "--read-timeout")
			assert.Contains(t, help, "hopcrawl 5 https://example.com")
		})
	}
}

func TestMain_Run_HelpDoesNotCrawl(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	transport, rec := serveSite(t, chain())
	m.Transport = transport

	err := m.Run(context.Background(), []string{"--help", "2", "example.com"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Zero(t, rec.requests())
}

func TestMain_Run_NoArguments(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := newMain(t).Run(context.Background(), nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hopcrawl --help")
	assert.Contains(t, stdout.String(), "<hops>")
}

func TestMain_Run_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"malformed address", []string{"3", "not a url"}, hopcrawl.EINVALIDADDRESS},
		{"zero hops", []string{"0", "example.com"}, hopcrawl.EINVALIDBUDGET},
		{"missing address", []string{"3"}, hopcrawl.EMISSINGINPUT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMain(t)
			transport, rec := serveSite(t, chain())
			m.Transport = transport
			stdout := &bytes.Buffer{}

			err := m.Run(context.Background(), tt.args, stdout, &bytes.Buffer{})

			require.Error(t, err)
			assert.Equal(t, tt.code, hopcrawl.ErrorCode(err))
			assert.Empty(t, stdout.String())
			assert.Zero(t, rec.requests())
		})
	}
}

func TestMain_Run_NegativeHops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"leading negative", []string{"-2", "example.com"}, hopcrawl.EINVALIDBUDGET},
		{"after separator", []string{"--", "-2", "example.com"}, hopcrawl.EINVALIDBUDGET},
		{"negative without address", []string{"-2"}, hopcrawl.EMISSINGINPUT},
		{"negative followed by flag", []string{"-2", "--normalize"}, hopcrawl.EMISSINGINPUT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMain(t)
			transport, rec := serveSite(t, chain())
			m.Transport = transport

			err := m.Run(context.Background(), tt.args, &bytes.Buffer{}, &bytes.Buffer{})

			require.Error(t, err)
			assert.Equal(t, tt.code, hopcrawl.ErrorCode(err))
			assert.Zero(t, rec.requests())
		})
	}
}

func TestMain_Run_UnknownFlagKeepsParserError(t *testing.T) {
	t.Parallel()

	err := newMain(t).Run(context.Background(), []string{"3", "example.com", "--bogus"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--bogus")
}

func TestMain_Run_NonPositiveTimeout(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	transport, rec := serveSite(t, chain())
	m.Transport = transport

	err := m.Run(context.Background(), []string{"1", "example.com", "--read-timeout", "0s"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read timeout must be positive")
	assert.Zero(t, rec.requests())
}

func TestMain_Run_InvalidHops(t *testing.T) {
	t.Parallel()

	err := newMain(t).Run(context.Background(), []string{"many", "example.com"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}

func TestMain_Run_UnsupportedProxy(t *testing.T) {
	t.Parallel()

	err := newMain(t).Run(context.Background(), []string{"1", "example.com", "--proxy", "ftp://127.0.0.1:21"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported proxy scheme")
}

func TestMain_Run_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("prints summary after visiting every hop", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Transport, _ = serveSite(t, chain())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"3", "example.com"}, stdout, stderr)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout.String(), "visited 3 pages"), stdout.String())
		assert.Equal(t, 3, strings.Count(stderr.String(), `msg="just visited"`))
		assert.Contains(t, stderr.String(), `msg="crawl finished"`)
	})

	t.Run("fails with insufficient links and prints no summary", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Transport, _ = serveSite(t, chain())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"5", "example.com"}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, hopcrawl.EINSUFFICIENTLINKS, hopcrawl.ErrorCode(err))
		assert.Contains(t, err.Error(), "not enough valid links to complete 2 hops")
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "level=ERROR")
	})

	t.Run("unreachable seed fails without consuming the hop", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Transport, _ = serveSite(t, map[string]string{})
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"1", "example.com"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, hopcrawl.EINSUFFICIENTLINKS, hopcrawl.ErrorCode(err))
		assert.Contains(t, err.Error(), "complete 1 hops")
		assert.Contains(t, stderr.String(), `msg="could not connect"`)
	})

	t.Run("debug level logs fetches", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Transport, _ = serveSite(t, chain())
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"1", "example.com", "--log-level", "debug"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=fetch")
	})

	t.Run("json log format", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Transport, _ = serveSite(t, chain())
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"1", "example.com", "--log-format", "json"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), `"msg":"just visited"`)
	})

	t.Run("normalize queues canonical links", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"/":    `<a href="HTTP://EXAMPLE.COM/a/./b#top">next</a>`,
			"/a/b": `<html>end</html>`,
		}
		m := newMain(t)
		transport, rec := serveSite(t, pages)
		m.Transport = transport

		err := m.Run(context.Background(), []string{"2", "example.com", "--normalize"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		paths, _ := rec.seen()
		assert.Equal(t, []string{"/", "/a/b"}, paths)
	})
}

func TestMain_Run_Config(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("default path", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPath = writeConfig(t, "user_agent: from-config\n")
		transport, rec := serveSite(t, chain())
		m.Transport = transport

		err := m.Run(context.Background(), []string{"1", "example.com"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		_, agents := rec.seen()
		assert.Equal(t, []string{"from-config"}, agents)
	})

	t.Run("config flag", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "log-level: debug\n")
		m := newMain(t)
		m.Transport, _ = serveSite(t, chain())
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"1", "example.com", "--config", path}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "level=DEBUG")
	})

	t.Run("flags override the file", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPath = writeConfig(t, "user_agent: from-config\n")
		transport, rec := serveSite(t, chain())
		m.Transport = transport

		err := m.Run(context.Background(), []string{"1", "example.com", "--user-agent", "from-flag"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		_, agents := rec.seen()
		assert.Equal(t, []string{"from-flag"}, agents)
	})
}
