// Package http provides an HTTP-based implementation of hopcrawl.Fetcher.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/hopcrawl"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
)

// Default limits for a single fetch.
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 5 * time.Second
	DefaultMaxBodyBytes   = 10 << 20
	DefaultUserAgent      = "hopcrawl/1.0 (+https://github.com/fwojciec/hopcrawl)"
)

// Ensure Fetcher implements hopcrawl.Fetcher at compile time.
var _ hopcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP GET requests.
type Fetcher struct {
	client *http.Client

	connectTimeout time.Duration
	readTimeout    time.Duration
	maxBodyBytes   int64
	userAgent      string
	proxyURL       string
	transport      http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithConnectTimeout bounds dialing and the TLS handshake.
// Defaults to DefaultConnectTimeout (5s) if not specified.
func WithConnectTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.connectTimeout = d
	}
}

// WithReadTimeout bounds the wait for response headers and every pause
// while reading the body.
// Defaults to DefaultReadTimeout (5s) if not specified.
func WithReadTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.readTimeout = d
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
// Longer bodies are truncated.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithProxy routes requests through a proxy. Supported schemes are http,
// https, socks5 and socks5h (e.g. "socks5://127.0.0.1:9050" for Tor).
func WithProxy(rawURL string) Option {
	return func(f *Fetcher) {
		f.proxyURL = rawURL
	}
}

// WithTransport replaces the underlying round tripper. Timeouts that live
// on the transport and WithProxy are ignored when set.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
// It returns an error if a timeout or the body limit is not positive, or if
// the proxy URL is invalid.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
		maxBodyBytes:   DefaultMaxBodyBytes,
		userAgent:      DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.connectTimeout <= 0 {
		return nil, fmt.Errorf("connect timeout must be positive, got %s", f.connectTimeout)
	}
	if f.readTimeout <= 0 {
		return nil, fmt.Errorf("read timeout must be positive, got %s", f.readTimeout)
	}
	if f.maxBodyBytes <= 0 {
		return nil, fmt.Errorf("max body bytes must be positive, got %d", f.maxBodyBytes)
	}

	transport := f.transport
	if transport == nil {
		t, err := f.newTransport()
		if err != nil {
			return nil, err
		}
		transport = t
	}

	f.client = &http.Client{Transport: transport}
	return f, nil
}

func (f *Fetcher) newTransport() (*http.Transport, error) {
	dialer := &net.Dialer{Timeout: f.connectTimeout}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = dialer.DialContext
	t.TLSHandshakeTimeout = f.connectTimeout
	t.ResponseHeaderTimeout = f.readTimeout
	t.Proxy = nil

	if f.proxyURL == "" {
		return t, nil
	}

	u, err := url.Parse(f.proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url %q: %w", f.proxyURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		t.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		d, err := proxy.FromURL(u, dialer)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", f.proxyURL, err)
		}
		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("proxy %q does not support dialing with a context", f.proxyURL)
		}
		t.DialContext = cd.DialContext
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	return t, nil
}

// Fetch retrieves the page at rawURL. Transport failures, non-2xx responses
// and body read failures are reported as EUNREACHABLE. If ctx is canceled
// its error is returned as is.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*hopcrawl.Page, error) {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, unreachable(rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, unreachable(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, hopcrawl.Errorf(hopcrawl.EUNREACHABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	// The request is canceled if the body stalls for longer than readTimeout.
	timer := time.AfterFunc(f.readTimeout, cancel)
	defer timer.Stop()
	raw, err := io.ReadAll(&idleReader{
		r:       io.LimitReader(resp.Body, f.maxBodyBytes),
		timer:   timer,
		timeout: f.readTimeout,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, unreachable(rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	body := stripLineBreaks(decode(raw, contentType))

	return &hopcrawl.Page{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
		Bytes:       len(raw),
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(body)),
	}, nil
}

// Close releases idle connections held by the underlying client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

func unreachable(rawURL string, err error) error {
	return hopcrawl.Errorf(hopcrawl.EUNREACHABLE, "could not connect to %s: %v", rawURL, err)
}

// decode converts raw to UTF-8 using the declared or sniffed charset.
// Undecodable input is returned unchanged.
func decode(raw []byte, contentType string) string {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return string(raw)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

func stripLineBreaks(s string) string {
	return lineBreaks.Replace(s)
}

// idleReader pushes back a deadline timer on every successful read.
type idleReader struct {
	r       io.Reader
	timer   *time.Timer
	timeout time.Duration
}

func (ir *idleReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	if n > 0 {
		ir.timer.Reset(ir.timeout)
	}
	return n, err
}
