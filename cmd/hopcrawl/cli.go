package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hopcrawl"
	"github.com/fwojciec/hopcrawl/crawl"
	lochttp "github.com/fwojciec/hopcrawl/http"
	locpurell "github.com/fwojciec/hopcrawl/purell"
	locregexp "github.com/fwojciec/hopcrawl/regexp"
	locslog "github.com/fwojciec/hopcrawl/slog"
)

// Dependencies holds the runtime collaborators bound into CLI.Run.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Transport http.RoundTripper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Hops int    `arg:"" help:"Number of pages to visit"`
	URL  string `arg:"" optional:"" help:"Address to start from"`

	ConnectTimeout time.Duration   `default:"5s" help:"Time allowed to establish a connection"`
	ReadTimeout    time.Duration   `default:"5s" help:"Time allowed between reads of a response"`
	Proxy          string          `help:"Proxy URL (http, https, socks5 or socks5h)"`
	UserAgent      string          `default:"${user_agent}" help:"User-Agent header"`
	Normalize      bool            `help:"Normalize discovered links before deduplication"`
	LogLevel       string          `enum:"debug,info,warn,error" default:"info" help:"Log level (${enum})"`
	LogFormat      string          `enum:"text,json" default:"text" help:"Log format (${enum})"`
	Config         kong.ConfigFlag `help:"YAML configuration file"`
}

// Run crawls from the seed and prints a summary when the hop budget is spent.
func (c *CLI) Run(deps *Dependencies) error {
	req := hopcrawl.Request{Hops: c.Hops, SeedURL: c.URL}
	if err := req.Validate(); err != nil {
		return err
	}

	opts := []lochttp.Option{
		lochttp.WithConnectTimeout(c.ConnectTimeout),
		lochttp.WithReadTimeout(c.ReadTimeout),
		lochttp.WithUserAgent(c.UserAgent),
	}
	if c.Proxy != "" {
		opts = append(opts, lochttp.WithProxy(c.Proxy))
	}
	if deps.Transport != nil {
		opts = append(opts, lochttp.WithTransport(deps.Transport))
	}
	fetcher, err := lochttp.NewFetcher(opts...)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:   locslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor: locregexp.NewExtractor(),
		Logger:    deps.Logger,
	}
	if c.Normalize {
		crawler.Normalizer = locpurell.NewNormalizer()
	}

	result, err := crawler.Crawl(deps.Ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, crawl.FormatSummary(result))
	return nil
}
