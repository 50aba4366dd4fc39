package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/hopcrawl"
	lochttp "github.com/fwojciec/hopcrawl/http"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration file read when --config is not given. A missing file is
	// ignored. Set before calling Run().
	ConfigPath string

	// Transport replaces the HTTP transport for end-to-end testing.
	Transport http.RoundTripper
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Transport: m.Transport,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hopcrawl"),
		kong.Description(description),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAML, m.ConfigPath),
		kong.Vars{"user_agent": lochttp.DefaultUserAgent},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided. Run 'hopcrawl --help' for usage")
	}

	// Help never builds the crawler.
	if args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		if verr := validateNegativeHops(args); verr != nil {
			return verr
		}
		return err
	}

	deps.Logger = newLogger(stderr, cli.LogLevel, cli.LogFormat)

	return kongCtx.Run(deps)
}

const description = `Visit a fixed number of pages, following one new link from each page.

Example:
  hopcrawl 5 https://example.com`

// validateNegativeHops reports a leading negative hop count, which kong
// rejects as an unknown short flag, as the budget error it is.
func validateNegativeHops(args []string) error {
	hops, err := strconv.Atoi(args[0])
	if err != nil || hops >= 0 {
		return nil
	}
	req := hopcrawl.Request{Hops: hops}
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		req.SeedURL = args[1]
	}
	return req.Validate()
}

func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "hopcrawl", "config.yaml")
}

// newLogger builds the stderr logger. Level and format are validated by kong.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
