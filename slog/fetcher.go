// Package slog provides logging decorators for hopcrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hopcrawl"
)

// Ensure LoggingFetcher implements hopcrawl.Fetcher.
var _ hopcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   hopcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next hopcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *hopcrawl.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if page != nil {
			attrs = append(attrs,
				"status", page.StatusCode,
				"bytes", page.Bytes,
				"hash", page.ContentHash,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", hopcrawl.ErrorCode(err), "err", err)
		}
		f.logger.DebugContext(ctx, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
