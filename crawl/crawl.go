// Package crawl provides the hop-bounded crawl controller.
// It owns the frontier and the visited set, drives fetching and link
// discovery, and decides when a crawl has succeeded or run out of links.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/hopcrawl"
	"github.com/google/uuid"
)

// State is the state of a crawl.
type State int

const (
	StateRunning State = iota
	StateSucceeded
	StateFailed
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Crawler walks a site one outbound link per page until the hop budget is spent.
type Crawler struct {
	Fetcher   hopcrawl.Fetcher
	Extractor hopcrawl.LinkExtractor

	// Normalizer, if set, canonicalizes the seed and every discovered link.
	Normalizer hopcrawl.Normalizer

	// Logger receives progress records. Nil discards them.
	Logger *slog.Logger

	// NewVisited builds the visited set for a crawl of the given hop count.
	// Defaults to a VisitedSet sized for the budget.
	NewVisited func(hops int) hopcrawl.VisitedSet
}

// Result holds the outcome of a crawl.
type Result struct {
	RunID     string
	State     State
	Visited   []string // in visit order
	Skipped   int      // unreachable addresses dropped without using a hop
	Remaining int      // hops not completed
	Bytes     int
	Duration  time.Duration
}

// Crawl validates req and visits req.Hops pages starting from its seed.
// Nothing is fetched when validation fails.
func (c *Crawler) Crawl(ctx context.Context, req hopcrawl.Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	frontier := NewFrontier()
	frontier.Push(c.seed(req))
	return c.Walk(ctx, frontier, req.Hops)
}

// Walk visits hops pages taken from frontier in order.
//
// Each iteration pops the front of the frontier and fetches it. An
// unreachable page is dropped without using a hop. A fetched page has its
// first eligible link appended to the frontier, is recorded as visited, and
// uses one hop. When the frontier runs dry with hops left, Walk returns an
// EINSUFFICIENTLINKS error together with the partial result.
func (c *Crawler) Walk(ctx context.Context, frontier hopcrawl.URLFrontier, hops int) (*Result, error) {
	if hops <= 0 {
		return nil, hopcrawl.Errorf(hopcrawl.EINVALIDBUDGET, "hops must be greater than 0, got %d", hops)
	}

	begin := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		State:     StateRunning,
		Remaining: hops,
	}
	logger := c.logger().With("run", result.RunID)
	visited := c.newVisited(hops)

	for result.Remaining > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current, ok := frontier.Pop()
		if !ok {
			result.State = StateFailed
			result.Duration = time.Since(begin)
			logger.Error("crawl failed",
				"visited", len(result.Visited),
				"remaining", result.Remaining,
			)
			return result, hopcrawl.Errorf(hopcrawl.EINSUFFICIENTLINKS,
				"not enough valid links to complete %d hops", result.Remaining)
		}

		page, err := c.Fetcher.Fetch(ctx, current)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// The next frontier entry gets this hop.
			result.Skipped++
			logger.Warn("could not connect", "url", current, "err", err)
			continue
		}

		if link, found := c.queueFirstEligible(current, page, frontier, visited); found {
			logger.Debug("queued link", "from", current, "url", link)
		} else {
			logger.Info("no links found", "url", current)
		}

		visited.Add(current)
		result.Visited = append(result.Visited, current)
		result.Bytes += page.Bytes
		result.Remaining--
		logger.Info("just visited",
			"url", current,
			"bytes", page.Bytes,
			"hash", page.ContentHash,
			"remaining", result.Remaining,
		)
	}

	result.State = StateSucceeded
	result.Duration = time.Since(begin)
	logger.Info("crawl finished",
		"visited", len(result.Visited),
		"skipped", result.Skipped,
		"duration", result.Duration,
	)
	return result, nil
}

// queueFirstEligible appends the first eligible candidate on page to the
// frontier and stops reading candidates. A candidate is eligible when it is
// neither visited, queued, nor the page being processed.
func (c *Crawler) queueFirstEligible(current string, page *hopcrawl.Page, frontier hopcrawl.URLFrontier, visited hopcrawl.VisitedSet) (string, bool) {
	for candidate := range c.Extractor.Candidates(page.Body) {
		link, ok := c.resolve(candidate)
		if !ok {
			continue
		}
		if link == current || visited.Contains(link) || frontier.Contains(link) {
			continue
		}
		frontier.Push(link)
		return link, true
	}
	return "", false
}

// resolve turns a raw candidate into the address that will be queued.
// Candidates that are not absolute http(s) URLs are rejected.
func (c *Crawler) resolve(raw string) (string, bool) {
	link := raw
	if c.Normalizer != nil {
		normalized, err := c.Normalizer.Normalize(raw)
		if err != nil {
			return "", false
		}
		link = normalized
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return link, true
}

func (c *Crawler) seed(req hopcrawl.Request) string {
	seed := req.SeedAddress()
	if c.Normalizer == nil {
		return seed
	}
	if normalized, err := c.Normalizer.Normalize(seed); err == nil {
		return normalized
	}
	return seed
}

func (c *Crawler) newVisited(hops int) hopcrawl.VisitedSet {
	if c.NewVisited != nil {
		return c.NewVisited(hops)
	}
	return NewVisitedSet(hops)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
