package crawl_test

import (
	"testing"
	"time"

	"github.com/fwojciec/hopcrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	t.Run("pluralizes pages", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Result{
			Visited:  []string{"https://a.com", "https://b.com"},
			Bytes:    2048,
			Duration: 1500 * time.Millisecond,
		}
		assert.Equal(t, "visited 2 pages (2.0 KB) in 1.5s", crawl.FormatSummary(r))
	})

	t.Run("uses singular for one page", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Result{
			Visited:  []string{"https://a.com"},
			Bytes:    10,
			Duration: 20 * time.Millisecond,
		}
		assert.Equal(t, "visited 1 page (10 B) in 20ms", crawl.FormatSummary(r))
	})

	t.Run("mentions skipped addresses", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Result{
			Visited: []string{"https://a.com"},
			Skipped: 2,
		}
		assert.Equal(t, "visited 1 page (0 B) in 0s, skipped 2 unreachable", crawl.FormatSummary(r))
	})
}
