package crawl

import (
	"fmt"
	"time"
)

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatSummary renders a one-line summary of a finished crawl.
func FormatSummary(r *Result) string {
	pages := "pages"
	if len(r.Visited) == 1 {
		pages = "page"
	}
	s := fmt.Sprintf("visited %d %s (%s) in %s", len(r.Visited), pages, FormatBytes(r.Bytes), r.Duration.Round(time.Millisecond))
	if r.Skipped > 0 {
		s += fmt.Sprintf(", skipped %d unreachable", r.Skipped)
	}
	return s
}
