// Package regexp provides a pattern-based implementation of
// hopcrawl.LinkExtractor. It scans raw page text for anchor hrefs without
// building a DOM.
package regexp

import (
	"html"
	"iter"
	"regexp"
	"strings"

	"github.com/fwojciec/hopcrawl"
)

// Ensure Extractor implements hopcrawl.LinkExtractor at compile time.
var _ hopcrawl.LinkExtractor = (*Extractor)(nil)

// anchorHref matches the href of an <a> tag whose value starts with http://
// or https://. The value may be double quoted, single quoted or bare.
// The attribute name must follow whitespace or a closing quote, so
// data-href and similar attributes are not mistaken for href.
var anchorHref = regexp.MustCompile(
	`(?is)<a\b[^>]*?[\s"']href\s*=\s*(?:"\s*(https?://[^"]*)"|'\s*(https?://[^']*)'|(https?://[^\s"'>]+))`,
)

// Extractor finds absolute http(s) links in anchor tags.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Candidates yields link addresses in document order, with HTML entities
// decoded. Matching is done one anchor at a time, so a consumer that stops
// early never scans the rest of the page.
func (e *Extractor) Candidates(page string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := page
		for {
			loc := anchorHref.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			if link := submatch(rest, loc); link != "" {
				if !yield(link) {
					return
				}
			}
			rest = rest[loc[1]:]
		}
	}
}

// submatch returns the first populated capture group of a match.
func submatch(s string, loc []int) string {
	for g := 1; 2*g+1 < len(loc); g++ {
		start, end := loc[2*g], loc[2*g+1]
		if start >= 0 {
			return strings.TrimSpace(html.UnescapeString(s[start:end]))
		}
	}
	return ""
}
