package hopcrawl

import "iter"

// LinkExtractor finds outbound link candidates in page text.
type LinkExtractor interface {
	// Candidates yields raw addresses in document order.
	// The sequence is lazy and can be ranged over more than once;
	// callers stop as soon as they have what they need.
	Candidates(html string) iter.Seq[string]
}

// Normalizer rewrites a discovered address into a canonical form before it
// is checked against the frontier and the visited set.
type Normalizer interface {
	Normalize(rawURL string) (string, error)
}
