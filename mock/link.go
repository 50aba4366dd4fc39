package mock

import (
	"iter"

	"github.com/fwojciec/hopcrawl"
)

var _ hopcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of hopcrawl.LinkExtractor.
type LinkExtractor struct {
	CandidatesFn func(html string) iter.Seq[string]
}

func (e *LinkExtractor) Candidates(html string) iter.Seq[string] {
	return e.CandidatesFn(html)
}

var _ hopcrawl.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of hopcrawl.Normalizer.
type Normalizer struct {
	NormalizeFn func(rawURL string) (string, error)
}

func (n *Normalizer) Normalize(rawURL string) (string, error) {
	return n.NormalizeFn(rawURL)
}
