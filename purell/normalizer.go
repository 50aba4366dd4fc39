// Package purell provides URL normalization for discovered links,
// implemented with github.com/PuerkitoBio/purell.
package purell

import (
	"github.com/PuerkitoBio/purell"
	"github.com/fwojciec/hopcrawl"
)

// Ensure Normalizer implements hopcrawl.Normalizer at compile time.
var _ hopcrawl.Normalizer = (*Normalizer)(nil)

// DefaultFlags lowercases scheme and host, drops default ports, resolves
// dot segments, collapses duplicate slashes, removes fragments and sorts the
// query string.
const DefaultFlags = purell.FlagsSafe |
	purell.FlagRemoveDotSegments |
	purell.FlagRemoveDuplicateSlashes |
	purell.FlagRemoveFragment |
	purell.FlagSortQuery

// Normalizer rewrites URLs into a canonical form so that trivially different
// spellings of the same address are treated as one.
type Normalizer struct {
	flags purell.NormalizationFlags
}

// NewNormalizer creates a Normalizer using DefaultFlags.
func NewNormalizer() *Normalizer {
	return &Normalizer{flags: DefaultFlags}
}

// Normalize returns the canonical form of rawURL.
func (n *Normalizer) Normalize(rawURL string) (string, error) {
	normalized, err := purell.NormalizeURLString(rawURL, n.flags)
	if err != nil {
		return "", hopcrawl.Errorf(hopcrawl.EINVALIDADDRESS, "cannot normalize %q: %v", rawURL, err)
	}
	return normalized, nil
}
