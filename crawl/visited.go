package crawl

import "github.com/fwojciec/hopcrawl"

// Compile-time interface verification.
var _ hopcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is an exact, grow-only set of fetched URLs.
// It is not safe for concurrent use.
type VisitedSet struct {
	members map[string]struct{}
}

// NewVisitedSet creates a VisitedSet with room for n URLs.
func NewVisitedSet(n int) *VisitedSet {
	return &VisitedSet{
		members: make(map[string]struct{}, max(n, 0)),
	}
}

// Add adds a URL to the set. Adding a URL twice is a no-op.
func (s *VisitedSet) Add(url string) {
	s.members[url] = struct{}{}
}

// Contains returns true if the URL was added to the set.
func (s *VisitedSet) Contains(url string) bool {
	_, ok := s.members[url]
	return ok
}

// Len returns the number of URLs in the set.
func (s *VisitedSet) Len() int {
	return len(s.members)
}
