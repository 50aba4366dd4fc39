package mock

import "github.com/fwojciec/hopcrawl"

var _ hopcrawl.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of hopcrawl.URLFrontier.
type URLFrontier struct {
	PushFn     func(url string) bool
	PopFn      func() (string, bool)
	LenFn      func() int
	ContainsFn func(url string) bool
}

func (f *URLFrontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *URLFrontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Contains(url string) bool {
	return f.ContainsFn(url)
}

var _ hopcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a mock implementation of hopcrawl.VisitedSet.
type VisitedSet struct {
	AddFn      func(url string)
	ContainsFn func(url string) bool
	LenFn      func() int
}

func (s *VisitedSet) Add(url string) {
	s.AddFn(url)
}

func (s *VisitedSet) Contains(url string) bool {
	return s.ContainsFn(url)
}

func (s *VisitedSet) Len() int {
	return s.LenFn()
}
