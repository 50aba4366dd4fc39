package crawl

import (
	"sync"

	"github.com/fwojciec/hopcrawl"
)

// Compile-time interface verification.
var _ hopcrawl.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO of URLs with O(1) duplicate detection.
// The slice keeps traversal order and the map answers membership; both are
// updated together on every Push and Pop.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu     sync.Mutex
	queue  []string
	queued map[string]struct{}
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queued: make(map[string]struct{}),
	}
}

// Push appends a URL to the back of the frontier.
// Returns false if the URL is already queued.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.queued[url]; ok {
		return false
	}
	f.queued[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the URL at the front.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	delete(f.queued, url)
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Contains returns true if the URL is currently queued.
// Popped URLs are no longer contained.
func (f *Frontier) Contains(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.queued[url]
	return ok
}

// Snapshot returns a copy of the queued URLs in order.
func (f *Frontier) Snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queue...)
}
