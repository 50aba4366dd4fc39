package hopcrawl

// URLFrontier is an ordered, duplicate-free queue of addresses awaiting a visit.
type URLFrontier interface {
	// Push appends url to the back of the frontier.
	// Returns false if the URL is already queued.
	Push(url string) bool

	// Pop removes and returns the URL at the front.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Contains returns true if the URL is currently queued.
	Contains(url string) bool
}

// VisitedSet records addresses that were successfully fetched.
// It only grows.
type VisitedSet interface {
	Add(url string)
	Contains(url string) bool
	Len() int
}
