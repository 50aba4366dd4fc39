package hopcrawl

import (
	"regexp"
	"strings"
)

// addressPattern is a loose syntactic check for seed addresses: optional
// scheme, optional "www.", one or more dot-separated labels ending in a short
// alphabetic top-level domain, optional port and optional trailing path.
var addressPattern = regexp.MustCompile(
	`^(?i:https?://)?(www\.)?[a-zA-Z0-9][a-zA-Z0-9-]*(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,6}(:[0-9]{1,5})?([/?#]\S*)?$`,
)

// Request describes a single crawl: how many pages to visit and where to start.
type Request struct {
	Hops    int    `json:"hops"`
	SeedURL string `json:"seedUrl"`
}

// Validate returns an error if the request cannot start a crawl.
// It never touches the network.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.SeedURL) == "" {
		return Errorf(EMISSINGINPUT, "seed url required")
	}
	if r.Hops <= 0 {
		return Errorf(EINVALIDBUDGET, "hops must be greater than 0, got %d", r.Hops)
	}
	if !ValidAddress(r.SeedURL) {
		return Errorf(EINVALIDADDRESS, "malformed url %q: url must follow a standard well-formed pattern", r.SeedURL)
	}
	return nil
}

// SeedAddress returns the seed as an absolute URL, defaulting to http://
// when the user left the scheme out.
func (r *Request) SeedAddress() string {
	seed := strings.TrimSpace(r.SeedURL)
	lower := strings.ToLower(seed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return seed
	}
	return "http://" + seed
}

// ValidAddress reports whether s has the accepted address shape.
// This is a sanity check, not RFC 3986 validation.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(strings.TrimSpace(s))
}
