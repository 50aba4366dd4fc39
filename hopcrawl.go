// Package hopcrawl provides a bounded-depth web crawler. Starting from a
// single seed address it visits a fixed number of pages ("hops"), following
// one outbound link per page, until the hop budget is spent or no further
// links can be found.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, regexp/, purell/).
package hopcrawl
