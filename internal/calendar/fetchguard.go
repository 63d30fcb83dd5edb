package calendar

import "github.com/rezcal/rezcal/internal/interval"

// FetchGuard decides whether a newly visible interval requires a data
// refetch. It remembers the last requested interval and suppresses load
// requests whose range is fully contained in it.
//
// The guard is a pure short-circuit optimization: extra refetches are
// harmless, a suppressed needed refetch is a correctness bug. Every
// boundary ambiguity therefore resolves toward fetching.
type FetchGuard struct {
	last *interval.Interval
}

// ShouldRefetch reports whether data for candidate must be requested.
// True when nothing has been fetched yet, or when candidate extends past
// either bound of the last fetched interval. Containment is closed and
// non-strict: a candidate identical to the last interval does not refetch.
func (g *FetchGuard) ShouldRefetch(candidate interval.Interval) bool {
	return g.last == nil || !g.last.Contains(candidate)
}

// RecordFetched remembers iv as the last requested interval.
func (g *FetchGuard) RecordFetched(iv interval.Interval) {
	g.last = &iv
}

// Last returns the last requested interval, or nil when none was recorded.
func (g *FetchGuard) Last() *interval.Interval {
	return g.last
}
