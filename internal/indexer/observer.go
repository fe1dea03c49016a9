package indexer

import "time"

// BuildStats describes a completed index build.
type BuildStats struct {
	Studies  int
	Terms    int
	Postings int
	Duration time.Duration
}

// QueryStats describes one keyword lookup.
type QueryStats struct {
	Keyword    string
	Normalized string
	Hits       int
	Duration   time.Duration
}

// Observer receives engine activity. Implementations must be safe for
// concurrent use because Searched is called from every querying goroutine,
// and must not block.
type Observer interface {
	IndexBuilt(BuildStats)
	Searched(QueryStats)
}

type nopObserver struct{}

func (nopObserver) IndexBuilt(BuildStats) {}
func (nopObserver) Searched(QueryStats)   {}

type multiObserver []Observer

func (m multiObserver) IndexBuilt(s BuildStats) {
	for _, o := range m {
		o.IndexBuilt(s)
	}
}

func (m multiObserver) Searched(s QueryStats) {
	for _, o := range m {
		o.Searched(s)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return nopObserver{}
	case 1:
		return out[0]
	default:
		return out
	}
}
