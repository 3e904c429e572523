package server

import (
	"strings"
	"sync"

	"github.com/nickcwilkins/gtfsrt-arrivals/arrivals"
)

// queryCache memoizes arrival selections for one source. Entries are valid
// only for the snapshot generation that produced them; a new generation
// drops everything. Only the selection is cached: fields derived from the
// wall clock are rendered per request, since a generation can stay frozen
// for a long time while upstream fetches fail.
type queryCache struct {
	mu      sync.Mutex
	gen     uint64
	entries map[string][]arrivals.Arrival
}

func newQueryCache() *queryCache {
	return &queryCache{entries: map[string][]arrivals.Arrival{}}
}

func memoKey(args ...string) string {
	return strings.Join(args, "|")
}

func (c *queryCache) get(gen uint64, key string) ([]arrivals.Arrival, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil, false
	}
	list, ok := c.entries[key]
	return list, ok
}

func (c *queryCache) put(gen uint64, key string, list []arrivals.Arrival) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.gen = gen
		c.entries = map[string][]arrivals.Arrival{}
	}
	c.entries[key] = list
}
