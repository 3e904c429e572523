package source

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nickcwilkins/gtfsrt-arrivals/config"
)

// Registry maps source names to their refresh controllers. It is built once
// at startup from the validated configuration and passed explicitly to
// whoever needs to query a source.
type Registry struct {
	sources map[string]*Source
	order   []string
}

// NewRegistry constructs one Source per configured entry.
func NewRegistry(cfg *config.AppConfig, logger *slog.Logger) *Registry {
	r := &Registry{sources: map[string]*Source{}}
	for _, sc := range cfg.Sources {
		r.sources[sc.Name] = New(sc, logger)
		r.order = append(r.order, sc.Name)
	}
	return r
}

// Get returns the source with the given name.
func (r *Registry) Get(name string) (*Source, bool) {
	s, ok := r.sources[name]
	return s, ok
}

// Names returns the source names in configuration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// RunAll runs every source's refresh loop and blocks until ctx is cancelled
// and all loops have stopped. Sources never share state, so their cycles
// are fully independent.
func (r *Registry) RunAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, s := range r.sources {
		wg.Add(1)
		go func(s *Source) {
			defer wg.Done()
			s.Run(ctx)
		}(s)
	}
	wg.Wait()
}
