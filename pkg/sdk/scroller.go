package catalog

import (
	"context"
	"slices"
	"sync"
)

// Searcher fetches one page of search results. *Client implements it.
type Searcher interface {
	Search(ctx context.Context, f Filters, page int) (Envelope, error)
}

// Scroller accumulates consecutive result pages for infinite scrolling.
// At most one fetch is in flight; page N is appended only after page N-1.
// Safe for concurrent use.
type Scroller struct {
	src Searcher

	mu      sync.Mutex
	filters Filters
	items   []Product
	page    int
	hasMore bool
	loading bool
	gen     uint64
	lastErr error
}

// NewScroller creates a scroller positioned before the first page.
func NewScroller(src Searcher, f Filters) *Scroller {
	return &Scroller{src: src, filters: f.Clone(), hasMore: true}
}

// LoadNext fetches and appends the next page. It reports false without
// fetching when a fetch is already in flight or no pages remain. A failed
// fetch leaves the position unchanged so the call can be retried.
func (s *Scroller) LoadNext(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.loading || !s.hasMore {
		s.mu.Unlock()
		return false, nil
	}
	s.loading = true
	next := s.page + 1
	gen := s.gen
	f := s.filters.Clone()
	s.mu.Unlock()

	env, err := s.src.Search(ctx, f, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// Reset while in flight: the answer belongs to old filters.
		return false, nil
	}
	s.loading = false
	s.lastErr = err
	if err != nil {
		return false, err
	}
	s.items = append(s.items, env.Data...)
	s.page = next
	s.hasMore = env.Meta.HasNextPage
	return true, nil
}

// Watch loads the next page each time the sentinel element becomes visible.
// It returns when ctx is done or visible is closed. Fetch errors are kept
// in Err and do not stop watching.
func (s *Scroller) Watch(ctx context.Context, visible <-chan bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-visible:
			if !ok {
				return nil
			}
			if v {
				_, _ = s.LoadNext(ctx)
			}
		}
	}
}

// Reset switches to new filters and clears accumulated items.
// An in-flight fetch for the old filters is discarded when it settles.
func (s *Scroller) Reset(f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f.Clone()
	s.items = nil
	s.page = 0
	s.hasMore = true
	s.loading = false
	s.lastErr = nil
	s.gen++
}

// Items returns a copy of every product loaded so far, in page order.
func (s *Scroller) Items() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// HasMore reports whether another page can be loaded.
func (s *Scroller) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Page is the last page appended; 0 before the first load.
func (s *Scroller) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Loading reports whether a fetch is in flight.
func (s *Scroller) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err is the error of the last fetch, nil after a success or Reset.
func (s *Scroller) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
