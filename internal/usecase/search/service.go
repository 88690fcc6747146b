package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/antopucung/GodotTeko-sub003/internal/domain"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/match"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/order"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/result"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
	"github.com/antopucung/GodotTeko-sub003/internal/logger"
	"github.com/antopucung/GodotTeko-sub003/internal/metrics"
)

// FallbackMessage is reported in meta.error when the local catalog answered.
const FallbackMessage = "remote catalog unavailable, results served from local catalog"

// Service answers product searches: remote store first, local catalog on failure.
type Service struct {
	remote RemoteCatalog
	local  LocalCatalog
	now    func() time.Time
}

// New creates a search service. remote may be nil, in which case every
// search is answered by the local catalog.
func New(remote RemoteCatalog, local LocalCatalog) *Service {
	return &Service{remote: remote, local: local, now: time.Now}
}

// WithClock replaces the time source used for performance timings.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search returns one page of products for req. Remote failures are logged and
// answered from the local catalog with meta.fallback set; the error is
// non-nil only when neither source could answer.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Envelope, error) {
	start := s.now()
	log := logger.FromContext(ctx)

	page, total, remoteErr := s.searchRemote(ctx, req)
	fallback := remoteErr != nil
	if fallback {
		log.Warn("remote search failed, using local catalog", zap.Error(remoteErr))

		var localErr error
		page, total, localErr = s.searchLocal(ctx, req)
		if localErr != nil {
			metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
			log.Error("local catalog search failed",
				zap.NamedError("remote_error", remoteErr),
				zap.Error(localErr),
			)
			return result.Envelope{}, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, localErr)
		}
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeFallback).Inc()
	} else {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeRemote).Inc()
	}

	f := req.Filters()
	meta := result.Pagination(req.Page(), req.Limit(), total)
	meta.Filters = f
	meta.SearchPerformed = f.HasQuery()
	meta.Performance = &result.Performance{
		ResultCount: len(page),
		Query:       f.Query,
		FilterCount: f.ActiveDimensions(),
		TookMs:      s.now().Sub(start).Milliseconds(),
	}
	if fallback {
		meta.Fallback = true
		meta.Error = FallbackMessage
	}

	return result.Envelope{Data: page, Meta: meta}, nil
}

// searchRemote queries the store, post-filters what it cannot express and
// re-scores free-text hits locally, dropping those scoring 0.
func (s *Service) searchRemote(ctx context.Context, req *request.Request) ([]product.Product, int, error) {
	if s.remote == nil {
		return nil, 0, domain.ErrRemoteUnavailable
	}

	f := req.Filters()
	start := time.Now()
	fetched, remoteTotal, err := s.remote.Find(ctx, f, req.Offset(), req.Limit())
	if err != nil {
		metrics.RemoteQueryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	metrics.RemoteQueryDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	// Store text matches are stemmed; only hits the local scorer accepts are kept.
	dims := match.ClientSide
	if f.HasQuery() {
		dims |= match.Text
	}

	page := fetched
	postFiltered := false
	if match.Active(&f, dims) != 0 {
		page = match.Apply(fetched, f, dims)
		dropped := len(fetched) - len(page)
		metrics.PostFilterDropped.Add(float64(dropped))
		postFiltered = dropped > 0 || match.Active(&f, match.ClientSide) != 0
	}

	if f.HasQuery() && f.SortBy == sortby.Relevance {
		page = order.Sort(page, sortby.Relevance, true)
	}
	if page == nil {
		page = []product.Product{}
	}

	return page, countTotal(req, remoteTotal, len(page), postFiltered), nil
}

// countTotal derives the match count of a remote page. Without post-filtering
// the store count is exact. With it, a page that came back full keeps the
// store count as an approximation, and a partial page is taken as the last one.
func countTotal(req *request.Request, remoteTotal, kept int, postFiltered bool) int {
	if !postFiltered || kept >= req.Limit() {
		return remoteTotal
	}
	return req.Offset() + kept
}

// Get returns one product by ID. The local catalog answers when the store is
// unavailable or does not hold the product.
func (s *Service) Get(ctx context.Context, id string) (product.Product, error) {
	var remoteErr error = domain.ErrRemoteUnavailable
	if s.remote != nil {
		p, err := s.remote.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		remoteErr = err
		if !errors.Is(err, domain.ErrNotFound) {
			logger.FromContext(ctx).Warn("remote get failed, using local catalog",
				zap.String("id", id), zap.Error(err))
		}
	}

	if s.local == nil {
		return product.Product{}, notFoundOr(remoteErr, errors.New("no local catalog configured"))
	}
	all, err := s.local.All(ctx)
	if err != nil {
		return product.Product{}, notFoundOr(remoteErr, err)
	}
	for i := range all {
		if all[i].ID == id {
			return all[i], nil
		}
	}
	return product.Product{}, domain.ErrNotFound
}

// notFoundOr keeps a definitive store miss; otherwise neither source could answer.
func notFoundOr(remoteErr, localErr error) error {
	if errors.Is(remoteErr, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, localErr)
}

// searchLocal runs the full filter and sort over the local catalog.
func (s *Service) searchLocal(ctx context.Context, req *request.Request) ([]product.Product, int, error) {
	if s.local == nil {
		return nil, 0, errors.New("no local catalog configured")
	}
	all, err := s.local.All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("load local catalog: %w", err)
	}

	f := req.Filters()
	matched := match.Apply(all, f, match.All)
	sorted := order.Sort(matched, f.SortBy, f.HasQuery())
	return result.Page(sorted, req.Offset(), req.Limit()), len(sorted), nil
}
