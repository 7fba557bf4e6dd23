package exhibitors

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/animeaux/animeaux/internal/listcache"
)

// CacheEntity is the list cache namespace of the exhibitor list.
const CacheEntity = "exhibitors"

// Service serves exhibitor list pages through the list cache.
type Service struct {
	repo   Repository
	cache  *listcache.Cache
	logger *slog.Logger
}

// NewService wires a Repository with the list cache. cache may be nil.
func NewService(repo Repository, cache *listcache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns one page of exhibitors matching params. Cache failures fall
// back to the repository.
func (s *Service) List(ctx context.Context, params SearchParams, limit, offset int) (Page, error) {
	page, err := s.fetch(ctx, params, limit, offset)
	switch {
	case err == nil:
		return page, nil
	case listcache.IsLoadError(err):
		return Page{}, err
	case ctx.Err() != nil:
		return Page{}, ctx.Err()
	}
	s.logger.Warn("exhibitors cache unavailable", slog.Any("error", err))

	v, err := s.loader(params, limit, offset)(ctx)
	if err != nil {
		return Page{}, err
	}
	return v.(Page), nil
}

// Warm loads params into the cache. Unlike List it reports cache failures.
func (s *Service) Warm(ctx context.Context, params SearchParams, limit int) error {
	if !s.cache.Enabled() {
		return listcache.ErrDisabled
	}
	_, err := s.fetch(ctx, params, limit, 0)
	return err
}

func (s *Service) fetch(ctx context.Context, params SearchParams, limit, offset int) (Page, error) {
	key, err := s.cache.Key(ctx, CacheEntity, cacheQuery(params, limit, offset))
	if err != nil {
		return Page{}, err
	}
	var page Page
	if err := s.cache.FetchJSON(ctx, key, &page, s.loader(params, limit, offset)); err != nil {
		return Page{}, err
	}
	return page, nil
}

func (s *Service) loader(params SearchParams, limit, offset int) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		items, total, err := s.repo.List(ctx, params, limit, offset)
		if err != nil {
			return nil, err
		}
		return Page{Exhibitors: items, Total: total}, nil
	}
}

// cacheQuery is the canonical query of params plus the page window.
func cacheQuery(params SearchParams, limit, offset int) string {
	values := params.Values(nil)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("offset", strconv.Itoa(offset))
	return values.Encode()
}
