package main

import (
	"context"
	"sync/atomic"

	"github.com/custodia-labs/margin-cli/internal/adapters/driven/remote"
	"github.com/custodia-labs/margin-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// backends bundles the driven adapters the config file selects
// between: the remote annotation service when service.url is set, the
// local cache otherwise.
type backends struct {
	annotations driven.AnnotationStore
	progress    driven.ProgressStore
	index       driven.SearchIndex
}

// buildBackends reads the current config and picks the adapter set.
// Called once at startup and again after every config reload.
func buildBackends(config driven.ConfigStore, cache *sqlite.Store) backends {
	baseURL := config.GetString("service.url")
	if baseURL == "" {
		return backends{
			annotations: cache.AnnotationStore(),
			progress:    cache.ProgressStore(),
			index:       cache.SearchIndex(),
		}
	}

	client := remote.NewClient(remote.Config{
		BaseURL: baseURL,
		Token:   config.GetString("service.token"),
	})
	return backends{
		annotations: client,
		index:       client,
		// Progress saves go to the service and mirror into the local
		// cache so positions restore without a network round trip.
		progress: &teeProgressStore{primary: client, cache: cache.ProgressStore()},
	}
}

// switchableBackends routes every store call through the current
// adapter set, so a config reload can rewire the remote client while
// the running commands keep their injected services.
type switchableBackends struct {
	current atomic.Pointer[backends]
}

var (
	_ driven.AnnotationStore = (*switchableBackends)(nil)
	_ driven.ProgressStore   = (*switchableBackends)(nil)
	_ driven.SearchIndex     = (*switchableBackends)(nil)
)

func newSwitchableBackends(b backends) *switchableBackends {
	s := &switchableBackends{}
	s.current.Store(&b)
	return s
}

func (s *switchableBackends) swap(b backends) {
	s.current.Store(&b)
	logger.Debug("Backends rewired")
}

func (s *switchableBackends) List(ctx context.Context, copyID string) ([]domain.Anchor, error) {
	return s.current.Load().annotations.List(ctx, copyID)
}

func (s *switchableBackends) Create(ctx context.Context, anchor domain.Anchor) (*domain.Anchor, error) {
	return s.current.Load().annotations.Create(ctx, anchor)
}

func (s *switchableBackends) Delete(ctx context.Context, id string) error {
	return s.current.Load().annotations.Delete(ctx, id)
}

func (s *switchableBackends) SaveProgress(ctx context.Context, pos domain.ReadingPosition) error {
	return s.current.Load().progress.SaveProgress(ctx, pos)
}

func (s *switchableBackends) Query(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return s.current.Load().index.Query(ctx, query, opts)
}

// teeProgressStore saves to the remote service and mirrors into the
// local cache. A cache failure is logged, not surfaced: the service
// save is the one that matters.
type teeProgressStore struct {
	primary driven.ProgressStore
	cache   driven.ProgressStore
}

var _ driven.ProgressStore = (*teeProgressStore)(nil)

func (t *teeProgressStore) SaveProgress(ctx context.Context, pos domain.ReadingPosition) error {
	if err := t.cache.SaveProgress(ctx, pos); err != nil {
		logger.Warn("Caching reading position failed: %v", err)
	}
	return t.primary.SaveProgress(ctx, pos)
}
