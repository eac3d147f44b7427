// Package syncer keeps the store in step with the tracker server. It refreshes whole
// collections over HTTP and listens on the server's event stream for change notices.
package syncer

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"sample-tracker-client/config"
	"sample-tracker-client/internal/model"
	"sample-tracker-client/internal/store"
)

// Remote collection endpoints.
const (
	pathSamples   = "/api/samples"
	pathLocations = "/api/locations"
	pathProducts  = "/api/products"
	pathUsers     = "/api/users"
)

// Service refreshes store collections from the remote server.
type Service struct {
	cfg    *config.SyncConfig
	store  *store.Store
	client *Client
}

// NewService creates a sync service writing into st.
func NewService(cfg *config.Config, st *store.Store) *Service {
	return &Service{
		cfg:    &cfg.Sync,
		store:  st,
		client: NewClient(&cfg.Remote),
	}
}

// RefreshLocations replaces the location collection with the server's.
func (s *Service) RefreshLocations(ctx context.Context) {
	refresh[model.LocationRecord](ctx, s, store.CollectionLocations, pathLocations,
		model.MergeLocations, nil,
		func(data store.AppData, locations []*model.Location) store.AppData {
			data.Locations = locations
			return data
		})
}

// RefreshProducts replaces the product collection with the server's, sorted by name.
func (s *Service) RefreshProducts(ctx context.Context) {
	refresh[model.ProductRecord](ctx, s, store.CollectionProducts, pathProducts,
		model.MergeProducts, model.SortProducts,
		func(data store.AppData, products []*model.Product) store.AppData {
			data.Products = products
			return data
		})
}

// RefreshSamples replaces the sample collection with the server's.
func (s *Service) RefreshSamples(ctx context.Context) {
	refresh[model.SampleRecord](ctx, s, store.CollectionSamples, pathSamples,
		model.MergeSamples, nil,
		func(data store.AppData, samples []*model.Sample) store.AppData {
			data.Samples = samples
			return data
		})
}

// RefreshUsers replaces the user collection with the server's.
func (s *Service) RefreshUsers(ctx context.Context) {
	refresh[model.UserRecord](ctx, s, store.CollectionUsers, pathUsers,
		model.MergeUsers, nil,
		func(data store.AppData, users []*model.User) store.AppData {
			data.Users = users
			return data
		})
}

// RefreshAll refreshes every collection concurrently and returns when all are done.
func (s *Service) RefreshAll(ctx context.Context) {
	var g errgroup.Group
	for _, fn := range []func(context.Context){s.RefreshLocations, s.RefreshProducts, s.RefreshSamples, s.RefreshUsers} {
		g.Go(func() error {
			fn(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

// RefreshCollection refreshes the named collection. It reports false for unknown names.
func (s *Service) RefreshCollection(ctx context.Context, collection string) bool {
	switch collection {
	case store.CollectionSamples:
		s.RefreshSamples(ctx)
	case store.CollectionLocations:
		s.RefreshLocations(ctx)
	case store.CollectionProducts:
		s.RefreshProducts(ctx)
	case store.CollectionUsers:
		s.RefreshUsers(ctx)
	default:
		return false
	}
	return true
}

// refresh fetches one collection and installs it. A failed fetch is logged and, unless
// PreserveOnFailure is set, installs an empty collection. A fetch aborted because ctx
// ended installs nothing. Overlapping refreshes of the same collection are not ordered:
// whichever finishes last wins.
func refresh[R any, E any](
	ctx context.Context,
	s *Service,
	name, path string,
	merge func(model.Reader, []any) []*E,
	order func([]*E),
	set func(store.AppData, []*E) store.AppData,
) {
	var records []R
	if err := s.client.getJSON(ctx, path, &records); err != nil {
		if ctx.Err() != nil {
			log.Printf("Refresh of %s cancelled: %v", name, err)
			return
		}
		log.Printf("Failed to fetch %s: %v", name, err)
		if s.cfg.PreserveOnFailure {
			log.Printf("Keeping previous %s after failed refresh", name)
			return
		}
		records = nil
	}

	entities := merge(s.store, model.AsItems(records))
	if order != nil {
		order(entities)
	}

	s.store.Update(func(data store.AppData) store.AppData {
		return set(data, entities)
	})
	log.Printf("Refreshed %s: %d records", name, len(entities))
}
