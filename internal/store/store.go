package store

import (
	"sync"

	"sample-tracker-client/internal/model"
)

// Collection names, shared by the sync controller, the push listener and notifications.
const (
	CollectionSamples   = "samples"
	CollectionLocations = "locations"
	CollectionProducts  = "products"
	CollectionUsers     = "users"
)

// Collections lists every collection name.
var Collections = []string{CollectionSamples, CollectionLocations, CollectionProducts, CollectionUsers}

// Navigation is the UI's navigation state. The store keeps it so it survives in the
// snapshot alongside the entities.
type Navigation struct {
	Page           string `json:"page,omitempty"`
	SelectedSample string `json:"selectedSample,omitempty"`
	Filter         string `json:"filter,omitempty"`
}

// AppData is the complete store value.
type AppData struct {
	Samples   []*model.Sample   `json:"samples"`
	Locations []*model.Location `json:"locations"`
	Products  []*model.Product  `json:"products"`
	Users     []*model.User     `json:"users"`
	Nav       Navigation        `json:"nav"`
}

var _ model.Reader = (*Store)(nil)

// Listener is called after every change with the previous and the new value.
type Listener func(prev, next AppData)

// Store is the single observable container of entity collections. Collections are
// replaced wholesale, never edited in place.
type Store struct {
	mu   sync.RWMutex
	data AppData

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSubID int
}

// New creates a store seeded with a previously saved value. Seed entities are reused
// and bound to the new store.
func New(seed AppData) *Store {
	s := &Store{listeners: make(map[int]Listener)}
	s.data = AppData{
		Samples:   model.MergeSamples(s, model.AsItems(seed.Samples)),
		Locations: model.MergeLocations(s, model.AsItems(seed.Locations)),
		Products:  model.MergeProducts(s, model.AsItems(seed.Products)),
		Users:     model.MergeUsers(s, model.AsItems(seed.Users)),
		Nav:       seed.Nav,
	}
	return s
}

// Get returns the current value.
func (s *Store) Get() AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Update atomically replaces the value with fn(current) and notifies listeners.
// fn runs under the store lock and must not call back into the store.
func (s *Store) Update(fn func(AppData) AppData) {
	s.mu.Lock()
	prev := s.data
	next := fn(prev)
	s.data = next
	s.mu.Unlock()

	s.publish(prev, next)
}

// Set replaces the whole value.
func (s *Store) Set(data AppData) {
	s.Update(func(AppData) AppData { return data })
}

// SetNavigation replaces only the navigation state.
func (s *Store) SetNavigation(nav Navigation) {
	s.Update(func(data AppData) AppData {
		data.Nav = nav
		return data
	})
}

// Subscribe registers fn for change notifications. The returned function removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) publish(prev, next AppData) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(prev, next)
	}
}

// Samples implements model.Reader.
func (s *Store) Samples() []*model.Sample { return s.Get().Samples }

// Locations implements model.Reader.
func (s *Store) Locations() []*model.Location { return s.Get().Locations }

// Products implements model.Reader.
func (s *Store) Products() []*model.Product { return s.Get().Products }

// Users implements model.Reader.
func (s *Store) Users() []*model.User { return s.Get().Users }

// Changed names the collections whose slice differs between prev and next.
// Every refresh installs a new slice, so a refresh counts as a change even when the
// content is the same.
func Changed(prev, next AppData) []string {
	var changed []string
	if !sameSlice(prev.Samples, next.Samples) {
		changed = append(changed, CollectionSamples)
	}
	if !sameSlice(prev.Locations, next.Locations) {
		changed = append(changed, CollectionLocations)
	}
	if !sameSlice(prev.Products, next.Products) {
		changed = append(changed, CollectionProducts)
	}
	if !sameSlice(prev.Users, next.Users) {
		changed = append(changed, CollectionUsers)
	}
	return changed
}

func sameSlice[T any](a, b []*T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
