package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sample-tracker-client/internal/model"
)

func TestNew_SeedsAndBindsEntities(t *testing.T) {
	parent := &model.Location{ID: "a", Name: "Lab"}
	child := &model.Location{ID: "b", Name: "Shelf", ParentLocationID: "a"}
	seed := AppData{
		Locations: []*model.Location{parent, child},
		Samples:   []*model.Sample{{ID: "AQIDAA==", State: model.StateAvailable, LocationID: "b"}},
		Nav:       Navigation{Page: "samples"},
	}

	s := New(seed)
	data := s.Get()

	require.Len(t, data.Locations, 2)
	assert.Same(t, parent, data.Locations[0], "seeded entities are reused")
	assert.Equal(t, "Lab - Shelf", child.CombinedName(), "seeded entities resolve through the store")
	assert.Same(t, child, data.Samples[0].Location())
	assert.Equal(t, "samples", data.Nav.Page)
	assert.NotNil(t, data.Users)
	assert.Empty(t, data.Users)
}

func TestStore_UpdateReplacesAndPublishes(t *testing.T) {
	s := New(AppData{})

	var calls []AppData
	unsubscribe := s.Subscribe(func(prev, next AppData) {
		calls = append(calls, prev, next)
	})

	users := []*model.User{{ID: "u1", Name: "Ada"}}
	s.Update(func(data AppData) AppData {
		data.Users = users
		return data
	})

	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Users)
	assert.Equal(t, users, calls[1].Users)
	assert.Equal(t, users, s.Users())

	unsubscribe()
	unsubscribe()
	s.SetNavigation(Navigation{Page: "users"})
	assert.Len(t, calls, 2, "no calls after unsubscribe")
	assert.Equal(t, "users", s.Get().Nav.Page)
	assert.Equal(t, users, s.Get().Users, "navigation change leaves collections alone")
}

func TestStore_ReaderReflectsCurrentValue(t *testing.T) {
	s := New(AppData{})
	owner := model.NewUser(model.UserRecord{ID: "", Name: "nobody"}, s)

	s.Set(AppData{Samples: []*model.Sample{{ID: "AQIDAA==", State: model.StateBroken}}})
	assert.Len(t, s.Samples(), 1)
	assert.Empty(t, s.Locations())
	assert.Empty(t, s.Products())
	assert.Equal(t, 0, owner.AssignedSamples()[model.StateBroken])
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := New(AppData{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(data AppData) AppData {
				data.Users = append(append([]*model.User{}, data.Users...), &model.User{Name: "u"})
				return data
			})
		}()
	}
	wg.Wait()

	assert.Len(t, s.Users(), 50)
}

func TestChanged(t *testing.T) {
	samples := []*model.Sample{{ID: "AQIDAA=="}}
	users := []*model.User{{ID: "u1"}}
	prev := AppData{Samples: samples, Users: users}

	next := prev
	next.Samples = []*model.Sample{{ID: "AQIDAA=="}}
	next.Locations = []*model.Location{{ID: "l1"}}

	assert.Equal(t, []string{CollectionSamples, CollectionLocations}, Changed(prev, next))
	assert.Empty(t, Changed(prev, prev))
}
