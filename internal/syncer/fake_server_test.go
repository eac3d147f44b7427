package syncer

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sample-tracker-client/config"
	"sample-tracker-client/internal/ident"
	"sample-tracker-client/internal/model"
)

const (
	uuidLab    = "0b7f0c8e-1111-4c3a-9d5e-000000000001"
	uuidShelf  = "0b7f0c8e-1111-4c3a-9d5e-000000000002"
	uuidSensor = "0b7f0c8e-1111-4c3a-9d5e-000000000003"
	uuidBoard  = "0b7f0c8e-1111-4c3a-9d5e-000000000004"
	uuidAda    = "0b7f0c8e-1111-4c3a-9d5e-000000000005"
)

// fakeTracker emulates the tracker server's collection and push endpoints.
type fakeTracker struct {
	mu        sync.Mutex
	handlers  map[string]gin.HandlerFunc
	hits      map[string]*atomic.Int32
	pushConns atomic.Int32
}

func newFakeTracker() *fakeTracker {
	f := &fakeTracker{
		handlers: map[string]gin.HandlerFunc{
			"/api/locations": jsonHandler(defaultLocations()),
			"/api/products":  jsonHandler(defaultProducts()),
			"/api/samples":   jsonHandler(defaultSamples()),
			"/api/users":     jsonHandler(defaultUsers()),
		},
		hits: map[string]*atomic.Int32{},
	}
	for path := range f.handlers {
		f.hits[path] = &atomic.Int32{}
	}
	return f
}

func (f *fakeTracker) set(path string, h gin.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = h
}

func (f *fakeTracker) hitCount(path string) int32 {
	return f.hits[path].Load()
}

func (f *fakeTracker) start(t *testing.T, push gin.HandlerFunc) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	for path := range f.handlers {
		r.GET(path, func(c *gin.Context) {
			f.hits[path].Add(1)
			f.mu.Lock()
			h := f.handlers[path]
			f.mu.Unlock()
			h(c)
		})
	}
	if push != nil {
		r.GET("/api/sync", func(c *gin.Context) {
			f.pushConns.Add(1)
			push(c)
		})
	}
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func jsonHandler(body any) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}

func failingHandler(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "database is locked"})
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Remote: config.RemoteConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Sync: config.SyncConfig{
			PushPath:     "/api/sync",
			ReconnectMin: 10 * time.Millisecond,
			ReconnectMax: 40 * time.Millisecond,
		},
	}
}

func wire(canonical string) string {
	return ident.UUIDStringToBase64(canonical)
}

func defaultLocations() []model.LocationRecord {
	return []model.LocationRecord{
		{ID: wire(uuidShelf), Name: "Shelf 2", ParentLocationID: wire(uuidLab)},
		{ID: wire(uuidLab), Name: "Lab", Description: sql.NullString{String: "Main lab", Valid: true}},
	}
}

func defaultProducts() []model.ProductRecord {
	return []model.ProductRecord{
		{ID: wire(uuidSensor), Name: "Sensor"},
		{ID: wire(uuidBoard), Name: "Board", PartNumber: sql.NullString{String: "BRD-1", Valid: true}},
	}
}

func defaultSamples() []model.SampleRecord {
	return []model.SampleRecord{
		{
			ID:         "AQIDAA==",
			State:      "in_use",
			LocationID: wire(uuidShelf),
			ProductID:  wire(uuidSensor),
			OwnerID:    wire(uuidAda),
			Mods: []model.ModificationRecord{
				{ID: wire(uuidBoard), SampleID: "AQIDAA==", Name: "Heatsink", TimeAdded: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
	}
}

func defaultUsers() []model.UserRecord {
	return []model.UserRecord{{ID: wire(uuidAda), Name: "Ada"}}
}
