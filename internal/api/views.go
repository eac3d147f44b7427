package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sample-tracker-client/internal/ident"
	"sample-tracker-client/internal/model"
)

type sampleView struct {
	ID           string  `json:"id"`
	DisplayID    string  `json:"displayId"`
	State        string  `json:"state"`
	Status       string  `json:"status"`
	Location     string  `json:"location,omitempty"`
	Product      string  `json:"product,omitempty"`
	Owner        string  `json:"owner,omitempty"`
	ProductIssue *string `json:"productIssue,omitempty"`
	Mods         string  `json:"mods"`
}

func newSampleView(s *model.Sample) sampleView {
	v := sampleView{
		ID:           s.ID,
		DisplayID:    s.DisplayID(),
		State:        string(s.State),
		Status:       s.Status(),
		ProductIssue: s.ProductIssue,
		Mods:         s.ModSummary(),
	}
	if loc := s.Location(); loc != nil {
		v.Location = loc.CombinedName()
	}
	if p := s.Product(); p != nil {
		v.Product = p.CombinedName()
	}
	if owner := s.Owner(); owner != nil {
		v.Owner = owner.Name
	}
	return v
}

type treeView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CombinedName string   `json:"combinedName"`
	ParentID     string   `json:"parentId,omitempty"`
	ChildIDs     []string `json:"childIds"`
}

type userView struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Assigned map[string]int `json:"assigned"`
}

// GetSamples handles GET /api/samples.
func (h *Handler) GetSamples(c *gin.Context) {
	samples := h.store.Samples()
	views := make([]sampleView, 0, len(samples))
	for _, s := range samples {
		views = append(views, newSampleView(s))
	}
	c.JSON(http.StatusOK, views)
}

// GetSample handles GET /api/samples/:display_id. The id is matched case-insensitively.
func (h *Handler) GetSample(c *gin.Context) {
	raw, ok := ident.ParseDisplayCode(c.Param("display_id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid display ID"})
		return
	}
	code := ident.FormatDisplayCode(raw)

	for _, s := range h.store.Samples() {
		if s.DisplayID() == code {
			c.JSON(http.StatusOK, newSampleView(s))
			return
		}
	}
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "sample not found"})
}

// GetLocations handles GET /api/locations.
func (h *Handler) GetLocations(c *gin.Context) {
	locations := h.store.Locations()
	views := make([]treeView, 0, len(locations))
	for _, l := range locations {
		v := treeView{ID: l.ID, Name: l.Name, CombinedName: l.CombinedName(), ParentID: l.ParentLocationID, ChildIDs: []string{}}
		for _, child := range l.ChildLocations() {
			v.ChildIDs = append(v.ChildIDs, child.ID)
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, views)
}

// GetProducts handles GET /api/products.
func (h *Handler) GetProducts(c *gin.Context) {
	products := h.store.Products()
	views := make([]treeView, 0, len(products))
	for _, p := range products {
		v := treeView{ID: p.ID, Name: p.Name, CombinedName: p.CombinedName(), ParentID: p.ParentProductID, ChildIDs: []string{}}
		for _, child := range p.ChildProducts() {
			v.ChildIDs = append(v.ChildIDs, child.ID)
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, views)
}

// GetUsers handles GET /api/users.
func (h *Handler) GetUsers(c *gin.Context) {
	users := h.store.Users()
	views := make([]userView, 0, len(users))
	for _, u := range users {
		counts := u.AssignedSamples()
		assigned := make(map[string]int, len(counts))
		for state, n := range counts {
			assigned[string(state)] = n
		}
		views = append(views, userView{ID: u.ID, Name: u.Name, Assigned: assigned})
	}
	c.JSON(http.StatusOK, views)
}

// PostRefresh handles POST /api/refresh. It returns once every collection has been
// refreshed. The refresh outlives a client that disconnects early.
func (h *Handler) PostRefresh(c *gin.Context) {
	if h.refresher == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "sync is not configured"})
		return
	}
	h.refresher.RefreshAll(context.WithoutCancel(c.Request.Context()))
	c.Status(http.StatusNoContent)
}
