package model

import (
	"strings"
	"sync"

	"sample-tracker-client/internal/ident"
)

// Sample is a tracked physical sample. ID keeps the server's base64 blob; DisplayID
// renders it for people.
type Sample struct {
	ID           string          `json:"id"`
	State        State           `json:"state"`
	LocationID   string          `json:"locationId,omitempty"`
	ProductID    string          `json:"productId,omitempty"`
	OwnerID      string          `json:"ownerId,omitempty"`
	ProductIssue *string         `json:"productIssue,omitempty"`
	Mods         []*Modification `json:"mods"`

	displayOnce sync.Once
	displayID   string
	store       Reader
}

// NewSample decodes a server record together with its modifications.
func NewSample(rec SampleRecord, r Reader) *Sample {
	s := &Sample{
		ID:         rec.ID,
		State:      ParseState(rec.State),
		LocationID: ident.Base64UUIDToString(rec.LocationID),
		ProductID:  ident.Base64UUIDToString(rec.ProductID),
		OwnerID:    ident.Base64UUIDToString(rec.OwnerID),
		Mods:       make([]*Modification, 0, len(rec.Mods)),
		store:      r,
	}
	if rec.ProductIssue.Valid {
		issue := rec.ProductIssue.String
		s.ProductIssue = &issue
	}
	for _, mod := range rec.Mods {
		s.Mods = append(s.Mods, NewModification(mod))
	}
	return s
}

func (s *Sample) attach(r Reader) *Sample {
	s.store = r
	return s
}

// DisplayID is the sample's display code, e.g. "1Z-4I-6T". It is computed once.
func (s *Sample) DisplayID() string {
	s.displayOnce.Do(func() {
		s.displayID = ident.BlobToDisplayCode(s.ID)
	})
	return s.displayID
}

// Location returns where the sample is stored, if that location is known.
func (s *Sample) Location() *Location {
	if s.store == nil || s.LocationID == "" {
		return nil
	}
	return findByID(s.store.Locations(), locationID, s.LocationID)
}

// Product returns the sample's product, if it is known.
func (s *Sample) Product() *Product {
	if s.store == nil || s.ProductID == "" {
		return nil
	}
	return findByID(s.store.Products(), productID, s.ProductID)
}

// Owner returns the user the sample is assigned to, if any.
func (s *Sample) Owner() *User {
	if s.store == nil || s.OwnerID == "" {
		return nil
	}
	return findByID(s.store.Users(), userID, s.OwnerID)
}

// Status is the label of the sample's state.
func (s *Sample) Status() string {
	return s.State.Label()
}

// ModSummary describes the active modifications in list order.
func (s *Sample) ModSummary() string {
	if len(s.Mods) == 0 {
		return "No mods"
	}
	var active []string
	for _, mod := range s.Mods {
		if mod.Active() {
			active = append(active, mod.Name)
		}
	}
	if len(active) == 0 {
		return "No active mods"
	}
	return strings.Join(active, ", ")
}
