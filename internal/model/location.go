package model

import "sample-tracker-client/internal/ident"

// Location is a storage place. Locations nest through ParentLocationID.
type Location struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	ParentLocationID string  `json:"parentLocationId,omitempty"`

	store Reader
}

// NewLocation decodes a server record. r may be nil, in which case every relationship
// accessor reports no relation.
func NewLocation(rec LocationRecord, r Reader) *Location {
	l := &Location{
		ID:               ident.Base64UUIDToString(rec.ID),
		Name:             rec.Name,
		ParentLocationID: ident.Base64UUIDToString(rec.ParentLocationID),
		store:            r,
	}
	if rec.Description.Valid {
		description := rec.Description.String
		l.Description = &description
	}
	return l
}

func (l *Location) attach(r Reader) *Location {
	l.store = r
	return l
}

// ParentLocation returns the location this one is nested in, if it is known.
func (l *Location) ParentLocation() *Location {
	if l.ParentLocationID == "" || l.store == nil {
		return nil
	}
	return findByID(l.store.Locations(), locationID, l.ParentLocationID)
}

// ChildLocations returns the locations directly nested in this one.
func (l *Location) ChildLocations() []*Location {
	if l.store == nil {
		return nil
	}
	var children []*Location
	for _, candidate := range l.store.Locations() {
		if candidate.ParentLocationID == l.ID {
			children = append(children, candidate)
		}
	}
	return children
}

// CombinedName is the full path of names from the root location, e.g. "Lab - Shelf 2".
func (l *Location) CombinedName() string {
	return combinedName(l, locationID, func(x *Location) string { return x.Name }, (*Location).ParentLocation)
}

func locationID(l *Location) string { return l.ID }
