package model

import (
	"time"

	"sample-tracker-client/internal/ident"
)

// Modification is a change made to a sample. It stays on the sample after removal.
type Modification struct {
	ID          string     `json:"id"`
	SampleID    string     `json:"sampleId"`
	Name        string     `json:"name"`
	TimeAdded   time.Time  `json:"timeAdded"`
	TimeRemoved *time.Time `json:"timeRemoved,omitempty"`
}

// NewModification decodes a server record. An invalid TimeRemoved means the
// modification is still in place.
func NewModification(rec ModificationRecord) *Modification {
	m := &Modification{
		ID:        ident.Base64UUIDToString(rec.ID),
		SampleID:  rec.SampleID,
		Name:      rec.Name,
		TimeAdded: rec.TimeAdded,
	}
	if rec.TimeRemoved.Valid {
		removed := rec.TimeRemoved.Time
		m.TimeRemoved = &removed
	}
	return m
}

// Active reports whether the modification has not been removed.
func (m *Modification) Active() bool {
	return m.TimeRemoved == nil
}
