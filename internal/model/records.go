package model

import (
	"database/sql"
	"time"
)

// The record types mirror the JSON the tracker server returns. Field names match the
// server's encoding of its database rows, so nullable columns arrive as {String,Valid}
// and {Time,Valid} objects. Ids are base64 text.

// LocationRecord is a location as returned by GET /api/locations.
type LocationRecord struct {
	ID               string
	Name             string
	Description      sql.NullString
	ParentLocationID string
}

// ProductRecord is a product as returned by GET /api/products.
type ProductRecord struct {
	ID              string
	Name            string
	PartNumber      sql.NullString
	ParentProductID string
}

// UserRecord is a user as returned by GET /api/users.
type UserRecord struct {
	ID   string
	Name string
}

// ModificationRecord is one entry of a sample's mods list.
type ModificationRecord struct {
	ID          string
	SampleID    string
	Name        string
	TimeAdded   time.Time
	TimeRemoved sql.NullTime
}

// SampleRecord is a sample as returned by GET /api/samples.
type SampleRecord struct {
	ID           string
	State        string
	LocationID   string
	ProductID    string
	OwnerID      string
	ProductIssue sql.NullString
	Mods         []ModificationRecord `json:"mods"`
}
