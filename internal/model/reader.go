package model

// Reader is a read-only view of the current entity collections. Entities hold one so
// their relationship accessors always see the latest collections instead of copies
// taken at construction time.
type Reader interface {
	Samples() []*Sample
	Locations() []*Location
	Products() []*Product
	Users() []*User
}
