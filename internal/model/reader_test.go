package model

import "sample-tracker-client/internal/ident"

// fakeReader is a mutable Reader for tests.
type fakeReader struct {
	samples   []*Sample
	locations []*Location
	products  []*Product
	users     []*User
}

func (f *fakeReader) Samples() []*Sample     { return f.samples }
func (f *fakeReader) Locations() []*Location { return f.locations }
func (f *fakeReader) Products() []*Product   { return f.products }
func (f *fakeReader) Users() []*User         { return f.users }

const (
	uuidA = "6f1f8c3e-8d2a-4b7e-9c41-0a1b2c3d4e01"
	uuidB = "6f1f8c3e-8d2a-4b7e-9c41-0a1b2c3d4e02"
	uuidC = "6f1f8c3e-8d2a-4b7e-9c41-0a1b2c3d4e03"
	uuidD = "6f1f8c3e-8d2a-4b7e-9c41-0a1b2c3d4e04"
)

func wireID(canonical string) string {
	return ident.UUIDStringToBase64(canonical)
}
