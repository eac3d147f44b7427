package model

import (
	"encoding/json"
	"fmt"
	"log"
)

// AsItems widens a typed slice so it can be handed to the Merge functions.
func AsItems[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// MergeLocations builds the location collection from items. Items that already are
// *Location are reused and bound to r; LocationRecord values are decoded; anything else
// is re-read as a LocationRecord through its JSON form.
func MergeLocations(r Reader, items []any) []*Location {
	return merge(items,
		func(l *Location) *Location { return l.attach(r) },
		func(rec LocationRecord) *Location { return NewLocation(rec, r) })
}

// MergeProducts is MergeLocations for products.
func MergeProducts(r Reader, items []any) []*Product {
	return merge(items,
		func(p *Product) *Product { return p.attach(r) },
		func(rec ProductRecord) *Product { return NewProduct(rec, r) })
}

// MergeUsers is MergeLocations for users.
func MergeUsers(r Reader, items []any) []*User {
	return merge(items,
		func(u *User) *User { return u.attach(r) },
		func(rec UserRecord) *User { return NewUser(rec, r) })
}

// MergeSamples is MergeLocations for samples.
func MergeSamples(r Reader, items []any) []*Sample {
	return merge(items,
		func(s *Sample) *Sample { return s.attach(r) },
		func(rec SampleRecord) *Sample { return NewSample(rec, r) })
}

func merge[E any, R any](items []any, reuse func(*E) *E, build func(R) *E) []*E {
	out := make([]*E, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
			continue
		case *E:
			if v != nil {
				out = append(out, reuse(v))
			}
		case R:
			out = append(out, build(v))
		case *R:
			if v != nil {
				out = append(out, build(*v))
			}
		default:
			rec, err := reshape[R](v)
			if err != nil {
				log.Printf("Warning: skipping undecodable %T item: %v", v, err)
				continue
			}
			out = append(out, build(rec))
		}
	}
	return out
}

func reshape[R any](v any) (R, error) {
	var rec R
	raw, err := json.Marshal(v)
	if err != nil {
		return rec, fmt.Errorf("failed to marshal item: %w", err)
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return rec, nil
}
