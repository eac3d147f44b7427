package model

import (
	"cmp"
	"slices"

	"sample-tracker-client/internal/ident"
)

// Product is a product type samples belong to. Products nest through ParentProductID.
type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PartNumber      *string `json:"partNumber,omitempty"`
	ParentProductID string  `json:"parentProductId,omitempty"`

	store Reader
}

// NewProduct decodes a server record.
func NewProduct(rec ProductRecord, r Reader) *Product {
	p := &Product{
		ID:              ident.Base64UUIDToString(rec.ID),
		Name:            rec.Name,
		ParentProductID: ident.Base64UUIDToString(rec.ParentProductID),
		store:           r,
	}
	if rec.PartNumber.Valid {
		partNumber := rec.PartNumber.String
		p.PartNumber = &partNumber
	}
	return p
}

func (p *Product) attach(r Reader) *Product {
	p.store = r
	return p
}

// ParentProduct returns the product this one is a variant of, if it is known.
func (p *Product) ParentProduct() *Product {
	if p.ParentProductID == "" || p.store == nil {
		return nil
	}
	return findByID(p.store.Products(), productID, p.ParentProductID)
}

// ChildProducts returns the direct variants of this product.
func (p *Product) ChildProducts() []*Product {
	if p.store == nil {
		return nil
	}
	var children []*Product
	for _, candidate := range p.store.Products() {
		if candidate.ParentProductID == p.ID {
			children = append(children, candidate)
		}
	}
	return children
}

// CombinedName is the full path of names from the root product.
func (p *Product) CombinedName() string {
	return combinedName(p, productID, func(x *Product) string { return x.Name }, (*Product).ParentProduct)
}

// SortProducts orders products by name, then by id.
func SortProducts(products []*Product) {
	slices.SortStableFunc(products, func(a, b *Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

func productID(p *Product) string { return p.ID }
