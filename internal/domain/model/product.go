package model

import "time"

// ProductStatus describes catalog availability of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusSoldOut  ProductStatus = "sold_out"
	ProductStatusObsolete ProductStatus = "obsolete"
	ProductStatusInactive ProductStatus = "inactive"
)

// Valid reports whether the status is one of the known catalog states.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusSoldOut, ProductStatusObsolete, ProductStatusInactive:
		return true
	}
	return false
}

// Category groups products. Names are unique.
type Category struct {
	ID   int64
	Name string
}

// Product is a catalog entry. Price is in the smallest currency unit and never negative.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       int64
	Status      ProductStatus
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
