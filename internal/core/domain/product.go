package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidInput = errors.New("invalid input")

// Product is a catalog entry. IDs are assigned from a monotonically
// increasing counter and are never reused after deletion.
type Product struct {
	ID     int64   `json:"id" bson:"_id"`
	Name   string  `json:"name" bson:"name"`
	Price  float64 `json:"price" bson:"price"`
	Seller string  `json:"seller" bson:"seller"`
}
