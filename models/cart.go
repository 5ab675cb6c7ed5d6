package models

import "time"

// CartItem is a single line in a user's cart. At most one line exists per
// productId for a user; merging happens on add.
type CartItem struct {
	UserID    string    `json:"userId" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	Title     string    `json:"title" bson:"title"`
	Price     float64   `json:"price" bson:"price"` // unit price
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	SellerID  string    `json:"sellerId" bson:"sellerId"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Unit      string    `json:"unit,omitempty" bson:"unit,omitempty"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// TotalPrice is derived, never stored.
func (ci CartItem) TotalPrice() float64 {
	return ci.Price * float64(ci.Quantity)
}
