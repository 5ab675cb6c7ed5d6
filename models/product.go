package models

import "time"

type Product struct {
	ProductID   string    `json:"productId" bson:"productId"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Type        string    `json:"type" bson:"type"`         // "produce", "livestock", "seed", "equipment", "fertilizer"
	Category    string    `json:"category" bson:"category"` // e.g. "vegetables", "grains", "dairy"
	Price       float64   `json:"price" bson:"price"`
	Unit        string    `json:"unit,omitempty" bson:"unit,omitempty"` // "kg", "crate", "litre"
	Quantity    int       `json:"quantity" bson:"quantity"`             // stock on hand
	OutOfStock  bool      `json:"outOfStock" bson:"outOfStock"`
	SellerID    string    `json:"sellerId" bson:"sellerId"`
	SellerRole  string    `json:"sellerRole,omitempty" bson:"sellerRole,omitempty"`
	Region      string    `json:"region,omitempty" bson:"region,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
