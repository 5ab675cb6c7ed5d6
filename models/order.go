package models

import "time"

// ProductDetails is the denormalized snapshot of what was bought.
type ProductDetails struct {
	ProductID string  `json:"productId" bson:"productId"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Unit      string  `json:"unit,omitempty" bson:"unit,omitempty"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Order is a finalized purchase between exactly two parties.
type Order struct {
	OrderID        string         `json:"orderId" bson:"orderId"`
	Status         string         `json:"status" bson:"status"`
	BuyerID        string         `json:"buyer_id" bson:"buyer_id"`
	BuyerEmail     string         `json:"buyer_email" bson:"buyer_email"`
	BuyerType      string         `json:"buyer_type" bson:"buyer_type"`
	SellerID       string         `json:"seller_id" bson:"seller_id"`
	SellerEmail    string         `json:"seller_email" bson:"seller_email"`
	SellerType     string         `json:"seller_type" bson:"seller_type"`
	ProductDetails ProductDetails `json:"product_details" bson:"product_details"`
	Quantity       int            `json:"quantity" bson:"quantity"`
	TotalPrice     float64        `json:"total_price" bson:"total_price"`
	Address        string         `json:"address,omitempty" bson:"address,omitempty"`

	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty" bson:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`

	ProcessingTime     string     `json:"processing_time,omitempty" bson:"processing_time,omitempty"`
	Carrier            string     `json:"carrier,omitempty" bson:"carrier,omitempty"`
	TrackingNumber     string     `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty" bson:"delivery_date,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`

	RefundType        string     `json:"refund_type,omitempty" bson:"refund_type,omitempty"`
	RefundReason      string     `json:"refund_reason,omitempty" bson:"refund_reason,omitempty"`
	RefundDescription string     `json:"refund_description,omitempty" bson:"refund_description,omitempty"`
	RefundAmount      float64    `json:"refund_amount,omitempty" bson:"refund_amount,omitempty"`
	RefundMethod      string     `json:"refund_method,omitempty" bson:"refund_method,omitempty"`
	RefundRequestedAt *time.Time `json:"refund_requested_at,omitempty" bson:"refund_requested_at,omitempty"`
	RefundedAt        *time.Time `json:"refunded_at,omitempty" bson:"refunded_at,omitempty"`
}
