package orders

import (
	"testing"

	"agrogram/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestReleaseStockUpdateRestoresReservation(t *testing.T) {
	item := models.CartItem{ProductID: "p1", Quantity: 3}
	update := releaseStockUpdate(item)

	inc, ok := update["$inc"].(bson.M)
	if !ok || inc["quantity"] != 3 {
		t.Fatalf("expected $inc quantity 3, got %v", update["$inc"])
	}
	set, ok := update["$set"].(bson.M)
	if !ok || set["outOfStock"] != false {
		t.Fatalf("released stock must be sellable again, got %v", update["$set"])
	}
}

func TestPurchasedLinesFilterKeepsSkippedLines(t *testing.T) {
	created := []models.Order{
		{ProductDetails: models.ProductDetails{ProductID: "p1"}},
		{ProductDetails: models.ProductDetails{ProductID: "p3"}},
	}
	filter := purchasedLinesFilter("u1", created)

	if filter["userId"] != "u1" {
		t.Fatalf("filter must scope to the buyer, got %v", filter["userId"])
	}
	in, ok := filter["productId"].(bson.M)["$in"].([]string)
	if !ok || len(in) != 2 {
		t.Fatalf("expected 2 purchased lines, got %v", filter["productId"])
	}
	for _, id := range in {
		if id == "p2" {
			t.Fatal("a line that produced no order must stay in the cart")
		}
	}
	if in[0] != "p1" || in[1] != "p3" {
		t.Fatalf("expected [p1 p3], got %v", in)
	}
}
