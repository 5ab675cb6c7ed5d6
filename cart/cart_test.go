package cart

import (
	"testing"

	"agrogram/models"
)

func line(productID string, qty int, price float64) models.CartItem {
	return models.CartItem{
		ProductID: productID,
		Title:     "item " + productID,
		Price:     price,
		SellerID:  "s1",
		Quantity:  qty,
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	var c Cart
	c.AddItem(line("p1", 2, 10))
	c.AddItem(line("p1", 3, 10))

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	var c Cart
	c.AddItem(line("p1", 2, 10))
	c.AddItem(line("p2", 1, 4))

	c.UpdateQuantity("p1", 0)
	items := c.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("p1 should be gone, items = %v", items)
	}

	c.UpdateQuantity("p2", -3)
	if len(c.Items()) != 0 {
		t.Fatal("negative quantity should remove the line")
	}
}

func TestNoLineEverHoldsNonPositiveQuantity(t *testing.T) {
	var c Cart
	c.AddItem(line("p1", 0, 10))
	c.AddItem(line("p2", -2, 10))
	for _, item := range c.Items() {
		if item.Quantity < 1 {
			t.Errorf("line %s has quantity %d", item.ProductID, item.Quantity)
		}
	}
}

func TestTotalAfterQuantityUpdate(t *testing.T) {
	var c Cart
	c.AddItem(line("p1", 2, 10))
	c.UpdateQuantity("p1", 5)
	if got := c.Total(); got != 50 {
		t.Errorf("total = %v, want 50", got)
	}
}

func TestTotalAndCountAcrossLines(t *testing.T) {
	var c Cart
	c.AddItem(line("p1", 2, 10))
	c.AddItem(line("p2", 3, 4.5))

	if got := c.Total(); got != 33.5 {
		t.Errorf("total = %v, want 33.5", got)
	}
	if got := c.ItemCount(); got != 5 {
		t.Errorf("count = %v, want 5", got)
	}
}

func TestClear(t *testing.T) {
	var c Cart
	c.AddItem(line("p1", 2, 10))
	c.Clear()
	if c.ItemCount() != 0 || c.Total() != 0 {
		t.Error("clear should empty the cart")
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	var c Cart
	c.AddItem(line("p1", 1, 10))
	c.RemoveItem("p9")
	if len(c.Items()) != 1 {
		t.Error("removing an absent line should not touch others")
	}
}
