package orders

import (
	"errors"
	"testing"

	"agrogram/models"
)

func pendingOrder() models.Order {
	return models.Order{
		OrderID:     "ORD1",
		Status:      StatusPending,
		BuyerID:     "u_buyer",
		BuyerEmail:  "a@x.com",
		SellerID:    "u_seller",
		SellerEmail: "b@x.com",
		TotalPrice:  100,
	}
}

func actionNames(list []ActionDescriptor) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Action
	}
	return out
}

func assertActions(t *testing.T, got []ActionDescriptor, want ...string) {
	t.Helper()
	names := actionNames(got)
	if len(names) != len(want) {
		t.Fatalf("actions = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("actions = %v, want %v", names, want)
		}
	}
}

func TestSellerActionsOnPending(t *testing.T) {
	order := pendingOrder()
	seller := Identity{Email: "b@x.com"}
	assertActions(t, AvailableActions(order, seller),
		ActionConfirmOrder, ActionRejectOrder, ActionContact)
}

func TestBuyerActionsOnPending(t *testing.T) {
	order := pendingOrder()
	buyer := Identity{Email: "a@x.com"}
	assertActions(t, AvailableActions(order, buyer),
		ActionCancelOrder, ActionContact)
}

func TestStrangerGetsNothing(t *testing.T) {
	order := pendingOrder()
	for _, status := range []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered} {
		order.Status = status
		got := AvailableActions(order, Identity{UserID: "u_other", Email: "c@x.com"})
		if len(got) != 0 {
			t.Errorf("status %s: stranger got %v", status, actionNames(got))
		}
	}
}

func TestTerminalStatesOfferContactOnly(t *testing.T) {
	order := pendingOrder()
	buyer := Identity{Email: "a@x.com"}
	seller := Identity{UserID: "u_seller"}
	for _, status := range []string{StatusCancelled, StatusRefunded} {
		order.Status = status
		assertActions(t, AvailableActions(order, buyer), ActionContact)
		assertActions(t, AvailableActions(order, seller), ActionContact)
	}
}

func TestPartyMatchByIDWhenEmailDiffers(t *testing.T) {
	order := pendingOrder()
	// No email match, id match still identifies the buyer.
	buyer := Identity{UserID: "u_buyer", Email: "alias@elsewhere.com"}
	if !IsBuyer(order, buyer) {
		t.Fatal("buyer should match by id")
	}
	assertActions(t, AvailableActions(order, buyer), ActionCancelOrder, ActionContact)
}

func TestShippedTransitions(t *testing.T) {
	order := pendingOrder()
	order.Status = StatusShipped
	assertActions(t, AvailableActions(order, Identity{Email: "a@x.com"}),
		ActionConfirmDelivery, ActionRequestRefund, ActionContact)
	assertActions(t, AvailableActions(order, Identity{Email: "b@x.com"}),
		ActionConfirmDelivery, ActionContact)
}

func TestMarkShippedRequiresCarrier(t *testing.T) {
	order := pendingOrder()
	order.Status = StatusConfirmed
	seller := Identity{Email: "b@x.com"}

	_, err := BuildUpdate(order, ActionMarkShipped, seller, ActionForm{
		Carrier:        "",
		TrackingNumber: "XYZ",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "carrier" {
		t.Fatalf("fields = %v, want [carrier]", verr.Fields)
	}
}

func TestMarkShippedUpdate(t *testing.T) {
	order := pendingOrder()
	order.Status = StatusConfirmed
	seller := Identity{Email: "b@x.com"}

	update, err := BuildUpdate(order, ActionMarkShipped, seller, ActionForm{
		Carrier:        "AgriShip",
		TrackingNumber: "XYZ123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if update["status"] != StatusShipped {
		t.Errorf("status = %v, want SHIPPED", update["status"])
	}
	if update["carrier"] != "AgriShip" || update["tracking_number"] != "XYZ123" {
		t.Errorf("carrier/tracking not recorded: %v", update)
	}
	if _, ok := update["shipped_at"]; !ok {
		t.Error("shipped_at missing")
	}
}

func TestRefundAmountBounds(t *testing.T) {
	order := pendingOrder()
	order.Status = StatusRefundRequested
	seller := Identity{Email: "b@x.com"}

	for _, amount := range []float64{0, -5, 100.01, 1000} {
		_, err := BuildUpdate(order, ActionProcessRefund, seller, ActionForm{
			RefundAmount: amount,
			RefundMethod: "wallet",
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("amount %v: expected ValidationError, got %v", amount, err)
		}
	}

	update, err := BuildUpdate(order, ActionProcessRefund, seller, ActionForm{
		RefundAmount: 100,
		RefundMethod: "wallet",
	})
	if err != nil {
		t.Fatalf("full refund should validate: %v", err)
	}
	if update["status"] != StatusRefunded {
		t.Errorf("status = %v, want REFUNDED", update["status"])
	}
}

func TestRequestRefundRequiredFields(t *testing.T) {
	order := pendingOrder()
	order.Status = StatusDelivered
	buyer := Identity{Email: "a@x.com"}

	_, err := BuildUpdate(order, ActionRequestRefund, buyer, ActionForm{RefundType: "partial"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("fields = %v, want refund_reason and refund_description", verr.Fields)
	}
}

func TestWrongPartyCannotTransition(t *testing.T) {
	order := pendingOrder()
	buyer := Identity{Email: "a@x.com"}
	if _, err := BuildUpdate(order, ActionConfirmOrder, buyer, ActionForm{ProcessingTime: "2 days"}); !errors.Is(err, ErrActionNotAllowed) {
		t.Errorf("buyer confirming order: err = %v, want ErrActionNotAllowed", err)
	}

	stranger := Identity{Email: "c@x.com"}
	if _, err := BuildUpdate(order, ActionConfirmOrder, stranger, ActionForm{ProcessingTime: "2 days"}); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("stranger: err = %v, want ErrNotParticipant", err)
	}
}

func TestTransitionSkippingDenied(t *testing.T) {
	order := pendingOrder()
	seller := Identity{Email: "b@x.com"}
	// PENDING cannot jump straight to SHIPPED.
	if _, err := BuildUpdate(order, ActionMarkShipped, seller, ActionForm{
		Carrier: "AgriShip", TrackingNumber: "XYZ",
	}); !errors.Is(err, ErrActionNotAllowed) {
		t.Errorf("err = %v, want ErrActionNotAllowed", err)
	}
}

func TestCancelRequiresReason(t *testing.T) {
	order := pendingOrder()
	buyer := Identity{Email: "a@x.com"}
	if _, err := BuildUpdate(order, ActionCancelOrder, buyer, ActionForm{}); err == nil {
		t.Fatal("cancel without reason should fail validation")
	}
	update, err := BuildUpdate(order, ActionCancelOrder, buyer, ActionForm{Reason: "changed my mind"})
	if err != nil {
		t.Fatal(err)
	}
	if update["cancellation_reason"] != "changed my mind" {
		t.Errorf("reason not recorded: %v", update)
	}
}
