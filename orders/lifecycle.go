// Package orders holds the order state machine: which party may do what in
// each status, and how a submitted action form becomes an update payload.
package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"agrogram/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Order statuses
const (
	StatusPending         = "PENDING"
	StatusConfirmed       = "CONFIRMED"
	StatusShipped         = "SHIPPED"
	StatusDelivered       = "DELIVERED"
	StatusCancelled       = "CANCELLED"
	StatusRefundRequested = "REFUND_REQUESTED"
	StatusRefunded        = "REFUNDED"
)

// Actions
const (
	ActionConfirmOrder    = "CONFIRM_ORDER"
	ActionRejectOrder     = "REJECT_ORDER"
	ActionCancelOrder     = "CANCEL_ORDER"
	ActionMarkShipped     = "MARK_SHIPPED"
	ActionConfirmDelivery = "CONFIRM_DELIVERY"
	ActionRequestRefund   = "REQUEST_REFUND"
	ActionProcessRefund   = "PROCESS_REFUND"
	ActionContact         = "CONTACT"
)

// Which party may invoke an action.
const (
	byBuyer  = "buyer"
	bySeller = "seller"
	byEither = "either"
)

type transition struct {
	Action string
	By     string
	To     string
}

var transitions = map[string][]transition{
	StatusPending: {
		{ActionConfirmOrder, bySeller, StatusConfirmed},
		{ActionRejectOrder, bySeller, StatusCancelled},
		{ActionCancelOrder, byBuyer, StatusCancelled},
	},
	StatusConfirmed: {
		{ActionMarkShipped, bySeller, StatusShipped},
		{ActionCancelOrder, byBuyer, StatusCancelled},
	},
	StatusShipped: {
		{ActionConfirmDelivery, byEither, StatusDelivered},
		{ActionRequestRefund, byBuyer, StatusRefundRequested},
	},
	StatusDelivered: {
		{ActionRequestRefund, byBuyer, StatusRefundRequested},
	},
	StatusRefundRequested: {
		{ActionProcessRefund, bySeller, StatusRefunded},
	},
	// CANCELLED and REFUNDED are terminal.
}

var actionLabels = map[string]string{
	ActionConfirmOrder:    "Confirm order",
	ActionRejectOrder:     "Reject order",
	ActionCancelOrder:     "Cancel order",
	ActionMarkShipped:     "Mark as shipped",
	ActionConfirmDelivery: "Confirm delivery",
	ActionRequestRefund:   "Request refund",
	ActionProcessRefund:   "Process refund",
	ActionContact:         "Contact counterparty",
}

var successMessages = map[string]string{
	ActionConfirmOrder:    "Order confirmed",
	ActionRejectOrder:     "Order rejected",
	ActionCancelOrder:     "Order cancelled",
	ActionMarkShipped:     "Order marked as shipped",
	ActionConfirmDelivery: "Delivery confirmed",
	ActionRequestRefund:   "Refund requested",
	ActionProcessRefund:   "Refund processed",
}

// Identity is the minimal view of the current user the lifecycle needs.
type Identity struct {
	UserID string
	Email  string
}

// ActionDescriptor is one action the current party may invoke on an order.
type ActionDescriptor struct {
	Action string `json:"action"`
	Label  string `json:"label"`
	To     string `json:"to,omitempty"` // resulting status; empty for contact
}

var (
	ErrNotParticipant   = errors.New("identity is neither buyer nor seller on this order")
	ErrActionNotAllowed = errors.New("action not allowed for this order status and party")
)

// ValidationError names the missing or invalid form fields. It is returned
// before any storage write happens.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// IsBuyer matches the identity against the order's buyer fields, email
// first, then id.
func IsBuyer(o models.Order, id Identity) bool {
	if id.Email != "" && strings.EqualFold(o.BuyerEmail, id.Email) {
		return true
	}
	return id.UserID != "" && o.BuyerID == id.UserID
}

// IsSeller matches the identity against the order's seller fields.
func IsSeller(o models.Order, id Identity) bool {
	if id.Email != "" && strings.EqualFold(o.SellerEmail, id.Email) {
		return true
	}
	return id.UserID != "" && o.SellerID == id.UserID
}

func isTerminal(status string) bool {
	return status == StatusCancelled || status == StatusRefunded
}

// AvailableActions returns the actions the identity may invoke given the
// order's status, plus the always-available contact pseudo-action for either
// party. Non-participants get nothing; terminal states offer contact only.
func AvailableActions(o models.Order, id Identity) []ActionDescriptor {
	isBuyer := IsBuyer(o, id)
	isSeller := IsSeller(o, id)
	if !isBuyer && !isSeller {
		return []ActionDescriptor{}
	}

	out := []ActionDescriptor{}
	if !isTerminal(o.Status) {
		for _, tr := range transitions[o.Status] {
			if partyMatches(tr.By, isBuyer, isSeller) {
				out = append(out, ActionDescriptor{
					Action: tr.Action,
					Label:  actionLabels[tr.Action],
					To:     tr.To,
				})
			}
		}
	}
	out = append(out, ActionDescriptor{Action: ActionContact, Label: actionLabels[ActionContact]})
	return out
}

func partyMatches(by string, isBuyer, isSeller bool) bool {
	switch by {
	case byBuyer:
		return isBuyer
	case bySeller:
		return isSeller
	case byEither:
		return isBuyer || isSeller
	}
	return false
}

// ActionForm carries every field any action may need; each action validates
// only its own subset.
type ActionForm struct {
	ProcessingTime    string  `json:"processing_time,omitempty"`
	Carrier           string  `json:"carrier,omitempty"`
	TrackingNumber    string  `json:"tracking_number,omitempty"`
	DeliveryDate      string  `json:"delivery_date,omitempty"` // RFC 3339, optional
	Reason            string  `json:"reason,omitempty"`
	RefundType        string  `json:"refund_type,omitempty"`
	RefundReason      string  `json:"refund_reason,omitempty"`
	RefundDescription string  `json:"refund_description,omitempty"`
	RefundAmount      float64 `json:"refund_amount,omitempty"`
	RefundMethod      string  `json:"refund_method,omitempty"`
}

// BuildUpdate validates the form for the given action and returns the
// partial update document to apply. Nothing is written here; callers persist
// the result only after validation passes.
func BuildUpdate(o models.Order, action string, id Identity, form ActionForm) (bson.M, error) {
	tr, err := resolveTransition(o, action, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	set := bson.M{"status": tr.To}

	switch action {
	case ActionConfirmOrder:
		if form.ProcessingTime == "" {
			return nil, &ValidationError{Fields: []string{"processing_time"}}
		}
		set["confirmed_at"] = now
		set["processing_time"] = form.ProcessingTime

	case ActionRejectOrder, ActionCancelOrder:
		if form.Reason == "" {
			return nil, &ValidationError{Fields: []string{"reason"}}
		}
		set["cancelled_at"] = now
		set["cancellation_reason"] = form.Reason

	case ActionMarkShipped:
		missing := []string{}
		if form.Carrier == "" {
			missing = append(missing, "carrier")
		}
		if form.TrackingNumber == "" {
			missing = append(missing, "tracking_number")
		}
		if len(missing) > 0 {
			return nil, &ValidationError{Fields: missing}
		}
		set["shipped_at"] = now
		set["carrier"] = form.Carrier
		set["tracking_number"] = form.TrackingNumber
		if form.DeliveryDate != "" {
			eta, err := time.Parse(time.RFC3339, form.DeliveryDate)
			if err != nil {
				return nil, &ValidationError{Fields: []string{"delivery_date"}}
			}
			set["delivery_date"] = eta
		}

	case ActionConfirmDelivery:
		set["delivered_at"] = now

	case ActionRequestRefund:
		missing := []string{}
		if form.RefundType == "" {
			missing = append(missing, "refund_type")
		}
		if form.RefundReason == "" {
			missing = append(missing, "refund_reason")
		}
		if form.RefundDescription == "" {
			missing = append(missing, "refund_description")
		}
		if len(missing) > 0 {
			return nil, &ValidationError{Fields: missing}
		}
		set["refund_requested_at"] = now
		set["refund_type"] = form.RefundType
		set["refund_reason"] = form.RefundReason
		set["refund_description"] = form.RefundDescription

	case ActionProcessRefund:
		missing := []string{}
		if form.RefundAmount <= 0 || form.RefundAmount > o.TotalPrice {
			missing = append(missing, "refund_amount")
		}
		if form.RefundMethod == "" {
			missing = append(missing, "refund_method")
		}
		if len(missing) > 0 {
			return nil, &ValidationError{Fields: missing}
		}
		set["refunded_at"] = now
		set["refund_amount"] = form.RefundAmount
		set["refund_method"] = form.RefundMethod

	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}

	return set, nil
}

func resolveTransition(o models.Order, action string, id Identity) (transition, error) {
	isBuyer := IsBuyer(o, id)
	isSeller := IsSeller(o, id)
	if !isBuyer && !isSeller {
		return transition{}, ErrNotParticipant
	}
	for _, tr := range transitions[o.Status] {
		if tr.Action == action && partyMatches(tr.By, isBuyer, isSeller) {
			return tr, nil
		}
	}
	return transition{}, ErrActionNotAllowed
}

// SuccessMessage is the user-facing confirmation shown after an action
// completes remotely.
func SuccessMessage(action string) string {
	if msg, ok := successMessages[action]; ok {
		return msg
	}
	return "Order updated"
}
