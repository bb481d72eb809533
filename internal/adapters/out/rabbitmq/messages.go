package rabbitmq

import (
	"time"

	"marketplace/internal/core/ports"
)

// Queue names. Messages go through the default exchange with the queue name as
// routing key.
const (
	PartCancelledQueue      = "order.part.cancelled"
	CommissionReversedQueue = "order.commission.reversed"
	StatusChangedQueue      = "order.status.changed"
)

// PartCancelledMessage is the body published to PartCancelledQueue.
type PartCancelledMessage struct {
	EventType          string    `json:"eventType"`
	OrderID            string    `json:"orderId"`
	PartID             string    `json:"partId"`
	VendorID           *string   `json:"vendorId,omitempty"`
	Kind               string    `json:"kind"`
	Actor              string    `json:"actor"`
	PriorStatus        string    `json:"priorStatus"`
	NewStatus          string    `json:"newStatus"`
	UnifiedStatus      string    `json:"unifiedStatus"`
	CommissionReversed bool      `json:"commissionReversed"`
	RefundAmount       string    `json:"refundAmount"`
	CommissionAmount   string    `json:"commissionAmount"`
	Reason             string    `json:"reason,omitempty"`
	Message            string    `json:"message"`
	Timestamp          time.Time `json:"timestamp"`
}

// CommissionReversedMessage is the body published to CommissionReversedQueue for
// customer cancellations of vendor parts that were already in progress.
type CommissionReversedMessage struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	PartID    string    `json:"partId"`
	VendorID  string    `json:"vendorId"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusChangedMessage is the body published to StatusChangedQueue.
type StatusChangedMessage struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	Previous  string    `json:"previous"`
	Current   string    `json:"current"`
	Timestamp time.Time `json:"timestamp"`
}

func partCancelledMessage(event ports.PartCancelledEvent) PartCancelledMessage {
	msg := PartCancelledMessage{
		EventType:          "OrderPartCancelled",
		OrderID:            event.OrderID.String(),
		PartID:             event.PartID.String(),
		Kind:               event.Kind.String(),
		Actor:              event.Actor.String(),
		PriorStatus:        event.PriorStatus.String(),
		NewStatus:          event.NewStatus.String(),
		UnifiedStatus:      event.UnifiedStatus.String(),
		CommissionReversed: event.CommissionReversed,
		RefundAmount:       event.RefundAmount.String(),
		CommissionAmount:   event.CommissionAmount.String(),
		Reason:             event.Reason,
		Message:            event.Message,
		Timestamp:          timestamp(event.OccurredAt),
	}
	if event.VendorID != nil {
		vendorID := event.VendorID.String()
		msg.VendorID = &vendorID
	}
	return msg
}

func commissionReversedMessage(event ports.PartCancelledEvent) CommissionReversedMessage {
	msg := CommissionReversedMessage{
		EventType: "OrderCommissionReversed",
		OrderID:   event.OrderID.String(),
		PartID:    event.PartID.String(),
		Amount:    event.CommissionAmount.String(),
		Timestamp: timestamp(event.OccurredAt),
	}
	if event.VendorID != nil {
		msg.VendorID = event.VendorID.String()
	}
	return msg
}

func statusChangedMessage(event ports.StatusChangedEvent) StatusChangedMessage {
	return StatusChangedMessage{
		EventType: "OrderStatusChanged",
		OrderID:   event.OrderID.String(),
		Previous:  event.Previous.String(),
		Current:   event.Current.String(),
		Timestamp: timestamp(event.OccurredAt),
	}
}

func timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
