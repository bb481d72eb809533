package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// PartCancelledEvent is published once per cancelled part after the cancellation
// has been committed.
type PartCancelledEvent struct {
	OrderID            kernel.UUID
	PartID             kernel.UUID
	VendorID           *kernel.UUID
	Kind               order.PartKind
	Actor              order.Actor
	PriorStatus        order.Status
	NewStatus          order.Status
	UnifiedStatus      order.Status
	CommissionReversed bool
	RefundAmount       kernel.Money
	CommissionAmount   kernel.Money
	Reason             string
	Message            string
	OccurredAt         time.Time
}

// StatusChangedEvent is published when the unified status of an order changes.
type StatusChangedEvent struct {
	OrderID    kernel.UUID
	Previous   order.Status
	Current    order.Status
	OccurredAt time.Time
}

// EventPublisher informs the notification layer. Publishing happens outside the
// database transaction; implementations must be safe for concurrent use.
type EventPublisher interface {
	PublishPartCancelled(ctx context.Context, event PartCancelledEvent) error
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
