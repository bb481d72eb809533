package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// PendingAnnouncement is an order whose cached unified status differs from the
// last one announced to the notification layer.
type PendingAnnouncement struct {
	OrderID      kernel.UUID
	Announced    order.Status
	Cached       order.Status
	PartStatuses []order.Status
}

// StatusAnnouncements tracks which unified status was last published per order so
// every change is announced once, no matter which process made it.
type StatusAnnouncements interface {
	// ListPending returns up to limit orders with an unannounced status change,
	// least recently updated first.
	ListPending(ctx context.Context, limit int) ([]PendingAnnouncement, error)

	// Claim records current as announced for the order. It reports false when the
	// row no longer holds the announced and cached statuses of pending.
	Claim(ctx context.Context, pending PendingAnnouncement, current order.Status) (bool, error)

	// Release restores previous as the announced status of a claim whose event
	// could not be published, so the change is picked up again.
	Release(ctx context.Context, orderID kernel.UUID, claimed, previous order.Status) error
}
