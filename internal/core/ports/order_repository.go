// Package ports defines the contracts between the order domain and infrastructure:
// persistence of orders and the commission ledger, the unit of work spanning them
// and the publisher that informs the notification layer.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates together
// with their parts and line items.
type OrderRepository interface {
	// Add persists a new order aggregate with all its parts and line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists part statuses of an existing order.
	// The stored version must equal aggregate.Version(); it is incremented on success.
	// A mismatch returns *errs.VersionIsInvalidError and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns *errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
	// Cancellation loads orders through it so concurrent requests serialise.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListOpen retrieves up to limit orders whose unified status is not terminal,
	// oldest first.
	//
	// Example:
	//   open, err := repo.ListOpen(ctx, 500)
	//   if err != nil {
	//       return fmt.Errorf("failed to list open orders: %w", err)
	//   }
	//   for _, o := range open {
	//       fmt.Printf("%s is %s\n", o.ID(), o.Status())
	//   }
	ListOpen(ctx context.Context, limit int) ([]*order.Order, error)
}
