// Package queries contains read operations over orders and the commission ledger.
// Queries return read models whose unified status is recomputed from part statuses.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves the customer-facing status of one order together
// with the status of each part and whether it can still be cancelled.
type GetOrderStatusQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for a single order.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderStatusQueryResponse is the read model of one order.
type GetOrderStatusQueryResponse struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	Status      order.Status
	Version     int64
	Cancellable bool
	Total       kernel.Money
	Parts       []PartStatusResponse
	Reversals   []CommissionReversalResponse
}

// PartStatusResponse describes one part. Status is normalised.
type PartStatusResponse struct {
	ID          kernel.UUID
	Kind        order.PartKind
	VendorID    *kernel.UUID
	Status      order.Status
	Cancellable bool
	Subtotal    kernel.Money
}

// CommissionReversalResponse is a commission ledger entry of the order.
type CommissionReversalResponse struct {
	PartID   kernel.UUID
	VendorID kernel.UUID
	Amount   kernel.Money
}
