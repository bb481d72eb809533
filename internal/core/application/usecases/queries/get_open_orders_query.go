package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// MaxOpenOrdersLimit caps a single page of open orders.
const MaxOpenOrdersLimit = 500

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery lists orders that are not yet delivered or cancelled, oldest first.
//
// Example:
//
//	query, err := NewGetOpenOrdersQuery(100)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewGetOpenOrdersQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s is %s (%v)\n", o.ID, o.Status, o.PartStatuses)
//	}
type GetOpenOrdersQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query returning at most limit orders.
func NewGetOpenOrdersQuery(limit int) (GetOpenOrdersQuery, error) {
	if limit < 1 || limit > MaxOpenOrdersLimit {
		return GetOpenOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOpenOrdersLimit)
	}

	return GetOpenOrdersQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

func (q GetOpenOrdersQuery) Limit() int {
	return q.limit
}

// GetOpenOrdersQueryResponse is one row of the open orders listing.
// PartStatuses are normalised and in checkout order.
type GetOpenOrdersQueryResponse struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	Status       order.Status
	PartStatuses []order.Status
	CreatedAt    time.Time
}
