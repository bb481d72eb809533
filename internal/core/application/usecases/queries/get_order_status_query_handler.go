package queries

import (
	"context"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

type (
	// OrderReader loads order aggregates.
	OrderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	}

	// ReversalReader lists commission ledger entries of an order.
	ReversalReader interface {
		ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Reversal, error)
	}
)

// GetOrderStatusQueryHandler builds the order read model from the aggregate, so the
// unified status always follows the aggregation rules rather than the cached column.
type GetOrderStatusQueryHandler struct {
	orders       OrderReader
	reversals    ReversalReader
	cancellation services.CancellationService
}

func NewGetOrderStatusQueryHandler(orders OrderReader, reversals ReversalReader) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{
		orders:       orders,
		reversals:    reversals,
		cancellation: services.NewCancellationService(),
	}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	reversals, err := h.reversals.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	total, err := o.Total()
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	response := GetOrderStatusQueryResponse{
		ID:          o.ID(),
		CustomerID:  o.CustomerID(),
		Status:      o.Status(),
		Version:     o.Version(),
		Cancellable: h.cancellation.CanCancelOrder(o),
		Total:       total,
		Parts:       make([]PartStatusResponse, 0, len(o.Parts())),
		Reversals:   make([]CommissionReversalResponse, 0, len(reversals)),
	}

	for _, p := range o.Parts() {
		subtotal, subtotalErr := p.Subtotal()
		if subtotalErr != nil {
			return GetOrderStatusQueryResponse{}, subtotalErr
		}

		response.Parts = append(response.Parts, PartStatusResponse{
			ID:          p.ID(),
			Kind:        p.Kind(),
			VendorID:    p.VendorID(),
			Status:      order.Normalize(p.Status().String()),
			Cancellable: h.cancellation.CanCancel(p),
			Subtotal:    subtotal,
		})
	}

	for _, r := range reversals {
		response.Reversals = append(response.Reversals, CommissionReversalResponse{
			PartID:   r.PartID(),
			VendorID: r.VendorID(),
			Amount:   r.Amount(),
		})
	}

	return response, nil
}
