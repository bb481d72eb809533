package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler persists a freshly split order. Every part starts in
// placed status.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the order aggregate from the command and adds it in one transaction.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := buildOrder(cmd)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildOrder(cmd PlaceOrderCommand) (*order.Order, error) {
	requested := cmd.Parts()
	parts := make([]*order.Part, 0, len(requested))

	for _, p := range requested {
		items := make([]*order.LineItem, 0, len(p.Items))
		for _, i := range p.Items {
			item, err := order.NewLineItem(i.ID, i.SKU, i.Quantity, i.UnitPrice)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		var (
			part *order.Part
			err  error
		)
		if p.VendorID == nil {
			part, err = order.NewAdminPart(p.ID, items)
		} else {
			part, err = order.NewVendorPart(p.ID, *p.VendorID, p.CommissionRate, items)
		}
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return order.NewOrder(cmd.OrderID(), cmd.CustomerID(), parts)
}
