package http

import (
	"fmt"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/api/servers"
	"marketplace/internal/pkg/errs"

	"github.com/govalues/decimal"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(param string, id openapi_types.UUID) (kernel.UUID, error) {
	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return converted, nil
}

func toOptionalKernelUUID(param string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := toKernelUUID(param, *id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

// idOrNew returns the client-supplied id or a fresh one.
func idOrNew(param string, id *openapi_types.UUID) (kernel.UUID, error) {
	if id == nil {
		return kernel.NewUUID(), nil
	}
	return toKernelUUID(param, *id)
}

func toOpenAPIUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	converted := openapi_types.UUID(id.Bytes())
	return &converted
}

func toPlaceOrderCommand(body servers.NewOrder) (commands.PlaceOrderCommand, error) {
	orderID, err := idOrNew("id", body.Id)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	customerID, err := toKernelUUID("customerId", body.CustomerId)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	parts := make([]commands.PlaceOrderPart, 0, len(body.Parts))
	for i, p := range body.Parts {
		part, partErr := toPlaceOrderPart(fmt.Sprintf("parts[%d]", i), p)
		if partErr != nil {
			return commands.PlaceOrderCommand{}, partErr
		}
		parts = append(parts, part)
	}

	return commands.NewPlaceOrderCommand(orderID, customerID, parts)
}

func toPlaceOrderPart(param string, body servers.NewOrderPart) (commands.PlaceOrderPart, error) {
	id, err := idOrNew(param+".id", body.Id)
	if err != nil {
		return commands.PlaceOrderPart{}, err
	}

	vendorID, err := toOptionalKernelUUID(param+".vendorId", body.VendorId)
	if err != nil {
		return commands.PlaceOrderPart{}, err
	}

	rate := decimal.Zero
	if body.CommissionRate != nil {
		if rate, err = decimal.Parse(*body.CommissionRate); err != nil {
			return commands.PlaceOrderPart{}, errs.NewValueIsInvalidErrorWithCause(param+".commissionRate", err)
		}
	}

	items := make([]commands.PlaceOrderItem, 0, len(body.Items))
	for j, item := range body.Items {
		itemParam := fmt.Sprintf("%s.items[%d]", param, j)

		itemID, idErr := idOrNew(itemParam+".id", item.Id)
		if idErr != nil {
			return commands.PlaceOrderPart{}, idErr
		}

		price, priceErr := kernel.MoneyFromString(item.UnitPrice)
		if priceErr != nil {
			return commands.PlaceOrderPart{}, errs.NewValueIsInvalidErrorWithCause(itemParam+".unitPrice", priceErr)
		}

		items = append(items, commands.PlaceOrderItem{
			ID:        itemID,
			SKU:       item.Sku,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	return commands.PlaceOrderPart{
		ID:             id,
		VendorID:       vendorID,
		CommissionRate: rate,
		Items:          items,
	}, nil
}

func toCancelOrderCommand(orderId servers.OrderId, body servers.CancelOrderRequest) (commands.CancelOrderCommand, error) {
	orderID, err := toKernelUUID("orderId", orderId)
	if err != nil {
		return commands.CancelOrderCommand{}, err
	}

	actor, err := order.ParseActor(string(body.Actor))
	if err != nil {
		return commands.CancelOrderCommand{}, err
	}

	partID, err := toOptionalKernelUUID("partId", body.PartId)
	if err != nil {
		return commands.CancelOrderCommand{}, err
	}

	vendorID, err := toOptionalKernelUUID("vendorId", body.VendorId)
	if err != nil {
		return commands.CancelOrderCommand{}, err
	}

	var reason string
	if body.Reason != nil {
		reason = *body.Reason
	}

	return commands.NewCancelOrderCommand(orderID, actor, partID, vendorID, reason)
}

func toAdvancePartCommand(
	orderId servers.OrderId,
	partId openapi_types.UUID,
	body servers.AdvancePartRequest,
) (commands.AdvancePartCommand, error) {
	orderID, err := toKernelUUID("orderId", orderId)
	if err != nil {
		return commands.AdvancePartCommand{}, err
	}

	partID, err := toKernelUUID("partId", partId)
	if err != nil {
		return commands.AdvancePartCommand{}, err
	}

	actor, err := order.ParseActor(string(body.Actor))
	if err != nil {
		return commands.AdvancePartCommand{}, err
	}

	vendorID, err := toOptionalKernelUUID("vendorId", body.VendorId)
	if err != nil {
		return commands.AdvancePartCommand{}, err
	}

	return commands.NewAdvancePartCommand(orderID, partID, order.Status(body.Status), actor, vendorID)
}

func toOrderStatus(result queries.GetOrderStatusQueryResponse) servers.OrderStatus {
	response := servers.OrderStatus{
		Id:          result.ID.Bytes(),
		CustomerId:  result.CustomerID.Bytes(),
		Status:      result.Status.String(),
		Version:     result.Version,
		Cancellable: result.Cancellable,
		Total:       result.Total.String(),
		Parts:       make([]servers.PartStatus, len(result.Parts)),
		Reversals:   make([]servers.CommissionReversal, len(result.Reversals)),
	}

	for i, p := range result.Parts {
		response.Parts[i] = servers.PartStatus{
			Id:          p.ID.Bytes(),
			Kind:        servers.PartKind(p.Kind),
			VendorId:    toOpenAPIUUID(p.VendorID),
			Status:      p.Status.String(),
			Cancellable: p.Cancellable,
			Subtotal:    p.Subtotal.String(),
		}
	}

	for i, r := range result.Reversals {
		response.Reversals[i] = servers.CommissionReversal{
			PartId:   r.PartID.Bytes(),
			VendorId: r.VendorID.Bytes(),
			Amount:   r.Amount.String(),
		}
	}

	return response
}

func toCancelOrderResult(result commands.CancelOrderResult) (servers.CancelOrderResult, error) {
	refundTotal, err := result.RefundTotal()
	if err != nil {
		return servers.CancelOrderResult{}, err
	}

	commissionTotal, err := result.CommissionTotal()
	if err != nil {
		return servers.CancelOrderResult{}, err
	}

	response := servers.CancelOrderResult{
		OrderId:                       result.OrderID.Bytes(),
		Status:                        result.Status.String(),
		AnyCommissionReversalRequired: result.AnyCommissionReversalRequired,
		RefundTotal:                   refundTotal.String(),
		CommissionTotal:               commissionTotal.String(),
		Outcomes:                      make([]servers.CancellationOutcome, len(result.Outcomes)),
	}

	for i, o := range result.Outcomes {
		response.Outcomes[i] = servers.CancellationOutcome{
			PartId:                     o.PartID.Bytes(),
			VendorId:                   toOpenAPIUUID(o.VendorID),
			Kind:                       servers.PartKind(o.Kind),
			PriorStatus:                o.PriorStatus.String(),
			NewStatus:                  o.NewStatus.String(),
			CommissionReversalRequired: o.CommissionReversalRequired,
			RefundAmount:               o.RefundAmount.String(),
			CommissionAmount:           o.CommissionAmount.String(),
			Message:                    o.Message(),
		}
	}

	return response, nil
}
