package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CancelOrderResult is the committed outcome of a cancellation together with the
// unified order status recomputed afterwards.
type CancelOrderResult struct {
	services.OrderCancellationOutcome

	Status order.Status
}

// CancelOrderCommandHandler runs the cancellation workflow on an order loaded
// under a row lock. Commission reversals are written to the ledger in the same
// transaction as the part statuses; events are published only after commit.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory, publisher, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNotCancellable):
//	    // "order part cannot be cancelled: already shipped"
//	case errors.Is(err, errs.ErrVersionIsInvalid):
//	    // a concurrent request won; reload and retry
//	case err == nil:
//	    for _, o := range result.Outcomes {
//	        fmt.Println(o.Message())
//	    }
//	}
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	service    services.CancellationService
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		service:    services.NewCancellationService(),
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelOrderResult{}, err
	}

	req, err := services.NewCancellationRequest(cmd.Actor(), cmd.TargetPartID(), cmd.Reason())
	if err != nil {
		return CancelOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	ledger := uow.CommissionLedger()

	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}

	if err = h.authorize(aggregate, cmd); err != nil {
		return CancelOrderResult{}, err
	}

	outcome, err := h.service.CancelOrder(aggregate, req)
	if err != nil {
		return CancelOrderResult{}, err
	}

	for _, o := range outcome.Outcomes {
		if !o.CommissionReversalRequired || o.VendorID == nil {
			continue
		}
		reversal, reversalErr := commission.NewReversal(
			kernel.NewUUID(), aggregate.ID(), o.PartID, *o.VendorID, o.CommissionAmount, cmd.Reason(),
		)
		if reversalErr != nil {
			return CancelOrderResult{}, reversalErr
		}
		if err = ledger.Reverse(ctx, reversal); err != nil {
			return CancelOrderResult{}, err
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return CancelOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	result := CancelOrderResult{
		OrderCancellationOutcome: outcome,
		Status:                   aggregate.Status(),
	}
	h.publish(ctx, result, cmd.Reason())

	return result, nil
}

func (h CancelOrderCommandHandler) authorize(aggregate *order.Order, cmd CancelOrderCommand) error {
	if cmd.Actor() != order.ActorVendor {
		return nil
	}

	part, err := aggregate.Part(*cmd.TargetPartID())
	if err != nil {
		return err
	}
	if !part.BelongsTo(*cmd.VendorID()) {
		return ErrActorIsNotAllowed
	}
	return nil
}

// publish reports failures in the log only; the cancellation is already committed.
// The unified status change is left to the status watch job.
func (h CancelOrderCommandHandler) publish(ctx context.Context, result CancelOrderResult, reason string) {
	now := time.Now().UTC()

	for _, o := range result.Outcomes {
		event := ports.PartCancelledEvent{
			OrderID:            result.OrderID,
			PartID:             o.PartID,
			VendorID:           o.VendorID,
			Kind:               o.Kind,
			Actor:              o.Actor,
			PriorStatus:        o.PriorStatus,
			NewStatus:          o.NewStatus,
			UnifiedStatus:      result.Status,
			CommissionReversed: o.CommissionReversalRequired,
			RefundAmount:       o.RefundAmount,
			CommissionAmount:   o.CommissionAmount,
			Reason:             reason,
			Message:            o.Message(),
			OccurredAt:         now,
		}
		if err := h.publisher.PublishPartCancelled(ctx, event); err != nil {
			h.logger.ErrorContext(ctx, "Failed to publish part cancellation",
				"order_id", result.OrderID.String(), "part_id", o.PartID.String(), "error", err)
		}
	}
}
