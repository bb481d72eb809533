package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// AdvancePartCommandHandler applies a forward transition to one part under a row
// lock. The unified status change it causes is announced by the status watch job.
//
// Example:
//
//	handler := NewAdvancePartCommandHandler(uowFactory)
//	status, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // stage skipped or part already terminal
//	case errors.Is(err, ErrActorIsNotAllowed):
//	    // vendor does not own the part
//	}
type AdvancePartCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvancePartCommandHandler(uowFactory OrderUoWFactory) AdvancePartCommandHandler {
	return AdvancePartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the unified order status after the transition.
func (h AdvancePartCommandHandler) Handle(ctx context.Context, cmd AdvancePartCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	part, err := aggregate.Part(cmd.PartID())
	if err != nil {
		return "", err
	}
	if cmd.Actor() == order.ActorVendor && !part.BelongsTo(*cmd.VendorID()) {
		return "", ErrActorIsNotAllowed
	}

	if err = part.Advance(cmd.Target()); err != nil {
		return "", err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return aggregate.Status(), nil
}
