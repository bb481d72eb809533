package services

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrNotCancellable is returned when a cancellation targets a part that has already
	// shipped, been delivered or been cancelled. It is an expected business outcome.
	ErrNotCancellable = errors.New("order part cannot be cancelled")

	ErrCancellationRequestIsNotConstructed = errors.New(
		"CancellationRequest must be created via NewCancellationRequest constructor",
	)
)

// NotCancellableError carries the part and the status that blocked the cancellation.
type NotCancellableError struct {
	PartID kernel.UUID
	Status order.Status
}

func NewNotCancellableError(partID kernel.UUID, status order.Status) *NotCancellableError {
	return &NotCancellableError{PartID: partID, Status: status}
}

func (e *NotCancellableError) Error() string {
	if e.Status == "" {
		return ErrNotCancellable.Error()
	}
	return fmt.Sprintf("%s: already %s", ErrNotCancellable, order.Normalize(string(e.Status)))
}

func (e *NotCancellableError) Unwrap() error {
	return ErrNotCancellable
}

// CancellationRequest is what an actor asks for: either one specific part
// (TargetPartID set) or every part that can still be cancelled.
type CancellationRequest struct {
	actor        order.Actor
	targetPartID *kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewCancellationRequest validates the actor and the optional target part.
func NewCancellationRequest(actor order.Actor, targetPartID *kernel.UUID, reason string) (CancellationRequest, error) {
	req := CancellationRequest{
		actor:  actor,
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := actor.Validate(); err != nil {
		return CancellationRequest{}, err
	}

	if targetPartID != nil {
		if err := targetPartID.Validate(); err != nil {
			return CancellationRequest{}, err
		}
		id := *targetPartID
		req.targetPartID = &id
	}

	return req, nil
}

func (r CancellationRequest) Validate() error {
	return r.guard.Validate(ErrCancellationRequestIsNotConstructed)
}

func (r CancellationRequest) Actor() order.Actor {
	return r.actor
}

// TargetPartID returns the requested part, nil for a whole-order cancellation.
func (r CancellationRequest) TargetPartID() *kernel.UUID {
	if r.targetPartID == nil {
		return nil
	}
	id := *r.targetPartID
	return &id
}

func (r CancellationRequest) Reason() string {
	return r.reason
}

// CancellationOutcome describes what happened to a single part. It is what the
// persistence layer applies and what the notification layer announces.
type CancellationOutcome struct {
	PartID      kernel.UUID
	VendorID    *kernel.UUID
	Kind        order.PartKind
	Actor       order.Actor
	PriorStatus order.Status
	NewStatus   order.Status

	// CommissionReversalRequired is set when a customer cancels a vendor part the
	// vendor had already started processing.
	CommissionReversalRequired bool

	// RefundAmount is the part's subtotal over items not already cancelled.
	RefundAmount kernel.Money

	// CommissionAmount is RefundAmount × commission rate when a reversal is due, zero otherwise.
	CommissionAmount kernel.Money
}

// Message renders the outcome for the customer or vendor facing the cancellation.
func (o CancellationOutcome) Message() string {
	switch {
	case o.CommissionReversalRequired:
		return "cancelled, commission reversed"
	case o.Actor == order.ActorVendor:
		return "cancelled by vendor, no reversal"
	case o.Actor == order.ActorAdmin:
		return "cancelled by platform"
	default:
		return "cancelled"
	}
}

// OrderCancellationOutcome aggregates the part outcomes of one cancellation request.
type OrderCancellationOutcome struct {
	OrderID                       kernel.UUID
	Outcomes                      []CancellationOutcome
	AnyCommissionReversalRequired bool
}

// RefundTotal sums the refund amounts of every cancelled part.
func (o OrderCancellationOutcome) RefundTotal() (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, outcome := range o.Outcomes {
		var err error
		if total, err = total.Add(outcome.RefundAmount); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// CommissionTotal sums the commission to reverse across all outcomes.
func (o OrderCancellationOutcome) CommissionTotal() (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, outcome := range o.Outcomes {
		var err error
		if total, err = total.Add(outcome.CommissionAmount); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// CancellationService decides whether parts of a split order can be cancelled,
// executes the cancellation and decides whether the platform commission on the
// part must be reversed.
//
// Business rules:
//   - Only placed and processing parts can be cancelled
//   - A customer cancellation yields cancelled_by_customer, any other actor cancelled
//   - Commission is reversed only when a customer cancels a vendor part that had
//     progressed beyond placed
//   - The unified order status is not stored; callers recompute it with order.Unify
//
// CancellationService holds no state. Callers must give it exclusive access to
// the order for the duration of a call.
//
// Example usage:
//
//	svc := services.NewCancellationService()
//	req, _ := services.NewCancellationRequest(order.ActorCustomer, nil, "changed my mind")
//
//	result, err := svc.CancelOrder(o, req)
//	if errors.Is(err, services.ErrNotCancellable) {
//	    // everything already shipped
//	    return
//	}
//	if result.AnyCommissionReversalRequired {
//	    // record reversal entries
//	}
type CancellationService struct{}

func NewCancellationService() CancellationService {
	return CancellationService{}
}

// CanCancel reports whether the part is still placed or processing.
func (s CancellationService) CanCancel(part *order.Part) bool {
	return part.Validate() == nil && part.CanCancel()
}

// CanCancelOrder reports whether at least one part of the order can be cancelled.
func (s CancellationService) CanCancelOrder(o *order.Order) bool {
	if o.Validate() != nil {
		return false
	}
	for _, p := range o.Parts() {
		if s.CanCancel(p) {
			return true
		}
	}
	return false
}

// CancelPart cancels a single part.
//
// Returns:
//   - CancellationOutcome: prior and new status, commission decision and amounts
//   - error: *NotCancellableError when the part is shipped, delivered or already
//     cancelled; the part is left unchanged in that case
func (s CancellationService) CancelPart(part *order.Part, req CancellationRequest) (CancellationOutcome, error) {
	if err := errors.Join(part.Validate(), req.Validate()); err != nil {
		return CancellationOutcome{}, err
	}

	outcome, err := s.prepare(part, req)
	if err != nil {
		return CancellationOutcome{}, err
	}

	return s.apply(part, outcome)
}

// CancelOrder cancels the requested part or, when the request has no target,
// every part that can still be cancelled. Parts that cannot are skipped.
//
// Returns:
//   - *errs.ObjectNotFoundError when the target part does not belong to the order
//   - *NotCancellableError when the target part, or every part, is past cancellation
//
// No part is modified when an error is returned.
func (s CancellationService) CancelOrder(o *order.Order, req CancellationRequest) (OrderCancellationOutcome, error) {
	if err := errors.Join(o.Validate(), req.Validate()); err != nil {
		return OrderCancellationOutcome{}, err
	}

	targets, err := s.selectTargets(o, req)
	if err != nil {
		return OrderCancellationOutcome{}, err
	}

	prepared := make([]CancellationOutcome, 0, len(targets))
	for _, p := range targets {
		outcome, err := s.prepare(p, req)
		if err != nil {
			return OrderCancellationOutcome{}, err
		}
		prepared = append(prepared, outcome)
	}

	result := OrderCancellationOutcome{
		OrderID:  o.ID(),
		Outcomes: make([]CancellationOutcome, 0, len(targets)),
	}
	for i, p := range targets {
		outcome, err := s.apply(p, prepared[i])
		if err != nil {
			return OrderCancellationOutcome{}, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		result.AnyCommissionReversalRequired = result.AnyCommissionReversalRequired ||
			outcome.CommissionReversalRequired
	}

	return result, nil
}

func (s CancellationService) selectTargets(o *order.Order, req CancellationRequest) ([]*order.Part, error) {
	if target := req.TargetPartID(); target != nil {
		part, err := o.Part(*target)
		if err != nil {
			return nil, err
		}
		if !s.CanCancel(part) {
			return nil, NewNotCancellableError(part.ID(), part.Status())
		}
		return []*order.Part{part}, nil
	}

	var (
		targets []*order.Part
		blocked *order.Part
	)
	for _, p := range o.Parts() {
		if s.CanCancel(p) {
			targets = append(targets, p)
			continue
		}
		if blocked == nil || p.Status().Priority() > blocked.Status().Priority() {
			blocked = p
		}
	}

	if len(targets) == 0 {
		return nil, NewNotCancellableError(blocked.ID(), blocked.Status())
	}
	return targets, nil
}

// prepare computes the outcome without touching the part.
func (s CancellationService) prepare(part *order.Part, req CancellationRequest) (CancellationOutcome, error) {
	if !s.CanCancel(part) {
		return CancellationOutcome{}, NewNotCancellableError(part.ID(), part.Status())
	}

	prior := order.Normalize(string(part.Status()))
	reversal := req.Actor() == order.ActorCustomer && part.IsVendor() && prior != order.Placed

	refund, err := part.RefundableSubtotal()
	if err != nil {
		return CancellationOutcome{}, err
	}

	commission := kernel.ZeroMoney()
	if reversal {
		if commission, err = refund.MulRate(part.CommissionRate()); err != nil {
			return CancellationOutcome{}, err
		}
	}

	return CancellationOutcome{
		PartID:                     part.ID(),
		VendorID:                   part.VendorID(),
		Kind:                       part.Kind(),
		Actor:                      req.Actor(),
		PriorStatus:                prior,
		CommissionReversalRequired: reversal,
		RefundAmount:               refund,
		CommissionAmount:           commission,
	}, nil
}

func (s CancellationService) apply(part *order.Part, outcome CancellationOutcome) (CancellationOutcome, error) {
	if _, err := part.Cancel(outcome.Actor == order.ActorCustomer); err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			return CancellationOutcome{}, NewNotCancellableError(part.ID(), part.Status())
		}
		return CancellationOutcome{}, err
	}

	outcome.NewStatus = part.Status()
	return outcome, nil
}

