package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError. It marks a
// caller bug (skipping a stage or leaving a terminal status), not a business condition.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is the lifecycle state of an order part and, through Unify, of a whole order.
//
// State transitions:
//
//	placed ──> processing ──> shipped ──> delivered
//	  │            │
//	  └────────────┴──> cancelled | cancelled_by_customer
//
// Status is string-backed so that legacy or unrecognised values read from storage
// survive Normalize unchanged and degrade gracefully instead of failing.
type Status string

const (
	// Placed is the initial status of every part.
	Placed Status = "placed"

	// Processing indicates the fulfiller has started preparing the part.
	Processing Status = "processing"

	// Shipped indicates the part left the fulfiller. It can no longer be cancelled.
	Shipped Status = "shipped"

	// Delivered is a terminal status.
	Delivered Status = "delivered"

	// Cancelled is a terminal status set when the platform or a vendor cancels.
	Cancelled Status = "cancelled"

	// CancelledByCustomer is a terminal status set when the customer cancels.
	CancelledByCustomer Status = "cancelled_by_customer"
)

// getStatusPriorities returns the fixed aggregation priority of each known status.
// Both cancelled variants share the lowest priority.
func getStatusPriorities() map[Status]int {
	return map[Status]int{
		Cancelled:           0,
		CancelledByCustomer: 0,
		Placed:              1,
		Processing:          2,
		Shipped:             3,
		Delivered:           4,
	}
}

// getStatusAliases maps legacy spellings to canonical statuses.
func getStatusAliases() map[string]Status {
	return map[string]Status{
		"pending":           Placed,
		"confirmed":         Processing,
		"rejected":          Cancelled,
		"cancelled_by_user": CancelledByCustomer,
	}
}

// Normalize maps a raw status string to its canonical Status.
//
// Matching is case-insensitive and ignores surrounding whitespace. Legacy spellings
// are translated (pending→placed, confirmed→processing, rejected→cancelled,
// cancelled_by_user→cancelled_by_customer). Unrecognised strings are returned
// lower-cased and otherwise unchanged; Normalize never fails.
//
// Example:
//
//	order.Normalize("PENDING")  // order.Placed
//	order.Normalize("banana")   // order.Status("banana"), Priority() == 1
func Normalize(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := getStatusAliases()[s]; ok {
		return alias
	}
	return Status(s)
}

// Priority returns the aggregation priority of the status.
//
// The table is fixed: cancelled variants 0, placed 1, processing 2, shipped 3,
// delivered 4. Unknown statuses are ranked like placed, the lowest live priority.
func (s Status) Priority() int {
	if p, ok := getStatusPriorities()[s.normalized()]; ok {
		return p
	}
	return getStatusPriorities()[Placed]
}

// IsKnown reports whether the status (after normalisation) is one of the canonical values.
func (s Status) IsKnown() bool {
	_, ok := getStatusPriorities()[s.normalized()]
	return ok
}

// IsTerminal reports whether no further transition is possible:
// delivered, cancelled and cancelled_by_customer.
func (s Status) IsTerminal() bool {
	n := s.normalized()
	return n == Delivered || n.IsCancelled()
}

// IsCancelled reports whether the status is either cancelled variant.
func (s Status) IsCancelled() bool {
	n := s.normalized()
	return n == Cancelled || n == CancelledByCustomer
}

// IsCancellable reports whether a part in this status may still be cancelled.
func (s Status) IsCancellable() bool {
	n := s.normalized()
	return n == Placed || n == Processing
}

// Validate rejects statuses that are not canonical after normalisation.
// Use it where strict input is required, such as API requests.
func (s Status) Validate() error {
	if !s.IsKnown() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%q is not a valid status", string(s)),
		)
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Process transitions placed → processing.
func (s Status) Process() (Status, error) {
	if s.normalized() != Placed {
		return "", NewInvalidTransitionError(s, Processing)
	}
	return Processing, nil
}

// Ship transitions processing → shipped.
func (s Status) Ship() (Status, error) {
	if s.normalized() != Processing {
		return "", NewInvalidTransitionError(s, Shipped)
	}
	return Shipped, nil
}

// Deliver transitions shipped → delivered.
func (s Status) Deliver() (Status, error) {
	if s.normalized() != Shipped {
		return "", NewInvalidTransitionError(s, Delivered)
	}
	return Delivered, nil
}

// Cancel transitions placed or processing to cancelled_by_customer when byCustomer
// is set and to cancelled otherwise.
func (s Status) Cancel(byCustomer bool) (Status, error) {
	target := Cancelled
	if byCustomer {
		target = CancelledByCustomer
	}
	if !s.IsCancellable() {
		return "", NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// TransitionTo moves to target using the matching transition method.
//
// Returns:
//   - (target, nil) when the transition is legal
//   - ("", *InvalidTransitionError) when it skips a stage, goes backwards,
//     leaves a terminal status or names an unknown target
func (s Status) TransitionTo(target Status) (Status, error) {
	switch target.normalized() {
	case Processing:
		return s.Process()
	case Shipped:
		return s.Ship()
	case Delivered:
		return s.Deliver()
	case Cancelled:
		return s.Cancel(false)
	case CancelledByCustomer:
		return s.Cancel(true)
	default:
		return "", NewInvalidTransitionError(s, target)
	}
}

func (s Status) normalized() Status {
	return Normalize(string(s))
}

// InvalidTransitionError describes a rejected status transition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition from %q to %q", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
