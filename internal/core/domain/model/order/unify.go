package order

// Unify computes the single customer-facing status of an order from its parts.
// See UnifyStatuses for the rules.
func Unify(parts []*Part) Status {
	statuses := make([]Status, 0, len(parts))
	for _, p := range parts {
		statuses = append(statuses, p.Status())
	}
	return UnifyStatuses(statuses)
}

// UnifyStatuses aggregates part statuses. The first matching rule wins:
//
//  1. no statuses: placed
//  2. every status is normalised
//  3. all statuses identical: that status
//  4. all cancelled: cancelled_by_customer if any part was customer-cancelled,
//     cancelled otherwise
//  5. some delivered and the rest cancelled: delivered
//  6. otherwise the highest-priority non-terminal status among the parts that are
//     not cancelled; unknown statuses count as placed
//
// The result depends only on the multiset of statuses, so any permutation of the
// input yields the same status.
func UnifyStatuses(statuses []Status) Status {
	if len(statuses) == 0 {
		return Placed
	}

	normalized := make([]Status, len(statuses))
	for i, s := range statuses {
		normalized[i] = Normalize(string(s))
	}

	if allEqual(normalized) {
		return normalized[0]
	}

	var (
		cancelledByCustomer bool
		delivered           int
		cancelled           int
		best                = -1
	)
	for _, s := range normalized {
		switch {
		case s.IsCancelled():
			cancelled++
			cancelledByCustomer = cancelledByCustomer || s == CancelledByCustomer
		case s == Delivered:
			delivered++
		default:
			best = max(best, s.Priority())
		}
	}

	if cancelled == len(normalized) {
		if cancelledByCustomer {
			return CancelledByCustomer
		}
		return Cancelled
	}

	if delivered > 0 && delivered+cancelled == len(normalized) {
		return Delivered
	}

	if status, ok := statusByPriority(best); ok {
		return status
	}
	return Placed
}

func allEqual(statuses []Status) bool {
	for _, s := range statuses[1:] {
		if s != statuses[0] {
			return false
		}
	}
	return true
}

// statusByPriority maps a live, non-terminal priority back to its status.
func statusByPriority(priority int) (Status, bool) {
	for _, s := range []Status{Placed, Processing, Shipped} {
		if s.Priority() == priority {
			return s, true
		}
	}
	return "", false
}
