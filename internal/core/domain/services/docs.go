// Package services holds domain services that work across an order and its parts.
//
// The package includes:
//   - CancellationService: decides cancellability of parts and whole orders, applies
//     the cancellation and decides whether a vendor's commission must be reversed
//
// Services are stateless; the unit of work that loaded the order is responsible for
// exclusive access and for persisting the outcome.
package services
