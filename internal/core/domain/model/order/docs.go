// Package order provides the order aggregate of the marketplace together with the
// status model shared by every part of an order.
//
// The package includes:
//   - Status: canonical part/order statuses, their aggregation priority, legacy
//     spelling normalisation and the legal transitions between them
//   - Part and LineItem: fulfilment units (platform or vendor) and their products
//   - Order: the aggregate root owning the parts
//   - Unify: the pure aggregation of part statuses into one customer-facing status
//
// Key business rules:
//   - A part moves forward only: placed -> processing -> shipped -> delivered
//   - Only placed and processing parts can be cancelled
//   - Delivered and both cancelled statuses are terminal
//   - The order status is never stored; it is always recomputed from the parts
package order
