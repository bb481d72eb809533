// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifier for orders, parts, line items, customers and vendors
//   - Money: non-negative decimal amounts for prices, refunds and commissions
//
// Both are immutable and safe for concurrent use.
package kernel
