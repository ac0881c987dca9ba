// Package kernel provides the shared value objects of the storefront order core.
//
// The package includes:
//   - UUID: identifier for users, products, carts and orders
//   - Money: a non-negative decimal amount used for unit prices, fees and totals
//
// Both are immutable and safe for concurrent use. Their zero values are invalid and are
// rejected by Validate, so aggregates can tell a missing value from a constructed one.
package kernel
