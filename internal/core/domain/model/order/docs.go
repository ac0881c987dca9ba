// Package order provides the Order aggregate of the storefront: the order itself, its frozen
// line item snapshots, and the two state machines that govern it.
//
// The package includes:
//   - Order: the aggregate root, created from a non-empty cart and never physically deleted
//   - LineItem: an immutable snapshot of product name, unit price and quantity at purchase time
//   - Status: the fulfillment state machine (PENDING, CONFIRMED, PROCESSING, SHIPPED, DELIVERED, CANCELLED)
//   - PaymentStatus: PENDING, COMPLETED or FAILED; never regresses from COMPLETED
//   - PaymentMethod and CustomerInfo: the checkout details, with COD specific validation
//   - Transition: a pure function computing the next order state plus the side effects to run
//
// Key business rules:
//   - The grand total always equals the sum of line subtotals plus the shipping fee
//   - An order has at least one line item
//   - DELIVERED and CANCELLED are terminal
//   - Stock for a cancelled order is restored exactly once
//   - deliveryConfirmedAt is set only together with DELIVERED and a COMPLETED payment
package order
