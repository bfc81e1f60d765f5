// Package kernel provides the shared value objects of the storefront domain.
//
// The package includes:
//   - UUID: identifier for orders, products, users and ledger entries
//   - Money: a non-negative decimal amount used for prices, totals and costs
//
// Both are immutable and validated at construction, so the aggregates built on top of
// them only ever hold well-formed values.
package kernel
