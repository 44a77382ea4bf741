// Package kernel holds the value objects shared by every aggregate of the
// laundry domain: UUID identifiers, Money amounts backed by
// shopspring/decimal, and delivery Address.
//
// All of them are immutable and safe for concurrent use. Zero values are
// invalid; use the constructors.
package kernel
