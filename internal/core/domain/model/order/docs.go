// Package order implements the Order aggregate: an immutable snapshot of
// purchased line items plus the mutable fulfillment and settlement state.
//
// Fulfillment follows an explicit transition table (see Status), with
// delivered and cancelled as terminal states. Every status change appends one
// HistoryEntry; history is never rewritten. Payment status is a separate
// axis changed only through MarkPaid and RequestCashOnDelivery.
package order
