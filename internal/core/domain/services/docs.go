// Package services holds domain services that span aggregates.
//
// AuthorizationPolicy is the single place deciding what an actor may do with
// an order, a payment or a feedback. Every command and query consults it;
// listing queries take their SQL filter from ListScope so that counting and
// pagination only ever see permitted rows.
package services
