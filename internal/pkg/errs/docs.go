// Package errs provides the error taxonomy of the laundry service.
//
// Every error type follows the same shape: a sentinel variable, a struct
// carrying details, constructors with and without cause, Error() and an
// Unwrap() returning the sentinel, so callers can branch with errors.Is.
//
// KindOf maps any error chain onto a stable Kind:
//   - ObjectNotFoundError: NotFound
//   - ForbiddenError: Forbidden
//   - InvalidStateError: InvalidState, or InvalidTransition for state machine failures
//   - ConflictError and VersionIsInvalidError: Conflict
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError: Validation
//   - UpstreamError: UpstreamDeclined or UpstreamUnavailable
//
// Adapters translate a Kind into a transport status; the message text is for
// humans only.
package errs
