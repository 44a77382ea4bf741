package errs

import "errors"

// Kind is the stable classification callers branch on.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidState
	KindInvalidTransition
	KindConflict
	KindValidation
	KindUpstreamDeclined
	KindUpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindUpstreamDeclined:
		return "upstream_declined"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindInternal:
		return "internal"
	}
	return "internal"
}

// KindOf classifies err by the first sentinel found in its chain.
// A joined validation error is reported as KindValidation.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		if upstream.Declined {
			return KindUpstreamDeclined
		}
		return KindUpstreamUnavailable
	}

	switch {
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrConflict), errors.Is(err, ErrVersionIsInvalid):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	}

	return KindInternal
}
