package payment

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the outcome of one settlement attempt.
type Status string

const (
	StatusPending    Status = "pending"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

func ParseStatus(token string) (Status, error) {
	s := Status(token)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusSuccessful, StatusFailed, StatusRefunded:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment status is invalid", fmt.Errorf("%q is not a valid payment status", string(s)))
}

func (s Status) String() string {
	return string(s)
}

// IsActive reports whether the attempt still counts against the one-active-payment rule.
func (s Status) IsActive() bool {
	return s != StatusFailed
}
