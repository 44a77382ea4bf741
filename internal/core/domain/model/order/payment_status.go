package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// PaymentStatus is the settlement state of an order, orthogonal to Status.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

func getPaymentStatusTokens() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

func ParsePaymentStatus(token string) (PaymentStatus, error) {
	for s, t := range getPaymentStatusTokens() {
		if t == token {
			return s, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a recognized payment status", token),
	)
}

func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusTokens()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if token, ok := getPaymentStatusTokens()[s]; ok {
		return token
	}
	return "unknown"
}

// PaymentMethod is how the customer intends to settle.
type PaymentMethod string

const (
	MethodCreditCard     PaymentMethod = "credit-card"
	MethodDebitCard      PaymentMethod = "debit-card"
	MethodCashOnDelivery PaymentMethod = "cash-on-delivery"
	MethodWallet         PaymentMethod = "wallet"
)

// DefaultPaymentMethod applies when checkout does not name one.
const DefaultPaymentMethod = MethodCreditCard

func ParsePaymentMethod(token string) (PaymentMethod, error) {
	m := PaymentMethod(token)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodCashOnDelivery, MethodWallet:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%q is not a valid payment method", string(m)))
}

func (m PaymentMethod) String() string {
	return string(m)
}

// IsCard reports whether the method settles immediately through the card gateway.
func (m PaymentMethod) IsCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}
