// Package payment models settlement attempts for an order. A Payment is
// stored independently of its Order; the order's payment status only
// follows a successful Payment.
package payment

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewCardPayment or NewCashOnDeliveryPayment constructor")

// CashGateway names the settlement channel of cash-on-delivery payments.
const CashGateway = "cash"

// CardDetails is the non-sensitive card summary returned by the gateway.
type CardDetails struct {
	Last4       string `json:"cardLast4,omitempty"`
	Brand       string `json:"cardBrand,omitempty"`
	ExpiryMonth string `json:"expiryMonth,omitempty"`
	ExpiryYear  string `json:"expiryYear,omitempty"`
}

type Payment struct {
	id        kernel.UUID
	orderID   kernel.UUID
	userID    kernel.UUID
	amount    kernel.Money
	method    order.PaymentMethod
	status    Status
	reference string
	gateway   string
	details   CardDetails
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewCardPayment records a charge the gateway already accepted, so the
// payment starts out successful. The amount must equal the order total.
func NewCardPayment(
	id kernel.UUID,
	o *order.Order,
	method order.PaymentMethod,
	reference string,
	gateway string,
	details CardDetails,
	at time.Time,
) (*Payment, error) {
	if !method.IsCard() {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%s is not a card method", method))
	}
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("gateway reference")
	}

	p, err := newPayment(id, o, method, StatusSuccessful, at)
	if err != nil {
		return nil, err
	}
	p.reference = reference
	p.gateway = gateway
	p.details = details
	return p, nil
}

// NewCashOnDeliveryPayment opens a pending cash payment for the order total.
func NewCashOnDeliveryPayment(id kernel.UUID, o *order.Order, at time.Time) (*Payment, error) {
	p, err := newPayment(id, o, order.MethodCashOnDelivery, StatusPending, at)
	if err != nil {
		return nil, err
	}
	p.gateway = CashGateway
	return p, nil
}

func newPayment(id kernel.UUID, o *order.Order, method order.PaymentMethod, status Status, at time.Time) (*Payment, error) {
	if err := errors.Join(id.Validate(), o.Validate()); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       o.ID(),
		userID:        o.UserID(),
		amount:        o.Total(),
		method:        method,
		status:        status,
		createdAt:     at.UTC(),
		updatedAt:     at.UTC(),
		isConstructed: true,
	}, nil
}

// RestorePayment rebuilds a payment from persistence.
func RestorePayment(
	id, orderID, userID kernel.UUID,
	amount kernel.Money,
	method order.PaymentMethod,
	status Status,
	reference, gateway string,
	details CardDetails,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		userID.Validate(),
		method.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		userID:        userID,
		amount:        amount,
		method:        method,
		status:        status,
		reference:     reference,
		gateway:       gateway,
		details:       details,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID             { return p.id }
func (p *Payment) OrderID() kernel.UUID        { return p.orderID }
func (p *Payment) UserID() kernel.UUID         { return p.userID }
func (p *Payment) Amount() kernel.Money        { return p.amount }
func (p *Payment) Method() order.PaymentMethod { return p.method }
func (p *Payment) Status() Status              { return p.status }
func (p *Payment) Reference() string           { return p.reference }
func (p *Payment) Gateway() string             { return p.gateway }
func (p *Payment) Details() CardDetails        { return p.details }
func (p *Payment) CreatedAt() time.Time        { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time        { return p.updatedAt }

func (p *Payment) IsActive() bool {
	return p.status.IsActive()
}

// SettleCash marks a cash-on-delivery payment as collected. Settling an
// already successful payment is a no-op.
func (p *Payment) SettleCash(at time.Time) error {
	if p.method != order.MethodCashOnDelivery {
		return errs.NewInvalidStateError(fmt.Sprintf("payment method is %s, not cash-on-delivery", p.method))
	}

	switch p.status {
	case StatusSuccessful:
		return nil
	case StatusPending:
		p.status = StatusSuccessful
		p.updatedAt = at.UTC()
		return nil
	case StatusFailed, StatusRefunded:
	}

	return errs.NewInvalidStateError(fmt.Sprintf("payment is %s and cannot be settled", p.status))
}
