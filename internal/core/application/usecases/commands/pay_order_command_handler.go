package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

const (
	// DefaultChargeTimeout bounds a gateway charge when the handler is built
	// with a zero timeout.
	DefaultChargeTimeout = 15 * time.Second

	chargeCurrency = "usd"
)

// PaymentResult is the outcome of a settlement command.
type PaymentResult struct {
	Payment *payment.Payment
	Order   *order.Order
}

// PayOrderCommandHandler settles an order by card.
//
// The order row is locked for the whole charge, so two concurrent payments
// of one order serialize and the second sees a paid order. The order id is
// the gateway idempotency key: a retry after a lost commit cannot charge
// twice. The Payment is written before the Order.
type PayOrderCommandHandler struct {
	uowFactory    UoWFactory
	policy        services.AuthorizationPolicy
	gateway       ports.CardGateway
	events        ports.OrderEventPublisher
	chargeTimeout time.Duration
}

func NewPayOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	gateway ports.CardGateway,
	events ports.OrderEventPublisher,
	chargeTimeout time.Duration,
) PayOrderCommandHandler {
	if chargeTimeout <= 0 {
		chargeTimeout = DefaultChargeTimeout
	}
	return PayOrderCommandHandler{
		uowFactory:    uowFactory,
		policy:        policy,
		gateway:       gateway,
		events:        events,
		chargeTimeout: chargeTimeout,
	}
}

// Handle fails with:
//   - errs.ErrObjectNotFound if the order does not exist
//   - errs.ErrForbidden unless the actor owns the order
//   - errs.ErrConflict if the order is paid or has an active payment
//   - errs.ErrInvalidState if the order is cancelled
//   - errs.UpstreamError on decline or gateway failure, writing nothing
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (PaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return PaymentResult{}, err
	}

	actor := cmd.Actor()
	if err = h.policy.Authorize(actor, services.ActionPay, o); err != nil {
		return PaymentResult{}, err
	}

	if err = o.ValidateCanPay(); err != nil {
		return PaymentResult{}, err
	}

	active, err := paymentRepo.FindActiveByOrder(ctx, o.ID())
	if err != nil {
		return PaymentResult{}, err
	}
	if active != nil {
		return PaymentResult{}, errs.NewConflictError("order already has an active payment")
	}

	charge, err := h.charge(ctx, o, cmd.Token())
	if err != nil {
		return PaymentResult{}, err
	}

	now := time.Now()
	p, err := payment.NewCardPayment(
		cmd.PaymentID(),
		o,
		cardMethod(cmd.Method(), o),
		charge.Reference,
		charge.Gateway,
		payment.CardDetails{
			Last4:       charge.Last4,
			Brand:       charge.Brand,
			ExpiryMonth: charge.ExpiryMonth,
			ExpiryYear:  charge.ExpiryYear,
		},
		now,
	)
	if err != nil {
		return PaymentResult{}, err
	}

	if err = paymentRepo.Add(ctx, p); err != nil {
		return PaymentResult{}, err
	}

	if err = o.MarkPaid(p.ID(), actor.ID(), now); err != nil {
		return PaymentResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return PaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PaymentResult{}, err
	}

	publish(ctx, h.events, orderChanged(o, ports.OrderPaid, actor.ID(), now))
	return PaymentResult{Payment: p, Order: o}, nil
}

func (h *PayOrderCommandHandler) charge(ctx context.Context, o *order.Order, token string) (ports.ChargeResult, error) {
	chargeCtx, cancel := context.WithTimeout(ctx, h.chargeTimeout)
	defer cancel()

	res, err := h.gateway.Charge(chargeCtx, ports.ChargeRequest{
		AmountMinor:    o.Total().MinorUnits(),
		Currency:       chargeCurrency,
		Token:          token,
		IdempotencyKey: o.ID().String(),
	})
	if err != nil {
		var upstream *errs.UpstreamError
		if errors.As(err, &upstream) {
			return ports.ChargeResult{}, err
		}
		return ports.ChargeResult{}, errs.NewUpstreamUnavailableError("card gateway", err)
	}
	return res, nil
}

func cardMethod(requested order.PaymentMethod, o *order.Order) order.PaymentMethod {
	if requested != "" {
		return requested
	}
	if o.PaymentMethod().IsCard() {
		return o.PaymentMethod()
	}
	return order.DefaultPaymentMethod
}
