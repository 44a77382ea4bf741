package queries

import (
	"context"
	"database/sql"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetPaymentByOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AuthorizationPolicy
}

func NewGetPaymentByOrderQueryHandler(db *gorm.DB, policy services.AuthorizationPolicy) GetPaymentByOrderQueryHandler {
	return GetPaymentByOrderQueryHandler{db: db, policy: policy}
}

// Handle returns the order's active payment, or its latest failed attempt
// when none is active. NotFound when the order or any payment is missing.
func (h GetPaymentByOrderQueryHandler) Handle(ctx context.Context, query GetPaymentByOrderQuery) (PaymentView, error) {
	if err := query.Validate(); err != nil {
		return PaymentView{}, err
	}

	head, err := loadOrderHead(ctx, h.db, query.OrderID())
	if err != nil {
		return PaymentView{}, err
	}

	if !h.policy.Allows(query.Actor(), services.ActionViewPayment, head.facts()) {
		return PaymentView{}, errs.NewForbiddenError(string(services.ActionViewPayment), "order "+head.ID.String())
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, user_id, amount, method, status, reference, gateway,
			card_last4, card_brand, expiry_month, expiry_year, created_at, updated_at
		FROM payments
		WHERE order_id = ?
		ORDER BY (status = ?), created_at DESC
		LIMIT 1
	`, query.OrderID().Bytes(), payment.StatusFailed.String()).Row()

	var (
		view                PaymentView
		id, orderID, userID uuid.UUID
		amount              decimal.Decimal
		method, status      string
	)
	err = row.Scan(
		&id, &orderID, &userID, &amount, &method, &status, &view.Reference, &view.Gateway,
		&view.CardLast4, &view.CardBrand, &view.ExpiryMonth, &view.ExpiryYear, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PaymentView{}, errs.NewObjectNotFoundError("payment for order", query.OrderID().String())
		}
		return PaymentView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return PaymentView{}, err
	}
	if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return PaymentView{}, err
	}
	if view.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return PaymentView{}, err
	}
	if view.Amount, err = kernel.NewMoney(amount); err != nil {
		return PaymentView{}, err
	}
	view.Method = order.PaymentMethod(method)
	view.Status = payment.Status(status)
	return view, nil
}
