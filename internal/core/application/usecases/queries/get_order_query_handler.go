package queries

import (
	"context"

	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler serves single-order reads. A missing order is
// NotFound; an existing one the actor may not read is Forbidden.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AuthorizationPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB, policy services.AuthorizationPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	view, err := loadOrder(ctx, h.db, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	if !h.policy.Allows(query.Actor(), services.ActionRead, view.facts()) {
		return OrderView{}, errs.NewForbiddenError(string(services.ActionRead), "order "+view.ID.String())
	}
	return view, nil
}

// HandleHistory returns the history oldest first.
func (h GetOrderQueryHandler) HandleHistory(ctx context.Context, query GetOrderHistoryQuery) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	head, err := loadOrderHead(ctx, h.db, query.OrderID())
	if err != nil {
		return nil, err
	}

	if !h.policy.Allows(query.Actor(), services.ActionRead, head.facts()) {
		return nil, errs.NewForbiddenError(string(services.ActionRead), "order "+head.ID.String())
	}
	return loadOrderHistory(ctx, h.db, query.OrderID())
}
