package queries

import (
	"context"

	"laundry/internal/core/domain/services"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db     *gorm.DB
	policy services.AuthorizationPolicy
}

func NewListOrdersQueryHandler(db *gorm.DB, policy services.AuthorizationPolicy) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, policy: policy}
}

// Handle applies the role scope and the status filter before counting,
// sorting and paging, so totals match what the actor can see.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	scope := h.policy.Scope(query.Actor())
	if scope.Kind == services.ScopeNone {
		return ListOrdersQueryResponse{Orders: []OrderSummary{}, Pagination: paginate(query.Page(), 0)}, nil
	}

	filtered := func() *gorm.DB {
		tx := h.db.WithContext(ctx).Table("orders AS o")
		switch scope.Kind {
		case services.ScopeOwned:
			tx = tx.Where("o.user_id = ?", scope.UserID.Bytes())
		case services.ScopeAssignedWorker:
			tx = tx.Where("o.assigned_worker = ?", scope.UserID.Bytes())
		case services.ScopeAssignedDeliverer:
			tx = tx.Where("o.assigned_deliverer = ?", scope.UserID.Bytes())
		case services.ScopeAll, services.ScopeNone:
		}
		if status := query.Status(); status != nil {
			tx = tx.Where("o.status = ?", int(*status))
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	page := query.Page()
	rows, err := filtered().
		Select(orderSummaryColumns).
		Order(query.Sort().clause()).
		Limit(page.Limit).
		Offset(page.Offset()).
		Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0, page.Limit)
	for rows.Next() {
		summary, scanErr := scanOrderSummary(rows)
		if scanErr != nil {
			return ListOrdersQueryResponse{}, scanErr
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{Orders: orders, Pagination: paginate(page, total)}, nil
}
