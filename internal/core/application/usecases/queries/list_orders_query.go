package queries

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderSort is a listing order. A leading '-' means descending.
type OrderSort string

const (
	SortCreatedAtAsc    OrderSort = "createdAt"
	SortCreatedAtDesc   OrderSort = "-createdAt"
	SortTotalAmountAsc  OrderSort = "totalAmount"
	SortTotalAmountDesc OrderSort = "-totalAmount"

	DefaultOrderSort = SortCreatedAtDesc
)

func (s OrderSort) clause() string {
	column := "o.created_at"
	if strings.TrimPrefix(string(s), "-") == string(SortTotalAmountAsc) {
		column = "o.total"
	}
	direction := "ASC"
	if strings.HasPrefix(string(s), "-") {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, o.id %s", column, direction, direction)
}

func parseOrderSort(token string) (OrderSort, error) {
	if token == "" {
		return DefaultOrderSort, nil
	}
	switch s := OrderSort(token); s {
	case SortCreatedAtAsc, SortCreatedAtDesc, SortTotalAmountAsc, SortTotalAmountDesc:
		return s, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not a supported sort", token))
}

// ListOrdersQuery lists the orders the actor's role lets them see.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor, "processing", "-totalAmount", 2, 20)
//	page, err := handler.Handle(ctx, query)
//	// page.Pagination.Total counts only orders within the actor's scope
type ListOrdersQuery struct {
	actor  identity.Actor
	status *order.Status
	sort   OrderSort
	page   PageRequest

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses the optional status token and sort. Zero page
// and limit take the defaults.
func NewListOrdersQuery(actor identity.Actor, status, sort string, page, limit int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}

	var errStatus, errSort, errPage error
	if status != "" {
		var s order.Status
		if s, errStatus = order.ParseStatus(status); errStatus == nil {
			q.status = &s
		}
	}
	q.sort, errSort = parseOrderSort(sort)
	q.page, errPage = NewPageRequest(page, limit)

	if err := errors.Join(actor.Validate(), errStatus, errSort, errPage); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() identity.Actor { return q.actor }
func (q ListOrdersQuery) Status() *order.Status { return q.status }
func (q ListOrdersQuery) Sort() OrderSort       { return q.sort }
func (q ListOrdersQuery) Page() PageRequest     { return q.page }

type ListOrdersQueryResponse struct {
	Orders     []OrderSummary
	Pagination Pagination
}
