package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

func orderChanged(o *order.Order, kind string, actorID kernel.UUID, at time.Time) ports.OrderChanged {
	return ports.OrderChanged{
		OrderID:       o.ID(),
		UserID:        o.UserID(),
		Kind:          kind,
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		ActorID:       actorID,
		OccurredAt:    at.UTC(),
	}
}

// publish runs after commit. The publisher logs its own failures and the
// committed change stands either way.
func publish(ctx context.Context, publisher ports.OrderEventPublisher, events ...ports.OrderChanged) {
	if publisher == nil || len(events) == 0 {
		return
	}
	_ = publisher.Publish(ctx, events...)
}
