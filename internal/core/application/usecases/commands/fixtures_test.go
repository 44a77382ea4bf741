package commands_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pipeline = []order.Status{
	order.Confirmed,
	order.PickedUp,
	order.Processing,
	order.ReadyForDelivery,
	order.OutForDelivery,
	order.Delivered,
}

func newActor(role identity.Role) identity.Actor {
	return identity.MustActor(kernel.NewUUID(), role)
}

// hasDeadline matches a context bounded by a lookup timeout.
func hasDeadline() any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
}

func newDeliveryInfo(t *testing.T) order.DeliveryInfo {
	t.Helper()

	address, err := kernel.NewAddress("12 Elm St", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)
	now := time.Now()
	info, err := order.NewDeliveryInfo(now.Add(time.Hour), now.Add(49*time.Hour), address, "")
	require.NoError(t, err)
	return info
}

// newOrder builds an order owned by owner, then walks it along the
// pipeline up to status.
func newOrder(t *testing.T, owner kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), 2, kernel.MustMoney("20.00"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), owner, []order.LineItem{item}, newDeliveryInfo(t), "", time.Now())
	require.NoError(t, err)

	if status == order.Cancelled {
		require.NoError(t, o.Cancel(owner, time.Now()))
		return o
	}

	for _, next := range pipeline {
		if o.Status() == status {
			break
		}
		require.NoError(t, o.Advance(next, owner, time.Now()))
	}
	require.Equal(t, status, o.Status())
	return o
}
