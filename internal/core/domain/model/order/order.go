package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order items")
)

// Order is the aggregate root of the fulfillment pipeline.
//
// Order follows these invariants:
//   - line items and total are fixed at creation and never recomputed
//   - the status history is append-only and holds at least the initial pending entry
//   - the current status always equals the status of the last history entry
//   - status changes follow the transition table; delivered and cancelled are terminal
//   - payment status changes independently of the fulfillment status
type Order struct {
	id                kernel.UUID
	userID            kernel.UUID
	items             []LineItem
	total             kernel.Money
	status            Status
	paymentStatus     PaymentStatus
	paymentMethod     PaymentMethod
	paymentID         *kernel.UUID
	assignedWorker    *kernel.UUID
	assignedDeliverer *kernel.UUID
	delivery          DeliveryInfo
	history           []HistoryEntry
	createdAt         time.Time
	updatedAt         time.Time

	// version is the persisted optimistic concurrency token.
	version int
	// savedHistory is how many history entries are already persisted.
	savedHistory int

	isConstructed bool
}

// NewOrder snapshots the given line items into a pending order owned by userID.
// The total is computed here, once.
//
// Example:
//
//	item, _ := order.NewLineItem(packageID, 2, kernel.MustMoney("20.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.LineItem{item}, info, order.DefaultPaymentMethod, time.Now())
//	// o.Total() == 40.00, o.Status() == order.Pending, len(o.History()) == 1
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []LineItem,
	delivery DeliveryInfo,
	method PaymentMethod,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     at.UTC(),
		updatedAt:     at.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
		o.setDelivery(delivery),
		o.setPaymentMethod(method),
	); err != nil {
		return nil, err
	}

	o.history = []HistoryEntry{NewHistoryEntry(Pending, at, userID)}
	return o, nil
}

// RestoreOrder rebuilds an order from persistence without re-running the
// creation rules, checking only the structural invariants.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []LineItem,
	total kernel.Money,
	status Status,
	paymentStatus PaymentStatus,
	method PaymentMethod,
	paymentID *kernel.UUID,
	assignedWorker *kernel.UUID,
	assignedDeliverer *kernel.UUID,
	delivery DeliveryInfo,
	history []HistoryEntry,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
		method.Validate(),
	); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status history is invalid",
			fmt.Errorf("last entry is %s but order is %s", last, status),
		)
	}

	return &Order{
		id:                id,
		userID:            userID,
		items:             append([]LineItem(nil), items...),
		total:             total,
		status:            status,
		paymentStatus:     paymentStatus,
		paymentMethod:     method,
		paymentID:         paymentID,
		assignedWorker:    assignedWorker,
		assignedDeliverer: assignedDeliverer,
		delivery:          delivery,
		history:           append([]HistoryEntry(nil), history...),
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		version:           version,
		savedHistory:      len(history),
		isConstructed:     true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) UserID() kernel.UUID             { return o.userID }
func (o *Order) Total() kernel.Money             { return o.total }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) PaymentStatus() PaymentStatus    { return o.paymentStatus }
func (o *Order) PaymentMethod() PaymentMethod    { return o.paymentMethod }
func (o *Order) PaymentID() *kernel.UUID         { return o.paymentID }
func (o *Order) AssignedWorker() *kernel.UUID    { return o.assignedWorker }
func (o *Order) AssignedDeliverer() *kernel.UUID { return o.assignedDeliverer }
func (o *Order) Delivery() DeliveryInfo          { return o.delivery }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }
func (o *Order) Version() int                    { return o.version }

// Items returns a copy of the frozen line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// History returns a copy of the status history, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// UnsavedHistory returns entries appended since the order was loaded or last saved.
func (o *Order) UnsavedHistory() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history[o.savedHistory:]...)
}

// MarkSaved is called by the repository after a successful write with the
// version now stored.
func (o *Order) MarkSaved(version int) {
	o.version = version
	o.savedHistory = len(o.history)
}

func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

func (o *Order) IsAssignedWorker(userID kernel.UUID) bool {
	return o.assignedWorker != nil && o.assignedWorker.IsEqual(userID)
}

func (o *Order) IsAssignedDeliverer(userID kernel.UUID) bool {
	return o.assignedDeliverer != nil && o.assignedDeliverer.IsEqual(userID)
}

// Advance moves the order to target and appends exactly one history entry.
// The transition table, including the terminal guard, is checked first;
// on error nothing changes.
func (o *Order) Advance(target Status, actorID kernel.UUID, at time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(target); err != nil {
		return err
	}

	o.status = target
	o.history = append(o.history, NewHistoryEntry(target, at, actorID))
	o.updatedAt = at.UTC()
	return nil
}

// Cancel is Advance(Cancelled) restricted to pending and confirmed orders.
func (o *Order) Cancel(actorID kernel.UUID, at time.Time) error {
	if !o.status.IsCancellable() {
		return errs.NewInvalidTransitionError("cannot cancel at this stage")
	}
	return o.Advance(Cancelled, actorID, at)
}

// AssignWorker overwrites the assigned worker. Assignment is not historized.
func (o *Order) AssignWorker(workerID kernel.UUID, at time.Time) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	o.assignedWorker = &workerID
	o.updatedAt = at.UTC()
	return nil
}

// AssignDeliverer overwrites the assigned deliverer. Assignment is not historized.
func (o *Order) AssignDeliverer(delivererID kernel.UUID, at time.Time) error {
	if err := delivererID.Validate(); err != nil {
		return err
	}
	o.assignedDeliverer = &delivererID
	o.updatedAt = at.UTC()
	return nil
}

// ValidateCanPay checks the preconditions of an immediate (card) payment.
func (o *Order) ValidateCanPay() error {
	if o.paymentStatus == PaymentPaid {
		return errs.NewConflictError("order is already paid")
	}
	if o.status == Cancelled {
		return errs.NewInvalidStateError("order is cancelled")
	}
	return nil
}

// MarkPaid records a successful settlement. A still pending order is
// confirmed with one history entry. Re-applying to a paid order only
// refreshes the payment reference, which keeps settlement retries idempotent.
func (o *Order) MarkPaid(paymentID kernel.UUID, actorID kernel.UUID, at time.Time) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	o.paymentID = &paymentID
	if o.paymentStatus == PaymentPaid {
		return nil
	}

	o.paymentStatus = PaymentPaid
	o.updatedAt = at.UTC()
	return o.confirmIfPending(actorID, at)
}

// RequestCashOnDelivery switches the order to cash settlement. Only orders
// whose payment is still pending qualify. A pending order is confirmed.
func (o *Order) RequestCashOnDelivery(paymentID kernel.UUID, actorID kernel.UUID, at time.Time) error {
	if o.paymentStatus != PaymentPending {
		return errs.NewInvalidStateError(fmt.Sprintf("payment status is %s, expected pending", o.paymentStatus))
	}
	if o.status == Cancelled {
		return errs.NewInvalidStateError("order is cancelled")
	}
	if err := paymentID.Validate(); err != nil {
		return err
	}

	o.paymentMethod = MethodCashOnDelivery
	o.paymentID = &paymentID
	o.updatedAt = at.UTC()
	return o.confirmIfPending(actorID, at)
}

func (o *Order) confirmIfPending(actorID kernel.UUID, at time.Time) error {
	if o.status != Pending {
		return nil
	}
	return o.Advance(Confirmed, actorID, at)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

// setItems copies items and computes the total.
func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	total := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total = total.Add(item.LineTotal())
	}

	o.items = append([]LineItem(nil), items...)
	o.total = total
	return nil
}

func (o *Order) setDelivery(delivery DeliveryInfo) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if method == "" {
		method = DefaultPaymentMethod
	}
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
