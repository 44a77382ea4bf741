package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID                kernel.UUID
	UserID            kernel.UUID
	TotalAmount       kernel.Money
	Status            order.Status
	PaymentStatus     order.PaymentStatus
	PaymentMethod     order.PaymentMethod
	AssignedWorker    *kernel.UUID
	AssignedDeliverer *kernel.UUID
	PickupAt          time.Time
	DeliverAt         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s OrderSummary) facts() services.OrderFacts {
	return services.OrderFacts{
		OwnerID:           s.UserID,
		AssignedWorker:    s.AssignedWorker,
		AssignedDeliverer: s.AssignedDeliverer,
	}
}

type OrderItemView struct {
	PackageID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	LineTotal kernel.Money
}

type AddressView struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

type HistoryEntryView struct {
	Status  order.Status
	At      time.Time
	ActorID kernel.UUID
}

// OrderView is the full order as shown to a permitted reader.
type OrderView struct {
	OrderSummary
	Items        []OrderItemView
	Address      AddressView
	Instructions string
	PaymentID    *kernel.UUID
	History      []HistoryEntryView
}

const orderSummaryColumns = `
	o.id, o.user_id, o.total, o.status, o.payment_status, o.payment_method,
	o.assigned_worker, o.assigned_deliverer, o.pickup_at, o.deliver_at,
	o.created_at, o.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderSummary(row rowScanner, extra ...any) (OrderSummary, error) {
	var (
		s                 OrderSummary
		id, userID        uuid.UUID
		total             decimal.Decimal
		status, payStatus int
		method            string
		worker, deliverer uuid.NullUUID
	)

	dest := append([]any{
		&id, &userID, &total, &status, &payStatus, &method,
		&worker, &deliverer, &s.PickupAt, &s.DeliverAt,
		&s.CreatedAt, &s.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return OrderSummary{}, err
	}

	var err error
	if s.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummary{}, err
	}
	if s.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return OrderSummary{}, err
	}
	if s.TotalAmount, err = kernel.NewMoney(total); err != nil {
		return OrderSummary{}, err
	}
	if s.AssignedWorker, err = optionalUUID(worker); err != nil {
		return OrderSummary{}, err
	}
	if s.AssignedDeliverer, err = optionalUUID(deliverer); err != nil {
		return OrderSummary{}, err
	}
	s.Status = order.Status(status)
	s.PaymentStatus = order.PaymentStatus(payStatus)
	s.PaymentMethod = order.PaymentMethod(method)
	return s, nil
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil //nolint:nilnil // column is NULL
	}
	return kernel.OptionalUUID(&v.UUID)
}

// loadOrder reads the order with items and history, without any
// authorization. Missing orders yield errs.ErrObjectNotFound.
func loadOrder(ctx context.Context, db *gorm.DB, id kernel.UUID) (OrderView, error) {
	view, err := loadOrderHead(ctx, db, id)
	if err != nil {
		return OrderView{}, err
	}

	if view.Items, err = loadOrderItems(ctx, db, id); err != nil {
		return OrderView{}, err
	}
	if view.History, err = loadOrderHistory(ctx, db, id); err != nil {
		return OrderView{}, err
	}
	return view, nil
}

func loadOrderHead(ctx context.Context, db *gorm.DB, id kernel.UUID) (OrderView, error) {
	var (
		view      OrderView
		paymentID uuid.NullUUID
		address   AddressView
	)

	row := db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`,
			o.payment_id, o.address_street, o.address_city, o.address_state,
			o.address_zip_code, o.address_country, o.instructions
		FROM orders o
		WHERE o.id = ?
	`, id.Bytes()).Row()

	summary, err := scanOrderSummary(row,
		&paymentID, &address.Street, &address.City, &address.State,
		&address.ZipCode, &address.Country, &view.Instructions,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderView{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return OrderView{}, err
	}

	view.OrderSummary = summary
	view.Address = address
	if view.PaymentID, err = optionalUUID(paymentID); err != nil {
		return OrderView{}, err
	}
	return view, nil
}

func loadOrderItems(ctx context.Context, db *gorm.DB, id kernel.UUID) ([]OrderItemView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT package_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			packageID uuid.UUID
			item      OrderItemView
			price     decimal.Decimal
		)
		if err = rows.Scan(&packageID, &item.Quantity, &price); err != nil {
			return nil, err
		}
		if item.PackageID, err = kernel.UUIDFromBytes(packageID[:]); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		item.LineTotal = item.UnitPrice.Times(item.Quantity)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func loadOrderHistory(ctx context.Context, db *gorm.DB, id kernel.UUID) ([]HistoryEntryView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT status, at, actor_id
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryEntryView, 0)
	for rows.Next() {
		var (
			entry   HistoryEntryView
			status  int
			actorID uuid.UUID
		)
		if err = rows.Scan(&status, &entry.At, &actorID); err != nil {
			return nil, err
		}
		if entry.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		entry.Status = order.Status(status)
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
