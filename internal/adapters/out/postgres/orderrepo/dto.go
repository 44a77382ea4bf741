// Package orderrepo persists order aggregates: the order row, its frozen
// line items and the insert-only status history.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status and payment status are stored as
// their integer codes.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status            int             `gorm:"type:smallint;not null;index"`
	PaymentStatus     int             `gorm:"type:smallint;not null"`
	PaymentMethod     string          `gorm:"type:varchar(32);not null"`
	PaymentID         *uuid.UUID      `gorm:"type:uuid"`
	AssignedWorker    *uuid.UUID      `gorm:"type:uuid;index"`
	AssignedDeliverer *uuid.UUID      `gorm:"type:uuid;index"`
	PickupAt          time.Time       `gorm:"not null"`
	DeliverAt         time.Time       `gorm:"not null"`
	Address           AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Instructions      string          `gorm:"type:varchar(500)"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	UpdatedAt         time.Time       `gorm:"not null"`
	Version           int             `gorm:"not null"`

	Items   []OrderItemDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusHistoryEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Street  string `gorm:"type:varchar(255);not null"`
	City    string `gorm:"type:varchar(100);not null"`
	State   string `gorm:"type:varchar(100)"`
	ZipCode string `gorm:"type:varchar(20);not null"`
	Country string `gorm:"type:varchar(100)"`
}

// OrderItemDTO is one frozen line item. Position keeps checkout order.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	PackageID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryEntryDTO rows are only ever inserted. The serial ID orders
// entries written within the same instant.
type StatusHistoryEntryDTO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status  int       `gorm:"type:smallint;not null"`
	At      time.Time `gorm:"not null"`
	ActorID uuid.UUID `gorm:"type:uuid;not null"`
}

func (StatusHistoryEntryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	delivery := o.Delivery()
	address := delivery.Address()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			PackageID: item.PackageID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:                id,
		UserID:            o.UserID().Bytes(),
		Total:             o.Total().Decimal(),
		Status:            int(o.Status()),
		PaymentStatus:     int(o.PaymentStatus()),
		PaymentMethod:     o.PaymentMethod().String(),
		PaymentID:         kernel.OptionalBytes(o.PaymentID()),
		AssignedWorker:    kernel.OptionalBytes(o.AssignedWorker()),
		AssignedDeliverer: kernel.OptionalBytes(o.AssignedDeliverer()),
		PickupAt:          delivery.PickupAt(),
		DeliverAt:         delivery.DeliverAt(),
		Address: AddressDTO{
			Street:  address.Street(),
			City:    address.City(),
			State:   address.State(),
			ZipCode: address.ZipCode(),
			Country: address.Country(),
		},
		Instructions: delivery.Instructions(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Version:      o.Version(),
		Items:        items,
		History:      historyFromDomain(id, o.History()),
	}
}

func historyFromDomain(orderID uuid.UUID, entries []order.HistoryEntry) []StatusHistoryEntryDTO {
	out := make([]StatusHistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, StatusHistoryEntryDTO{
			OrderID: orderID,
			Status:  int(e.Status()),
			At:      e.At(),
			ActorID: e.ActorID().Bytes(),
		})
	}
	return out
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	paymentID, err := kernel.OptionalUUID(dto.PaymentID)
	if err != nil {
		return nil, err
	}
	worker, err := kernel.OptionalUUID(dto.AssignedWorker)
	if err != nil {
		return nil, err
	}
	deliverer, err := kernel.OptionalUUID(dto.AssignedDeliverer)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.Address.Street,
		dto.Address.City,
		dto.Address.State,
		dto.Address.ZipCode,
		dto.Address.Country,
	)
	if err != nil {
		return nil, err
	}
	delivery, err := order.NewDeliveryInfo(dto.PickupAt, dto.DeliverAt, address, dto.Instructions)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		actorID, actorErr := kernel.UUIDFromBytes(h.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		history = append(history, order.NewHistoryEntry(order.Status(h.Status), h.At, actorID))
	}

	return order.RestoreOrder(
		id,
		userID,
		items,
		total,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		order.PaymentMethod(dto.PaymentMethod),
		paymentID,
		worker,
		deliverer,
		delivery,
		history,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(packageID, dto.Quantity, price)
}
