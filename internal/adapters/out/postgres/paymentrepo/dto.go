// Package paymentrepo persists settlement attempts.
package paymentrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO is the payments row. The partial unique index allows at most
// one non-failed payment per order.
type PaymentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payments_active_order,where:status <> 'failed'"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method      string          `gorm:"type:varchar(32);not null"`
	Status      string          `gorm:"type:varchar(16);not null;index"`
	Reference   string          `gorm:"type:varchar(255)"`
	Gateway     string          `gorm:"type:varchar(64)"`
	CardLast4   string          `gorm:"type:varchar(4)"`
	CardBrand   string          `gorm:"type:varchar(32)"`
	ExpiryMonth string          `gorm:"type:varchar(2)"`
	ExpiryYear  string          `gorm:"type:varchar(4)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	details := p.Details()
	return PaymentDTO{
		ID:          p.ID().Bytes(),
		OrderID:     p.OrderID().Bytes(),
		UserID:      p.UserID().Bytes(),
		Amount:      p.Amount().Decimal(),
		Method:      p.Method().String(),
		Status:      p.Status().String(),
		Reference:   p.Reference(),
		Gateway:     p.Gateway(),
		CardLast4:   details.Last4,
		CardBrand:   details.Brand,
		ExpiryMonth: details.ExpiryMonth,
		ExpiryYear:  details.ExpiryYear,
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, orderID, userID,
		amount,
		order.PaymentMethod(dto.Method),
		payment.Status(dto.Status),
		dto.Reference, dto.Gateway,
		payment.CardDetails{
			Last4:       dto.CardLast4,
			Brand:       dto.CardBrand,
			ExpiryMonth: dto.ExpiryMonth,
			ExpiryYear:  dto.ExpiryYear,
		},
		dto.CreatedAt, dto.UpdatedAt,
	)
}
