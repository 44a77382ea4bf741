package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
)

// UserDirectory resolves a user's role. Unknown users yield errs.ErrObjectNotFound.
type UserDirectory interface {
	ResolveUser(ctx context.Context, id kernel.UUID) (identity.Role, error)
}

// Package is a catalog entry as seen at lookup time.
type Package struct {
	ID    kernel.UUID
	Name  string
	Price kernel.Money
}

// PackageCatalog resolves the current price of a service package.
// Unknown packages yield errs.ErrObjectNotFound.
type PackageCatalog interface {
	ResolvePackage(ctx context.Context, id kernel.UUID) (Package, error)
}

// ChargeRequest asks the gateway to capture AmountMinor (cents).
// Repeating a request with the same IdempotencyKey must not charge twice.
type ChargeRequest struct {
	AmountMinor    int64
	Currency       string
	Token          string
	IdempotencyKey string
}

// ChargeResult describes an accepted charge.
type ChargeResult struct {
	Reference   string
	Gateway     string
	Last4       string
	Brand       string
	ExpiryMonth string
	ExpiryYear  string
}

// CardGateway charges cards. A refusal is returned as an errs.UpstreamError
// with Declined set; transport failures and timeouts as a retryable one.
type CardGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// Order change kinds carried by OrderChanged.
const (
	OrderCreated       = "created"
	OrderStatusChanged = "status-changed"
	OrderAssigned      = "assigned"
	OrderPaid          = "paid"
)

// OrderChanged is published after a committed order mutation.
type OrderChanged struct {
	OrderID       kernel.UUID
	UserID        kernel.UUID
	Kind          string
	Status        string
	PaymentStatus string
	ActorID       kernel.UUID
	OccurredAt    time.Time
}

// OrderEventPublisher delivers order change notifications. Delivery is at
// most once; a failure never undoes the committed change.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...OrderChanged) error
}
