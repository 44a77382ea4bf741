package cartrepo

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCartRepository) GetOrCreate(ctx context.Context, userID kernel.UUID, at time.Time) (*cart.Cart, error) {
	return r.getOrCreate(ctx, userID, at, false)
}

// GetOrCreateForUpdate inserts the cart row if missing, then locks it. The
// insert ignores conflicts so two first accesses do not fail each other.
func (r *GormCartRepository) GetOrCreateForUpdate(ctx context.Context, userID kernel.UUID, at time.Time) (*cart.Cart, error) {
	return r.getOrCreate(ctx, userID, at, true)
}

func (r *GormCartRepository) getOrCreate(ctx context.Context, userID kernel.UUID, at time.Time, lock bool) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	row := CartDTO{UserID: userID.Bytes(), UpdatedAt: at.UTC()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit("Lines").Create(&row).Error; err != nil {
		return nil, err
	}

	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto CartDTO
	err := query.
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&dto, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Save replaces the stored lines with the cart's lines.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	userID := aggregate.UserID().Bytes()

	result := db.Model(&CartDTO{}).
		Where("user_id = ?", userID).
		Update("updated_at", aggregate.UpdatedAt())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart", aggregate.UserID().String())
	}

	if err := db.Where("user_id = ?", userID).Delete(&CartLineDTO{}).Error; err != nil {
		return err
	}

	if lines := linesFromDomain(aggregate); len(lines) > 0 {
		if err := db.Create(&lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.UserID(), aggregate)
	return nil
}
