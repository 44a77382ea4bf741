package feedbackrepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/pgerrs"
	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFeedbackRepository implements ports.FeedbackRepository using GORM.
type GormFeedbackRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormFeedbackRepository(db *gorm.DB, tracker aggregateTracker) *GormFeedbackRepository {
	return &GormFeedbackRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a feedback. idx_feedbacks_user_order turns a concurrent
// second submission into a conflict.
func (r *GormFeedbackRepository) Add(ctx context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("feedback already submitted for this order", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormFeedbackRepository) Update(ctx context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&FeedbackDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"rating":           dto.Rating,
			"comment":          dto.Comment,
			"service_quality":  dto.ServiceQuality,
			"punctuality":      dto.Punctuality,
			"staff_behavior":   dto.StaffBehavior,
			"is_public":        dto.IsPublic,
			"response_comment": dto.ResponseText,
			"responded_at":     dto.RespondedAt,
			"responded_by":     dto.RespondedBy,
			"updated_at":       dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("feedback", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormFeedbackRepository) Get(ctx context.Context, id kernel.UUID) (*feedback.Feedback, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FeedbackDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("feedback", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormFeedbackRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&FeedbackDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("feedback", id.String())
	}
	return nil
}

func (r *GormFeedbackRepository) ExistsForOrder(ctx context.Context, userID, orderID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FeedbackDTO{}).
		Where("user_id = ? AND order_id = ?", userID.Bytes(), orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
