// Package feedbackrepo persists customer feedback and admin responses.
package feedbackrepo

import (
	"time"

	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// FeedbackDTO is the feedbacks row. is_public carries no default so an
// explicit false is written as is.
type FeedbackDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_feedbacks_user_order"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_feedbacks_user_order"`
	Rating         int        `gorm:"type:smallint;not null"`
	Comment        string     `gorm:"type:varchar(500);not null"`
	ServiceQuality *int       `gorm:"type:smallint"`
	Punctuality    *int       `gorm:"type:smallint"`
	StaffBehavior  *int       `gorm:"type:smallint"`
	IsPublic       bool       `gorm:"not null;index"`
	ResponseText   *string    `gorm:"column:response_comment;type:varchar(500)"`
	RespondedAt    *time.Time
	RespondedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"not null;index"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (FeedbackDTO) TableName() string {
	return "feedbacks"
}

func ratingPtr(r *feedback.Rating) *int {
	if r == nil {
		return nil
	}
	v := r.Int()
	return &v
}

func fromRating(v *int) *feedback.Rating {
	if v == nil {
		return nil
	}
	r := feedback.Rating(*v)
	return &r
}

func fromDomain(f *feedback.Feedback) FeedbackDTO {
	content := f.Content()
	dto := FeedbackDTO{
		ID:             f.ID().Bytes(),
		UserID:         f.UserID().Bytes(),
		OrderID:        f.OrderID().Bytes(),
		Rating:         content.Rating.Int(),
		Comment:        content.Comment,
		ServiceQuality: ratingPtr(content.ServiceQuality),
		Punctuality:    ratingPtr(content.Punctuality),
		StaffBehavior:  ratingPtr(content.StaffBehavior),
		IsPublic:       content.IsPublic,
		CreatedAt:      f.CreatedAt(),
		UpdatedAt:      f.UpdatedAt(),
	}

	if r := f.AdminResponse(); r != nil {
		comment := r.Comment
		at := r.RespondedAt
		dto.ResponseText = &comment
		dto.RespondedAt = &at
		dto.RespondedBy = kernel.OptionalBytes(&r.RespondedBy)
	}
	return dto
}

func toDomain(dto FeedbackDTO) (*feedback.Feedback, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var response *feedback.AdminResponse
	if dto.ResponseText != nil {
		respondedBy, err := kernel.OptionalUUID(dto.RespondedBy)
		if err != nil {
			return nil, err
		}
		response = &feedback.AdminResponse{Comment: *dto.ResponseText}
		if dto.RespondedAt != nil {
			response.RespondedAt = *dto.RespondedAt
		}
		if respondedBy != nil {
			response.RespondedBy = *respondedBy
		}
	}

	content := feedback.Content{
		Rating:         feedback.Rating(dto.Rating),
		Comment:        dto.Comment,
		ServiceQuality: fromRating(dto.ServiceQuality),
		Punctuality:    fromRating(dto.Punctuality),
		StaffBehavior:  fromRating(dto.StaffBehavior),
		IsPublic:       dto.IsPublic,
	}

	return feedback.RestoreFeedback(id, userID, orderID, content, response, dto.CreatedAt, dto.UpdatedAt)
}
