// Package feedback models customer ratings of delivered orders and the
// admin's public response to them.
package feedback

import (
	"errors"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

var ErrFeedbackIsNotConstructed = errors.New("Feedback must be created via NewFeedback constructor")

// MaxCommentLength bounds customer comments and admin responses.
const MaxCommentLength = 500

// Content is the customer-editable part of a feedback.
type Content struct {
	Rating         Rating
	Comment        string
	ServiceQuality *Rating
	Punctuality    *Rating
	StaffBehavior  *Rating
	IsPublic       bool
}

// NewContent validates raw input. isPublic defaults to true when nil.
func NewContent(rating int, comment string, serviceQuality, punctuality, staffBehavior *int, isPublic *bool) (Content, error) {
	c := Content{IsPublic: true}
	if isPublic != nil {
		c.IsPublic = *isPublic
	}

	var errRating, errService, errPunctuality, errStaff error
	c.Rating, errRating = NewRating("rating", rating)
	c.ServiceQuality, errService = NewOptionalRating("serviceQuality", serviceQuality)
	c.Punctuality, errPunctuality = NewOptionalRating("punctuality", punctuality)
	c.StaffBehavior, errStaff = NewOptionalRating("staffBehavior", staffBehavior)

	comment, errComment := validateComment("comment", comment)
	c.Comment = comment

	if err := errors.Join(errRating, errComment, errService, errPunctuality, errStaff); err != nil {
		return Content{}, err
	}
	return c, nil
}

// AdminResponse is the single, overwritable reply of an admin.
type AdminResponse struct {
	Comment     string
	RespondedAt time.Time
	RespondedBy kernel.UUID
}

type Feedback struct {
	id        kernel.UUID
	userID    kernel.UUID
	orderID   kernel.UUID
	content   Content
	response  *AdminResponse
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewFeedback applies the submission gate: the order must belong to userID
// and be delivered. Uniqueness per (user, order) is enforced by storage.
func NewFeedback(id kernel.UUID, userID kernel.UUID, o *order.Order, content Content, at time.Time) (*Feedback, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), o.Validate()); err != nil {
		return nil, err
	}
	if err := CheckSubmission(userID, o); err != nil {
		return nil, err
	}

	return &Feedback{
		id:            id,
		userID:        userID,
		orderID:       o.ID(),
		content:       content,
		createdAt:     at.UTC(),
		updatedAt:     at.UTC(),
		isConstructed: true,
	}, nil
}

// CheckSubmission reports whether userID may rate o: Forbidden unless the
// user owns the order, InvalidState unless it was delivered.
func CheckSubmission(userID kernel.UUID, o *order.Order) error {
	if !o.IsOwnedBy(userID) {
		return errs.NewForbiddenError("feedback", "order "+o.ID().String())
	}
	if o.Status() != order.Delivered {
		return errs.NewInvalidStateError("feedback is accepted only for delivered orders")
	}
	return nil
}

func RestoreFeedback(
	id, userID, orderID kernel.UUID,
	content Content,
	response *AdminResponse,
	createdAt, updatedAt time.Time,
) (*Feedback, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &Feedback{
		id:            id,
		userID:        userID,
		orderID:       orderID,
		content:       content,
		response:      response,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (f *Feedback) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFeedbackIsNotConstructed
	}
	return nil
}

func (f *Feedback) ID() kernel.UUID                  { return f.id }
func (f *Feedback) UserID() kernel.UUID              { return f.userID }
func (f *Feedback) OrderID() kernel.UUID             { return f.orderID }
func (f *Feedback) Content() Content                 { return f.content }
func (f *Feedback) AdminResponse() *AdminResponse    { return f.response }
func (f *Feedback) CreatedAt() time.Time             { return f.createdAt }
func (f *Feedback) UpdatedAt() time.Time             { return f.updatedAt }
func (f *Feedback) IsAuthoredBy(id kernel.UUID) bool { return f.userID.IsEqual(id) }

// Edit replaces the customer content. The admin response is kept.
func (f *Feedback) Edit(content Content, at time.Time) {
	f.content = content
	f.updatedAt = at.UTC()
}

// Respond attaches or overwrites the admin response.
func (f *Feedback) Respond(comment string, adminID kernel.UUID, at time.Time) error {
	comment, err := validateComment("response comment", comment)
	if err != nil {
		return err
	}
	if err = adminID.Validate(); err != nil {
		return err
	}

	f.response = &AdminResponse{Comment: comment, RespondedAt: at.UTC(), RespondedBy: adminID}
	f.updatedAt = at.UTC()
	return nil
}

func validateComment(name, comment string) (string, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", errs.NewValueIsRequiredError(name)
	}
	if n := len([]rune(comment)); n > MaxCommentLength {
		return "", errs.NewValueIsOutOfRangeError(name+" length", n, 1, MaxCommentLength)
	}
	return comment, nil
}
