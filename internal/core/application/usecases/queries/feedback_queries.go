package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var (
	ErrGetFeedbackQueryIsNotConstructed = errors.New(
		"GetFeedbackQuery must be created via NewGetFeedbackQuery constructor",
	)
	ErrListFeedbackQueryIsNotConstructed = errors.New(
		"ListFeedbackQuery must be created via NewListMyFeedbackQuery or NewListAllFeedbackQuery",
	)
)

// FeedbackView is a feedback with a glimpse of the rated order.
type FeedbackView struct {
	ID             kernel.UUID
	UserID         kernel.UUID
	OrderID        kernel.UUID
	Rating         int
	Comment        string
	ServiceQuality *int
	Punctuality    *int
	StaffBehavior  *int
	IsPublic       bool
	Response       *FeedbackResponseView
	OrderStatus    order.Status
	OrderTotal     kernel.Money
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type FeedbackResponseView struct {
	Comment     string
	RespondedAt time.Time
	RespondedBy kernel.UUID
}

type GetFeedbackQuery struct {
	actor      identity.Actor
	feedbackID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetFeedbackQuery(actor identity.Actor, feedbackID kernel.UUID) (GetFeedbackQuery, error) {
	if err := errors.Join(actor.Validate(), feedbackID.Validate()); err != nil {
		return GetFeedbackQuery{}, err
	}
	return GetFeedbackQuery{actor: actor, feedbackID: feedbackID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetFeedbackQuery) Validate() error {
	return q.guard.Validate(ErrGetFeedbackQueryIsNotConstructed)
}

func (q GetFeedbackQuery) Actor() identity.Actor   { return q.actor }
func (q GetFeedbackQuery) FeedbackID() kernel.UUID { return q.feedbackID }

// ListFeedbackQuery lists either the actor's own feedback or, for admins,
// all of it, newest first.
type ListFeedbackQuery struct {
	actor identity.Actor
	all   bool
	page  PageRequest

	guard guard.ConstructorGuard
}

func NewListMyFeedbackQuery(actor identity.Actor, page, limit int) (ListFeedbackQuery, error) {
	return newListFeedbackQuery(actor, false, page, limit)
}

// NewListAllFeedbackQuery builds the moderation listing. Authorization
// happens in the handler.
func NewListAllFeedbackQuery(actor identity.Actor, page, limit int) (ListFeedbackQuery, error) {
	return newListFeedbackQuery(actor, true, page, limit)
}

func newListFeedbackQuery(actor identity.Actor, all bool, page, limit int) (ListFeedbackQuery, error) {
	p, errPage := NewPageRequest(page, limit)
	if err := errors.Join(actor.Validate(), errPage); err != nil {
		return ListFeedbackQuery{}, err
	}
	return ListFeedbackQuery{actor: actor, all: all, page: p, guard: guard.NewConstructorGuard()}, nil
}

func (q ListFeedbackQuery) Validate() error {
	return q.guard.Validate(ErrListFeedbackQueryIsNotConstructed)
}

func (q ListFeedbackQuery) Actor() identity.Actor { return q.actor }
func (q ListFeedbackQuery) All() bool             { return q.all }
func (q ListFeedbackQuery) Page() PageRequest     { return q.page }

type ListFeedbackQueryResponse struct {
	Feedback   []FeedbackView
	Pagination Pagination
}
