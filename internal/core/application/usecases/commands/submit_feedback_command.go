package commands

import (
	"errors"

	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrSubmitFeedbackCommandIsNotConstructed = errors.New(
		"SubmitFeedbackCommand must be created via NewSubmitFeedbackCommand constructor",
	)
	ErrUpdateFeedbackCommandIsNotConstructed = errors.New(
		"UpdateFeedbackCommand must be created via NewUpdateFeedbackCommand constructor",
	)
)

// FeedbackInput is unvalidated customer input. Handlers validate it only
// after the order gate, so an ineligible submission reports the gate
// failure rather than a field error.
type FeedbackInput struct {
	Rating         int
	Comment        string
	ServiceQuality *int
	Punctuality    *int
	StaffBehavior  *int
	IsPublic       *bool
}

func (in FeedbackInput) content() (feedback.Content, error) {
	return feedback.NewContent(in.Rating, in.Comment, in.ServiceQuality, in.Punctuality, in.StaffBehavior, in.IsPublic)
}

type SubmitFeedbackCommand struct { //nolint:recvcheck //using for validation
	actor      identity.Actor
	feedbackID kernel.UUID
	orderID    kernel.UUID
	input      FeedbackInput

	guard guard.ConstructorGuard
}

func NewSubmitFeedbackCommand(
	actor identity.Actor,
	feedbackID kernel.UUID,
	orderID kernel.UUID,
	input FeedbackInput,
) (SubmitFeedbackCommand, error) {
	if err := errors.Join(actor.Validate(), feedbackID.Validate(), orderID.Validate()); err != nil {
		return SubmitFeedbackCommand{}, err
	}

	return SubmitFeedbackCommand{
		actor:      actor,
		feedbackID: feedbackID,
		orderID:    orderID,
		input:      input,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFeedbackCommandIsNotConstructed)
}

func (c SubmitFeedbackCommand) Actor() identity.Actor   { return c.actor }
func (c SubmitFeedbackCommand) FeedbackID() kernel.UUID { return c.feedbackID }
func (c SubmitFeedbackCommand) OrderID() kernel.UUID    { return c.orderID }
func (c SubmitFeedbackCommand) Input() FeedbackInput    { return c.input }

// UpdateFeedbackCommand replaces the content of the actor's own feedback.
type UpdateFeedbackCommand struct { //nolint:recvcheck //using for validation
	actor      identity.Actor
	feedbackID kernel.UUID
	input      FeedbackInput

	guard guard.ConstructorGuard
}

func NewUpdateFeedbackCommand(actor identity.Actor, feedbackID kernel.UUID, input FeedbackInput) (UpdateFeedbackCommand, error) {
	if err := errors.Join(actor.Validate(), feedbackID.Validate()); err != nil {
		return UpdateFeedbackCommand{}, err
	}

	return UpdateFeedbackCommand{
		actor:      actor,
		feedbackID: feedbackID,
		input:      input,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFeedbackCommandIsNotConstructed)
}

func (c UpdateFeedbackCommand) Actor() identity.Actor   { return c.actor }
func (c UpdateFeedbackCommand) FeedbackID() kernel.UUID { return c.feedbackID }
func (c UpdateFeedbackCommand) Input() FeedbackInput    { return c.input }
