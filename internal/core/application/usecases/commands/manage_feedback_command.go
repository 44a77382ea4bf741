package commands

import (
	"errors"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrDeleteFeedbackCommandIsNotConstructed = errors.New(
		"DeleteFeedbackCommand must be created via NewDeleteFeedbackCommand constructor",
	)
	ErrRespondToFeedbackCommandIsNotConstructed = errors.New(
		"RespondToFeedbackCommand must be created via NewRespondToFeedbackCommand constructor",
	)
)

type DeleteFeedbackCommand struct { //nolint:recvcheck //using for validation
	actor      identity.Actor
	feedbackID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteFeedbackCommand(actor identity.Actor, feedbackID kernel.UUID) (DeleteFeedbackCommand, error) {
	if err := errors.Join(actor.Validate(), feedbackID.Validate()); err != nil {
		return DeleteFeedbackCommand{}, err
	}
	return DeleteFeedbackCommand{actor: actor, feedbackID: feedbackID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrDeleteFeedbackCommandIsNotConstructed)
}

func (c DeleteFeedbackCommand) Actor() identity.Actor   { return c.actor }
func (c DeleteFeedbackCommand) FeedbackID() kernel.UUID { return c.feedbackID }

// RespondToFeedbackCommand attaches an admin reply. The comment is
// validated by the feedback aggregate.
type RespondToFeedbackCommand struct { //nolint:recvcheck //using for validation
	actor      identity.Actor
	feedbackID kernel.UUID
	comment    string

	guard guard.ConstructorGuard
}

func NewRespondToFeedbackCommand(actor identity.Actor, feedbackID kernel.UUID, comment string) (RespondToFeedbackCommand, error) {
	if err := errors.Join(actor.Validate(), feedbackID.Validate()); err != nil {
		return RespondToFeedbackCommand{}, err
	}
	return RespondToFeedbackCommand{
		actor:      actor,
		feedbackID: feedbackID,
		comment:    comment,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RespondToFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrRespondToFeedbackCommandIsNotConstructed)
}

func (c RespondToFeedbackCommand) Actor() identity.Actor   { return c.actor }
func (c RespondToFeedbackCommand) FeedbackID() kernel.UUID { return c.feedbackID }
func (c RespondToFeedbackCommand) Comment() string         { return c.comment }
