package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/pkg/errs"
)

// SubmitFeedbackCommandHandler rates a delivered order.
//
// Failures, in order: order NotFound, Forbidden (not the owner),
// InvalidState (not delivered), Conflict (already rated), then field
// validation. Two concurrent submissions for one order both pass the
// existence check; the unique index turns the loser into a Conflict.
type SubmitFeedbackCommandHandler struct {
	uowFactory UoWFactory
}

func NewSubmitFeedbackCommandHandler(uowFactory UoWFactory) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{uowFactory: uowFactory}
}

func (h *SubmitFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) (*feedback.Feedback, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	userID := cmd.Actor().ID()
	if err = feedback.CheckSubmission(userID, o); err != nil {
		return nil, err
	}

	feedbackRepo := uow.FeedbackRepository()
	exists, err := feedbackRepo.ExistsForOrder(ctx, userID, o.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("feedback already submitted for this order")
	}

	content, err := cmd.Input().content()
	if err != nil {
		return nil, err
	}

	f, err := feedback.NewFeedback(cmd.FeedbackID(), userID, o, content, time.Now())
	if err != nil {
		return nil, err
	}

	if err = feedbackRepo.Add(ctx, f); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return f, nil
}
