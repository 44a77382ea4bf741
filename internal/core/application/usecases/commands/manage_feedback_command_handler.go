package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// ManageFeedbackCommandHandler covers the lifecycle of existing feedback:
// author edits, author or admin deletion, and admin responses.
type ManageFeedbackCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
}

func NewManageFeedbackCommandHandler(uowFactory UoWFactory, policy services.AuthorizationPolicy) ManageFeedbackCommandHandler {
	return ManageFeedbackCommandHandler{uowFactory: uowFactory, policy: policy}
}

// HandleUpdate re-validates the content the same way submission does and
// keeps any admin response.
func (h *ManageFeedbackCommandHandler) HandleUpdate(ctx context.Context, cmd UpdateFeedbackCommand) (*feedback.Feedback, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.FeedbackID(), func(repo ports.FeedbackRepository, f *feedback.Feedback) error {
		if err := h.policy.AuthorizeFeedback(cmd.Actor(), services.FeedbackEdit, f.UserID()); err != nil {
			return err
		}

		content, err := cmd.Input().content()
		if err != nil {
			return err
		}

		f.Edit(content, time.Now())
		return repo.Update(ctx, f)
	})
}

func (h *ManageFeedbackCommandHandler) HandleDelete(ctx context.Context, cmd DeleteFeedbackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutate(ctx, cmd.FeedbackID(), func(repo ports.FeedbackRepository, f *feedback.Feedback) error {
		if err := h.policy.AuthorizeFeedback(cmd.Actor(), services.FeedbackDelete, f.UserID()); err != nil {
			return err
		}
		return repo.Delete(ctx, f.ID())
	})
	return err
}

// HandleRespond overwrites the admin response; no earlier response is kept.
func (h *ManageFeedbackCommandHandler) HandleRespond(
	ctx context.Context,
	cmd RespondToFeedbackCommand,
) (*feedback.Feedback, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.FeedbackID(), func(repo ports.FeedbackRepository, f *feedback.Feedback) error {
		if err := h.policy.AuthorizeFeedback(cmd.Actor(), services.FeedbackRespond, f.UserID()); err != nil {
			return err
		}

		if err := f.Respond(cmd.Comment(), cmd.Actor().ID(), time.Now()); err != nil {
			return err
		}
		return repo.Update(ctx, f)
	})
}

func (h *ManageFeedbackCommandHandler) mutate(
	ctx context.Context,
	id kernel.UUID,
	apply func(repo ports.FeedbackRepository, f *feedback.Feedback) error,
) (*feedback.Feedback, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.FeedbackRepository()
	f, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = apply(repo, f); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return f, nil
}
