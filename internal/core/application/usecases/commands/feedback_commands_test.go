package commands_test

import (
	"strings"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type feedbackFixture struct {
	factory   *MockUoWFactory
	uow       *MockUoW
	orders    *MockOrderRepository
	feedbacks *MockFeedbackRepository
}

func newFeedbackFixture() feedbackFixture {
	f := feedbackFixture{
		factory:   new(MockUoWFactory),
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		feedbacks: new(MockFeedbackRepository),
	}

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("FeedbackRepository").Return(f.feedbacks).Maybe()
	f.uow.On("Commit", mock.Anything).Return(nil).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	return f
}

func intPtr(v int) *int { return &v }

func TestSubmitFeedbackCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner := newActor(identity.RoleUser)
	o := newOrder(t, owner.ID(), order.Delivered)
	private := false

	f := newFeedbackFixture()
	mock.InOrder(
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.feedbacks.On("ExistsForOrder", ctx, owner.ID(), o.ID()).Return(false, nil).Once(),
		f.feedbacks.On("Add", ctx, mock.AnythingOfType("*feedback.Feedback")).Return(nil).Once(),
	)

	cmd, err := commands.NewSubmitFeedbackCommand(owner, kernel.NewUUID(), o.ID(), commands.FeedbackInput{
		Rating:      5,
		Comment:     "  spotless shirts  ",
		Punctuality: intPtr(4),
		IsPublic:    &private,
	})
	require.NoError(t, err)

	h := commands.NewSubmitFeedbackCommandHandler(f.factory)
	fb, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	content := fb.Content()
	assert.Equal(t, 5, content.Rating.Int())
	assert.Equal(t, "spotless shirts", content.Comment)
	require.NotNil(t, content.Punctuality)
	assert.Equal(t, 4, content.Punctuality.Int())
	assert.Nil(t, content.ServiceQuality)
	assert.False(t, content.IsPublic)
	assert.Equal(t, o.ID(), fb.OrderID())
	assert.Nil(t, fb.AdminResponse())
	f.uow.AssertCalled(t, "Commit", ctx)
}

func TestSubmitFeedbackCommandHandler_Handle_Failures(t *testing.T) {
	owner := newActor(identity.RoleUser)
	valid := commands.FeedbackInput{Rating: 4, Comment: "fine"}

	tests := []struct {
		name    string
		actor   identity.Actor
		status  order.Status
		exists  bool
		input   commands.FeedbackInput
		wantErr error
	}{
		{name: "not the owner", actor: newActor(identity.RoleUser), status: order.Delivered, input: valid, wantErr: errs.ErrForbidden},
		{name: "not delivered", actor: owner, status: order.OutForDelivery, input: valid, wantErr: errs.ErrInvalidState},
		{
			name:    "gate wins over bad input",
			actor:   owner,
			status:  order.Processing,
			input:   commands.FeedbackInput{Rating: 9},
			wantErr: errs.ErrInvalidState,
		},
		{name: "already rated", actor: owner, status: order.Delivered, exists: true, input: valid, wantErr: errs.ErrConflict},
		{
			name:    "rating out of range",
			actor:   owner,
			status:  order.Delivered,
			input:   commands.FeedbackInput{Rating: 6, Comment: "great"},
			wantErr: errs.ErrValueIsOutOfRange,
		},
		{
			name:    "comment too long",
			actor:   owner,
			status:  order.Delivered,
			input:   commands.FeedbackInput{Rating: 3, Comment: strings.Repeat("x", feedback.MaxCommentLength+1)},
			wantErr: errs.ErrValueIsOutOfRange,
		},
		{
			name:    "blank comment",
			actor:   owner,
			status:  order.Delivered,
			input:   commands.FeedbackInput{Rating: 3, Comment: "   "},
			wantErr: errs.ErrValueIsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := newOrder(t, owner.ID(), tt.status)

			f := newFeedbackFixture()
			f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
			f.feedbacks.On("ExistsForOrder", ctx, owner.ID(), o.ID()).Return(tt.exists, nil).Maybe()

			cmd, err := commands.NewSubmitFeedbackCommand(tt.actor, kernel.NewUUID(), o.ID(), tt.input)
			require.NoError(t, err)

			h := commands.NewSubmitFeedbackCommandHandler(f.factory)
			_, err = h.Handle(ctx, cmd)
			require.ErrorIs(t, err, tt.wantErr)

			f.feedbacks.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestSubmitFeedbackCommandHandler_Handle_DuplicateRace(t *testing.T) {
	ctx := t.Context()
	owner := newActor(identity.RoleUser)
	o := newOrder(t, owner.ID(), order.Delivered)

	f := newFeedbackFixture()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.feedbacks.On("ExistsForOrder", ctx, owner.ID(), o.ID()).Return(false, nil).Once()
	f.feedbacks.On("Add", ctx, mock.Anything).Return(errs.NewConflictError("feedback already submitted for this order")).Once()

	cmd, _ := commands.NewSubmitFeedbackCommand(owner, kernel.NewUUID(), o.ID(), commands.FeedbackInput{Rating: 5, Comment: "ok"})
	h := commands.NewSubmitFeedbackCommandHandler(f.factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func existingFeedback(t *testing.T, author kernel.UUID) *feedback.Feedback {
	t.Helper()

	content, err := feedback.NewContent(3, "decent", nil, nil, nil, nil)
	require.NoError(t, err)
	fb, err := feedback.RestoreFeedback(kernel.NewUUID(), author, kernel.NewUUID(), content, nil, time.Now(), time.Now())
	require.NoError(t, err)
	return fb
}

func TestManageFeedbackCommandHandler_HandleUpdate(t *testing.T) {
	author := newActor(identity.RoleUser)

	t.Run("author edits and keeps the response", func(t *testing.T) {
		ctx := t.Context()
		fb := existingFeedback(t, author.ID())
		require.NoError(t, fb.Respond("thanks", kernel.NewUUID(), time.Now()))

		f := newFeedbackFixture()
		f.feedbacks.On("Get", ctx, fb.ID()).Return(fb, nil).Once()
		f.feedbacks.On("Update", ctx, fb).Return(nil).Once()

		cmd, err := commands.NewUpdateFeedbackCommand(author, fb.ID(), commands.FeedbackInput{Rating: 5, Comment: "better now"})
		require.NoError(t, err)

		h := commands.NewManageFeedbackCommandHandler(f.factory, services.NewAuthorizationPolicy())
		got, err := h.HandleUpdate(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, 5, got.Content().Rating.Int())
		assert.Equal(t, "better now", got.Content().Comment)
		require.NotNil(t, got.AdminResponse())
		assert.Equal(t, "thanks", got.AdminResponse().Comment)
		f.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("admin cannot edit", func(t *testing.T) {
		ctx := t.Context()
		fb := existingFeedback(t, author.ID())

		f := newFeedbackFixture()
		f.feedbacks.On("Get", ctx, fb.ID()).Return(fb, nil).Once()

		cmd, _ := commands.NewUpdateFeedbackCommand(newActor(identity.RoleAdmin), fb.ID(), commands.FeedbackInput{Rating: 1, Comment: "x"})
		h := commands.NewManageFeedbackCommandHandler(f.factory, services.NewAuthorizationPolicy())
		_, err := h.HandleUpdate(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, 3, fb.Content().Rating.Int())
		f.feedbacks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid content leaves feedback untouched", func(t *testing.T) {
		ctx := t.Context()
		fb := existingFeedback(t, author.ID())

		f := newFeedbackFixture()
		f.feedbacks.On("Get", ctx, fb.ID()).Return(fb, nil).Once()

		cmd, _ := commands.NewUpdateFeedbackCommand(author, fb.ID(), commands.FeedbackInput{Rating: 0, Comment: "x"})
		h := commands.NewManageFeedbackCommandHandler(f.factory, services.NewAuthorizationPolicy())
		_, err := h.HandleUpdate(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, "decent", fb.Content().Comment)
	})
}

func TestManageFeedbackCommandHandler_HandleDelete(t *testing.T) {
	author := newActor(identity.RoleUser)

	tests := []struct {
		name    string
		actor   identity.Actor
		wantErr error
	}{
		{name: "author", actor: author},
		{name: "admin", actor: newActor(identity.RoleAdmin)},
		{name: "manager", actor: newActor(identity.RoleManager), wantErr: errs.ErrForbidden},
		{name: "stranger", actor: newActor(identity.RoleUser), wantErr: errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			fb := existingFeedback(t, author.ID())

			f := newFeedbackFixture()
			f.feedbacks.On("Get", ctx, fb.ID()).Return(fb, nil).Once()
			f.feedbacks.On("Delete", ctx, fb.ID()).Return(nil).Maybe()

			cmd, err := commands.NewDeleteFeedbackCommand(tt.actor, fb.ID())
			require.NoError(t, err)

			h := commands.NewManageFeedbackCommandHandler(f.factory, services.NewAuthorizationPolicy())
			err = h.HandleDelete(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				f.feedbacks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			f.feedbacks.AssertCalled(t, "Delete", ctx, fb.ID())
			f.uow.AssertCalled(t, "Commit", ctx)
		})
	}
}

func TestManageFeedbackCommandHandler_HandleRespond(t *testing.T) {
	author := newActor(identity.RoleUser)
	admin := newActor(identity.RoleAdmin)

	t.Run("admin response overwrites the previous one", func(t *testing.T) {
		ctx := t.Context()
		fb := existingFeedback(t, author.ID())
		require.NoError(t, fb.Respond("first", kernel.NewUUID(), time.Now()))

		f := newFeedbackFixture()
		f.feedbacks.On("Get", ctx, fb.ID()).Return(fb, nil).Once()
		f.feedbacks.On("Update", ctx, fb).Return(nil).Once()

		cmd, err := commands.NewRespondToFeedbackCommand(admin, fb.ID(), "second")
		require.NoError(t, err)

		h := commands.NewManageFeedbackCommandHandler(f.factory, services.NewAuthorizationPolicy())
		got, err := h.HandleRespond(ctx, cmd)
		require.NoError(t, err)

		require.NotNil(t, got.AdminResponse())
		assert.Equal(t, "second", got.AdminResponse().Comment)
		assert.Equal(t, admin.ID(), got.AdminResponse().RespondedBy)
	})

	t.Run("author cannot respond", func(t *testing.T) {
		ctx := t.Context()
		fb := existingFeedback(t, author.ID())

		f := newFeedbackFixture()
		f.feedbacks.On("Get", ctx, fb.ID()).Return(fb, nil).Once()

		cmd, _ := commands.NewRespondToFeedbackCommand(author, fb.ID(), "me too")
		h := commands.NewManageFeedbackCommandHandler(f.factory, services.NewAuthorizationPolicy())
		_, err := h.HandleRespond(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Nil(t, fb.AdminResponse())
	})

	t.Run("unknown feedback", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()

		f := newFeedbackFixture()
		f.feedbacks.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("feedback", id.String())).Once()

		cmd, _ := commands.NewRespondToFeedbackCommand(admin, id, "hello")
		h := commands.NewManageFeedbackCommandHandler(f.factory, services.NewAuthorizationPolicy())
		_, err := h.HandleRespond(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
