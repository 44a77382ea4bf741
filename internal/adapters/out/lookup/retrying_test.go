package lookup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry/internal/adapters/out/lookup"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var policy = retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

type directoryMock struct{ mock.Mock }

func (m *directoryMock) ResolveUser(ctx context.Context, id kernel.UUID) (identity.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(identity.Role), args.Error(1)
}

type catalogMock struct{ mock.Mock }

func (m *catalogMock) ResolvePackage(ctx context.Context, id kernel.UUID) (ports.Package, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Package), args.Error(1)
}

func TestRetryingDirectory_RecoversFromTransientFailure(t *testing.T) {
	id := kernel.NewUUID()
	next := &directoryMock{}
	next.On("ResolveUser", mock.Anything, id).Return(identity.Role(""), errors.New("connection refused")).Once()
	next.On("ResolveUser", mock.Anything, id).Return(identity.RoleWorker, nil).Once()

	role, err := lookup.NewRetryingDirectory(next, policy, nil).ResolveUser(t.Context(), id)

	require.NoError(t, err)
	assert.Equal(t, identity.RoleWorker, role)
	next.AssertExpectations(t)
}

func TestRetryingDirectory_NotFoundIsFinal(t *testing.T) {
	id := kernel.NewUUID()
	next := &directoryMock{}
	next.On("ResolveUser", mock.Anything, id).Return(identity.Role(""), errs.NewObjectNotFoundError("user", id)).Once()

	_, err := lookup.NewRetryingDirectory(next, policy, nil).ResolveUser(t.Context(), id)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	next.AssertNumberOfCalls(t, "ResolveUser", 1)
}

func TestRetryingCatalog_GivesUpAfterPolicy(t *testing.T) {
	id := kernel.NewUUID()
	next := &catalogMock{}
	next.On("ResolvePackage", mock.Anything, id).
		Return(ports.Package{}, errs.NewUpstreamUnavailableError("catalog", errors.New("timeout")))

	_, err := lookup.NewRetryingCatalog(next, policy, nil).ResolvePackage(t.Context(), id)

	assert.Equal(t, errs.KindUpstreamUnavailable, errs.KindOf(err))
	next.AssertNumberOfCalls(t, "ResolvePackage", 3)
}
