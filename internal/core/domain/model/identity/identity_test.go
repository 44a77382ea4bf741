package identity_test

import (
	"testing"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("should round trip every role token", func(t *testing.T) {
		for _, token := range []string{"admin", "manager", "worker", "deliverer", "user"} {
			role, err := identity.ParseRole(token)

			require.NoError(t, err)
			assert.Equal(t, token, role.String())
		}
	})

	t.Run("should reject unknown and differently cased tokens", func(t *testing.T) {
		for _, token := range []string{"", "Admin", "courier", "root"} {
			_, err := identity.ParseRole(token)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, token)
		}
	})
}

func TestRole_IsStaff(t *testing.T) {
	assert.True(t, identity.RoleWorker.IsStaff())
	assert.True(t, identity.RoleAdmin.IsStaff())
	assert.False(t, identity.RoleUser.IsStaff())
}

func TestNewActor(t *testing.T) {
	t.Run("should create actor", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := identity.NewActor(id, identity.RoleDeliverer)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.Is(id))
		assert.Equal(t, identity.RoleDeliverer, a.Role())
	})

	t.Run("should collect all validation errors", func(t *testing.T) {
		_, err := identity.NewActor(kernel.UUID{}, identity.Role("ghost"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "role is invalid")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a identity.Actor

		assert.Equal(t, identity.ErrActorIsNotConstructed, a.Validate())
	})
}
