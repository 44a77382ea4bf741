package identity

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Role is the staff or customer role of an actor. Tokens round-trip
// unchanged through persistence and the API.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleWorker    Role = "worker"
	RoleDeliverer Role = "deliverer"
	RoleUser      Role = "user"
)

func allRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleWorker, RoleDeliverer, RoleUser}
}

// ParseRole accepts only the exact role tokens.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	for _, known := range allRoles() {
		if r == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", string(r)))
}

func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role belongs to the laundry's own staff.
func (r Role) IsStaff() bool {
	return r != RoleUser
}
