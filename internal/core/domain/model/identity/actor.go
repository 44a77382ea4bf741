// Package identity models who performs an operation: a user id paired with
// the role the user directory reports for it.
package identity

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the caller of a command or query.
type Actor struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	a := Actor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(a.setID(id), a.setRole(role)); err != nil {
		return Actor{}, err
	}

	return a, nil
}

// MustActor is NewActor for fixtures. It panics on invalid input.
func MustActor(id kernel.UUID, role Role) Actor {
	a, err := NewActor(id, role)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID { return a.id }
func (a Actor) Role() Role      { return a.role }

func (a Actor) Is(id kernel.UUID) bool {
	return a.id.IsEqual(id)
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
