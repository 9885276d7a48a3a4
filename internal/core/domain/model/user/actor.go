package user

import "parcel/internal/core/domain/model/kernel"

// Actor identifies who is performing an operation. Aggregates take an Actor
// instead of reading an ambient "current user".
type Actor struct {
	ID   kernel.UUID
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
func (a Actor) IsDriver() bool { return a.Role == RoleDriver }
func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }

// Is reports whether the actor is the user with the given id.
func (a Actor) Is(id kernel.UUID) bool {
	return a.ID.IsEqual(id)
}
