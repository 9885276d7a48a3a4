package user

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// Role is the marketplace role a user acts under.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleDriver
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCustomer: "CUSTOMER",
	RoleDriver:   "DRIVER",
	RoleAdmin:    "ADMIN",
}

// ParseRole accepts the role name in any case.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}
