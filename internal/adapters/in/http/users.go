package http

import (
	"net/http"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RuleSelfServiceAdmin is returned when an admin account is requested over HTTP. Admins
// are provisioned from the command line.
const RuleSelfServiceAdmin = "admin accounts cannot be self-registered"

type RegisterUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	VehicleType string `json:"vehicleType,omitempty"`
}

type RegisterUserResponse struct {
	ID kernel.UUID `json:"id"`
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(c echo.Context) error {
	var req RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return err
	}
	if role == user.RoleAdmin {
		return errs.NewForbiddenError(RuleSelfServiceAdmin)
	}

	vehicle := driver.VehicleUnknown
	if req.VehicleType != "" {
		if vehicle, err = driver.ParseVehicleType(req.VehicleType); err != nil {
			return err
		}
	}

	cmd, err := commands.NewRegisterUserCommand(req.Name, req.Email, role, vehicle)
	if err != nil {
		return err
	}

	id, err := s.handlers.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, RegisterUserResponse{ID: id})
}
