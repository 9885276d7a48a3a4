package cmd

import (
	"errors"
	"fmt"
	"time"

	httpin "parcel/internal/adapters/in/http"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"

	"github.com/spf13/cobra"
)

func newUserCommand(a *app) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	userCmd.AddCommand(newUserAddCommand(a), newUserTokenCommand(a))
	return userCmd
}

// newUserAddCommand provisions an account, including admins, which cannot register over
// HTTP.
func newUserAddCommand(a *app) *cobra.Command {
	var name, email, role, vehicle string

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a user and print its id and a bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := user.ParseRole(role)
			if err != nil {
				return err
			}
			v := driver.VehicleUnknown
			if vehicle != "" {
				if v, err = driver.ParseVehicleType(vehicle); err != nil {
					return err
				}
			}

			registration, err := commands.NewRegisterUserCommand(name, email, r, v)
			if err != nil {
				return err
			}

			db, err := OpenDatabase(a.cfg)
			if err != nil {
				return err
			}
			root := NewCompositionRoot(a.cfg, db, nil, a.logger)

			id, err := root.CreateRegisterUserCommandHandler().Handle(cmd.Context(), registration)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return a.printToken(cmd, id)
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&email, "email", "", "email address")
	add.Flags().StringVar(&role, "role", "", "CUSTOMER, DRIVER or ADMIN")
	add.Flags().StringVar(&vehicle, "vehicle", "", "vehicle type for drivers")
	_ = add.MarkFlagRequired("email")
	_ = add.MarkFlagRequired("role")
	return add
}

func newUserTokenCommand(a *app) *cobra.Command {
	var rawID string

	token := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for an existing user id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return err
			}
			return a.printToken(cmd, id)
		},
	}
	token.Flags().StringVar(&rawID, "id", "", "user id")
	_ = token.MarkFlagRequired("id")
	return token
}

func (a *app) printToken(cmd *cobra.Command, id kernel.UUID) error {
	if a.cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required to issue tokens")
	}
	token, err := httpin.IssueToken([]byte(a.cfg.JWTSecret), id, time.Now(), a.cfg.TokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
