package driver

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// VehicleType is what the driver delivers with. It is informational only.
type VehicleType int

const (
	VehicleUnknown VehicleType = iota
	VehicleBicycle
	VehicleScooter
	VehicleMotorcycle
	VehicleCar
	VehicleVan
)

// DefaultVehicleType is used when registration does not name one.
const DefaultVehicleType = VehicleCar

var vehicleTypeNames = map[VehicleType]string{
	VehicleBicycle:    "BICYCLE",
	VehicleScooter:    "SCOOTER",
	VehicleMotorcycle: "MOTORCYCLE",
	VehicleCar:        "CAR",
	VehicleVan:        "VAN",
}

func ParseVehicleType(s string) (VehicleType, error) {
	for vt, name := range vehicleTypeNames {
		if strings.EqualFold(s, name) {
			return vt, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicleType", fmt.Errorf("%q is not a valid vehicle type", s))
}

func (v VehicleType) Validate() error {
	if _, ok := vehicleTypeNames[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

func (v VehicleType) String() string {
	if name, ok := vehicleTypeNames[v]; ok {
		return name
	}
	return "UNKNOWN"
}
