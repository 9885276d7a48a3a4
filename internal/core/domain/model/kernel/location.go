package kernel

import (
	"errors"
	"fmt"
	"math"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when validating a zero-value Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")

// Location is a validated WGS84 coordinate pair. Pickup and delivery
// addresses carry one optionally; pricing never reads it, callers that need
// a distance derive it with DistanceKm before calling the pricing engine.
//
// Example:
//
//	berlin, _ := kernel.NewLocation(52.5200, 13.4050)
//	paris, _ := kernel.NewLocation(48.8566, 2.3522)
//	km, _ := berlin.DistanceKm(paris) // ~877.5
type Location struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation validates latitude in [-90, 90] and longitude in [-180, 180].
// Both violations are reported together.
func NewLocation(lat, lng float64) (Location, error) {
	var latErr, lngErr error
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		latErr = errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		lngErr = errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}
	if err := errors.Join(latErr, lngErr); err != nil {
		return Location{}, err
	}

	return Location{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
}

// Validate fails for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lat() float64 {
	return l.lat
}

func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

// IsEqual compares coordinates exactly. Both locations must be valid.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceKm returns the great-circle distance to other in kilometres.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}
	return HaversineKm(l.lat, l.lng, other.lat, other.lng), nil
}

// HaversineKm is the great-circle distance between two coordinate pairs
// given in degrees, on a sphere of radius EarthRadiusKm.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
