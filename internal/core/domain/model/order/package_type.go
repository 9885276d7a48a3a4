package order

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// PackageType is the parcel size class. It drives the pricing multiplier.
type PackageType int

const (
	PackageUnknown PackageType = iota
	PackageSmall
	PackageMedium
	PackageLarge
	PackageExtraLarge
)

var packageTypeNames = map[PackageType]string{
	PackageSmall:      "SMALL",
	PackageMedium:     "MEDIUM",
	PackageLarge:      "LARGE",
	PackageExtraLarge: "EXTRA_LARGE",
}

func ParsePackageType(s string) (PackageType, error) {
	for pt, name := range packageTypeNames {
		if strings.EqualFold(s, name) {
			return pt, nil
		}
	}
	return PackageUnknown, errs.NewValueIsInvalidErrorWithCause(
		"packageType", fmt.Errorf("%q is not a valid package type", s))
}

func (p PackageType) Validate() error {
	if _, ok := packageTypeNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("packageType", fmt.Errorf("%d is not a valid package type", p))
	}
	return nil
}

func (p PackageType) String() string {
	if name, ok := packageTypeNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}
