package driver

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// DocumentType is the kind of document a driver uploads.
type DocumentType int

const (
	DocumentTypeUnknown DocumentType = iota
	DocumentTypeIDCard
	DocumentTypeDriverLicense
	DocumentTypeVehicleRegistration
	DocumentTypeInsurance
	DocumentTypeBusinessLicense
)

var documentTypeNames = map[DocumentType]string{
	DocumentTypeIDCard:              "ID_CARD",
	DocumentTypeDriverLicense:       "DRIVER_LICENSE",
	DocumentTypeVehicleRegistration: "VEHICLE_REGISTRATION",
	DocumentTypeInsurance:           "INSURANCE",
	DocumentTypeBusinessLicense:     "BUSINESS_LICENSE",
}

// RequiredDocumentTypes must all be approved before a driver is verified.
// BUSINESS_LICENSE is optional.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeIDCard,
	DocumentTypeDriverLicense,
	DocumentTypeVehicleRegistration,
	DocumentTypeInsurance,
}

func ParseDocumentType(s string) (DocumentType, error) {
	for dt, name := range documentTypeNames {
		if strings.EqualFold(s, name) {
			return dt, nil
		}
	}
	return DocumentTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"type", fmt.Errorf("%q is not a valid document type", s))
}

func (t DocumentType) Validate() error {
	if _, ok := documentTypeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid document type", t))
	}
	return nil
}

func (t DocumentType) String() string {
	if name, ok := documentTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsRequired reports whether t counts towards verification.
func (t DocumentType) IsRequired() bool {
	for _, required := range RequiredDocumentTypes {
		if t == required {
			return true
		}
	}
	return false
}
