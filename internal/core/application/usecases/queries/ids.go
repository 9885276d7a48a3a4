package queries

import (
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

func requireID(param string, id kernel.UUID, dst *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = id
	return nil
}
