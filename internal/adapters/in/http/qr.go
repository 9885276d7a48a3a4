package http

import (
	"net/http"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// GetOrderQRCode handles GET /api/v1/orders/:id/qr?size=N. It renders the order's QR
// token as a PNG for the same callers that may read the order.
func (s *Server) GetOrderQRCode(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	size := defaultQRSize
	if err = echo.QueryParamsBinder(c).Int("size", &size).BindError(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("size", err)
	}
	if size < minQRSize || size > maxQRSize {
		return errs.NewValueIsOutOfRangeError("size", size, minQRSize, maxQRSize)
	}

	view, err := s.orderView(c, orderID)
	if err != nil {
		return err
	}

	png, err := qrcode.Encode(view.QRCode, qrcode.Medium, size)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
