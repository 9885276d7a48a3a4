package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultOrderNumberPrefix is used when no prefix is configured.
const DefaultOrderNumberPrefix = "GMC"

// OrderCodeGenerator generates order numbers of the form PREFIX-<unix millis>-<10 hex>
// and QR tokens of the form QR-<order number>-<8 hex>. The random parts come from
// version 4 UUIDs.
type OrderCodeGenerator struct {
	prefix string
	now    func() time.Time
}

func NewOrderCodeGenerator(prefix string) *OrderCodeGenerator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultOrderNumberPrefix
	}
	return &OrderCodeGenerator{prefix: prefix, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (g *OrderCodeGenerator) WithClock(now func() time.Time) *OrderCodeGenerator {
	g.now = now
	return g
}

// OrderNumber returns a new order number.
func (g *OrderCodeGenerator) OrderNumber() string {
	return fmt.Sprintf("%s-%d-%s", g.prefix, g.now().UnixMilli(), randomHex(10))
}

// QRCode returns a new QR token bound to orderNumber.
func (g *OrderCodeGenerator) QRCode(orderNumber string) string {
	return fmt.Sprintf("QR-%s-%s", orderNumber, randomHex(8))
}

// Next returns a fresh order number and its QR token.
func (g *OrderCodeGenerator) Next() (number, qrCode string) {
	number = g.OrderNumber()
	return number, g.QRCode(number)
}

// randomHex returns n upper-case hex digits, n <= 12. The first 12 hex digits of a
// version 4 UUID are all random.
func randomHex(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:n])
}
