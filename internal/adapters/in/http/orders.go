package http

import (
	"errors"
	"net/http"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type AddressRequest struct {
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	ContactName  string   `json:"contactName,omitempty"`
	ContactPhone string   `json:"contactPhone,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. DistanceKm may be omitted when
// both addresses carry coordinates; the great-circle distance is used then.
type CreateOrderRequest struct {
	PackageType                 string         `json:"packageType"`
	WeightKg                    *float64       `json:"weightKg,omitempty"`
	Description                 string         `json:"description,omitempty"`
	ProhibitedItemsAcknowledged bool           `json:"prohibitedItemsAcknowledged"`
	Pickup                      AddressRequest `json:"pickup"`
	Delivery                    AddressRequest `json:"delivery"`
	DeliveryInstructions        string         `json:"deliveryInstructions,omitempty"`
	IsUrgent                    bool           `json:"isUrgent"`
	IsScheduled                 bool           `json:"isScheduled"`
	ScheduledFor                *time.Time     `json:"scheduledFor,omitempty"`
	DistanceKm                  *float64       `json:"distanceKm,omitempty"`
}

type TransitionRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RatingRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	details, distance, err := req.toDetails()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(callerID(c), details, distance)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	orderID, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	return s.renderOrder(c, http.StatusCreated, orderID)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}
	return s.renderOrder(c, http.StatusOK, orderID)
}

// ListOrders handles GET /api/v1/orders: the caller's own orders.
func (s *Server) ListOrders(c echo.Context) error {
	query, err := queries.NewListOrdersForUserQuery(callerID(c))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListOrdersForUser.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListAvailableOrders handles GET /api/v1/orders/available?limit=N.
func (s *Server) ListAvailableOrders(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("limit", err)
	}

	query, err := queries.NewListAvailableOrdersQuery(limit)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListAvailableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// TransitionOrder handles POST /api/v1/orders/:id/{accept,pickup,deliver,cancel}.
func (s *Server) TransitionOrder(c echo.Context) error {
	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	orderID, idErr := kernel.UUIDFromString(c.Param("id"))
	action, actionErr := order.ParseAction(c.Param("action"))
	if err := errors.Join(idErr, actionErr); err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, callerID(c), action, req.Reason)
	if err != nil {
		return err
	}

	if err = s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.renderOrder(c, http.StatusOK, orderID)
}

// SubmitRating handles POST /api/v1/orders/:id/rating.
func (s *Server) SubmitRating(c echo.Context) error {
	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	cmd, err := commands.NewSubmitRatingCommand(orderID, callerID(c), req.Score, req.Comment)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err = s.handlers.SubmitRating.Handle(ctx, cmd); err != nil {
		return err
	}

	view, err := s.orderView(c, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view.Rating)
}

func (s *Server) renderOrder(c echo.Context, status int, orderID kernel.UUID) error {
	view, err := s.orderView(c, orderID)
	if err != nil {
		return err
	}
	return c.JSON(status, view)
}

func (s *Server) orderView(c echo.Context, orderID kernel.UUID) (queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(orderID, callerID(c))
	if err != nil {
		return queries.OrderView{}, err
	}
	return s.handlers.GetOrder.Handle(c.Request().Context(), query)
}

func (r CreateOrderRequest) toDetails() (order.Details, float64, error) {
	pkgType, typeErr := order.ParsePackageType(r.PackageType)
	pickup, pickupErr := r.Pickup.toAddress("pickup")
	delivery, deliveryErr := r.Delivery.toAddress("delivery")
	if err := errors.Join(typeErr, pickupErr, deliveryErr); err != nil {
		return order.Details{}, 0, err
	}

	details := order.Details{
		Package: order.Package{
			Type:                        pkgType,
			WeightKg:                    r.WeightKg,
			Description:                 r.Description,
			ProhibitedItemsAcknowledged: r.ProhibitedItemsAcknowledged,
		},
		Pickup:               pickup,
		Delivery:             delivery,
		DeliveryInstructions: r.DeliveryInstructions,
		IsUrgent:             r.IsUrgent,
		IsScheduled:          r.IsScheduled,
		ScheduledFor:         r.ScheduledFor,
	}

	if r.DistanceKm != nil {
		return details, *r.DistanceKm, nil
	}
	if pickup.Location == nil || delivery.Location == nil {
		return order.Details{}, 0, errs.NewValueIsRequiredError("distanceKm")
	}
	distance, err := pickup.Location.DistanceKm(*delivery.Location)
	if err != nil {
		return order.Details{}, 0, err
	}
	return details, distance, nil
}

func (a AddressRequest) toAddress(field string) (order.Address, error) {
	addr := order.Address{
		Line:         a.Address,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}

	switch {
	case a.Lat == nil && a.Lng == nil:
		return addr, nil
	case a.Lat == nil:
		return order.Address{}, errs.NewValueIsRequiredError(field + ".lat")
	case a.Lng == nil:
		return order.Address{}, errs.NewValueIsRequiredError(field + ".lng")
	}

	loc, err := kernel.NewLocation(*a.Lat, *a.Lng)
	if err != nil {
		return order.Address{}, err
	}
	addr.Location = &loc
	return addr, nil
}
