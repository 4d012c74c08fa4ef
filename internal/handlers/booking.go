package handlers

import (
	"errors"

	"skyfare/internal/models"
	"skyfare/internal/repositories"
	"skyfare/internal/services/booking"
	"skyfare/internal/services/flightapi"
	"skyfare/internal/utils/pagination"
	"skyfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookingService booking.Service
	flightService  flightapi.Service
}

func NewBookingHandler(bookingService booking.Service, flightService flightapi.Service) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		flightService:  flightService,
	}
}

// SearchOffers proxies an offer search to the upstream flight API.
func (h *BookingHandler) SearchOffers(c *fiber.Ctx) error {
	var query flightapi.SearchQuery
	if err := c.QueryParser(&query); err != nil {
		return response.BadRequest(c, "Invalid search parameters")
	}
	if query.Adults == 0 {
		query.Adults = 1
	}

	offers, err := h.flightService.SearchOffers(c.Context(), query)
	if err != nil {
		return response.ServerError(c, "Flight search failed")
	}
	return response.Success(c, "Offers retrieved", offers)
}

// ConfirmOrder runs the order-creation confirmation flow.
func (h *BookingHandler) ConfirmOrder(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		OfferID string `json:"offer_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.OfferID == "" {
		return response.BadRequest(c, "Invalid request format")
	}

	order, err := h.bookingService.ConfirmOrder(c.Context(), claims.UserID, claims.Role, input.OfferID)
	if err != nil {
		if errors.Is(err, booking.ErrPricingFailed) {
			return response.Error(c, fiber.StatusBadGateway, err.Error())
		}
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "Order confirmed", order)
}

// SellSummary runs the offer-sell confirmation view totals.
func (h *BookingHandler) SellSummary(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	offerID := c.Params("offerId")
	if offerID == "" {
		return response.BadRequest(c, "Missing offer ID")
	}

	quote, err := h.bookingService.SellSummary(c.Context(), claims.Role, offerID)
	if err != nil {
		if errors.Is(err, booking.ErrPricingFailed) {
			return response.Error(c, fiber.StatusBadGateway, err.Error())
		}
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "Sell summary computed", quote)
}

// GetOrders serves the dashboard order table with filter, search, sort
// and pagination.
func (h *BookingHandler) GetOrders(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	filter := repositories.OrderFilter{
		Status:      c.Query("status"),
		AirlineCode: c.Query("airline"),
		Search:      c.Query("search"),
		SortBy:      c.Query("sort", "created_at"),
		SortDesc:    c.Query("dir", "desc") == "desc",
		Offset:      p.Offset,
		Limit:       p.Limit,
	}
	// Non-admins only see their own orders.
	if claims.Role != models.RoleAdmin {
		filter.UserID = claims.UserID
	}

	orders, total, err := h.bookingService.ListOrders(c.Context(), filter)
	if err != nil {
		return response.ServerError(c, "Failed to fetch orders")
	}
	p.Total = total

	return c.JSON(pagination.Response(p, orders))
}

func (h *BookingHandler) GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid order ID")
	}

	order, err := h.bookingService.GetOrder(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, booking.ErrOrderNotFound) {
			return response.Error(c, fiber.StatusNotFound, "Order not found")
		}
		return response.ServerError(c, "Failed to fetch order")
	}
	return response.Success(c, "Order retrieved", order)
}

func (h *BookingHandler) RequestRefund(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid order ID")
	}

	var input struct {
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	refund, err := h.bookingService.RequestRefund(c.Context(), uint(orderID), input.Amount, input.Reason)
	if err != nil {
		if errors.Is(err, booking.ErrOrderNotFound) {
			return response.Error(c, fiber.StatusNotFound, "Order not found")
		}
		return response.ServerError(c, "Failed to create refund request")
	}
	return response.Success(c, "Refund requested", refund)
}

func (h *BookingHandler) GetRefunds(c *fiber.Ctx) error {
	orderID, _ := c.ParamsInt("id", 0)

	refunds, err := h.bookingService.ListRefunds(c.Context(), uint(orderID), c.Query("status"))
	if err != nil {
		return response.ServerError(c, "Failed to fetch refunds")
	}
	return response.Success(c, "Refunds retrieved", refunds)
}

func (h *BookingHandler) RequestAncillary(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid order ID")
	}

	var input struct {
		Type        string `json:"type"`
		Description string `json:"description"`
		Amount      int64  `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	req, err := h.bookingService.RequestAncillary(c.Context(), uint(orderID), input.Type, input.Description, input.Amount)
	if err != nil {
		if errors.Is(err, booking.ErrOrderNotFound) {
			return response.Error(c, fiber.StatusNotFound, "Order not found")
		}
		return response.ServerError(c, "Failed to create ancillary request")
	}
	return response.Success(c, "Ancillary requested", req)
}

func (h *BookingHandler) GetAncillaries(c *fiber.Ctx) error {
	orderID, _ := c.ParamsInt("id", 0)

	reqs, err := h.bookingService.ListAncillaries(c.Context(), uint(orderID), c.Query("type"))
	if err != nil {
		return response.ServerError(c, "Failed to fetch ancillaries")
	}
	return response.Success(c, "Ancillaries retrieved", reqs)
}
