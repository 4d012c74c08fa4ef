package handlers

import (
	"errors"

	"skyfare/internal/models"
	"skyfare/internal/services/booking"
	"skyfare/internal/services/markup"
	"skyfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// MarkupHandler exposes the admin markup-rule CRUD surface and the
// standalone markup calculation display.
type MarkupHandler struct {
	markupService  markup.Service
	bookingService booking.Service
}

func NewMarkupHandler(markupService markup.Service, bookingService booking.Service) *MarkupHandler {
	return &MarkupHandler{
		markupService:  markupService,
		bookingService: bookingService,
	}
}

// ListRules serves the entries table, optionally filtered by airline and
// role query parameters.
func (h *MarkupHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.markupService.ListRules(c.Context(), c.Query("airline"), c.Query("role"))
	if err != nil {
		return response.ServerError(c, "Failed to fetch markup rules")
	}
	return response.Success(c, "Markup rules retrieved", rules)
}

func (h *MarkupHandler) UpsertRule(c *fiber.Ctx) error {
	var input markup.RuleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	rule, err := h.markupService.UpsertRule(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, markup.ErrDuplicateRule):
			return response.Conflict(c, err.Error())
		case errors.Is(err, markup.ErrInvalidAirlineCode),
			errors.Is(err, markup.ErrInvalidAirportCode),
			errors.Is(err, markup.ErrInvalidRole),
			errors.Is(err, markup.ErrInvalidPercent):
			return response.ValidationError(c, err.Error())
		case errors.Is(err, markup.ErrRuleNotFound):
			return response.Error(c, fiber.StatusNotFound, err.Error())
		default:
			return response.ServerError(c, "Failed to save markup rule")
		}
	}

	return response.Success(c, "Markup rule saved", rule)
}

func (h *MarkupHandler) DeleteRule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid rule ID")
	}

	if err := h.markupService.DeleteRule(c.Context(), uint(id)); err != nil {
		if errors.Is(err, markup.ErrRuleNotFound) {
			return response.Error(c, fiber.StatusNotFound, err.Error())
		}
		return response.ServerError(c, "Failed to delete markup rule")
	}
	return response.Success(c, "Markup rule deleted", nil)
}

// Quote serves the standalone markup calculation display: a payable
// amount plus vat, adjusted by the acting user's resolved percentage.
func (h *MarkupHandler) Quote(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		AirlineCode string `json:"airline_code"`
		FromAirport string `json:"from_airport"`
		ToAirport   string `json:"to_airport"`
		Payable     int64  `json:"payable"`
		VAT         int64  `json:"vat"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	quote, err := h.bookingService.MarkupQuote(c.Context(), claims.Role,
		input.AirlineCode, input.FromAirport, input.ToAirport, input.Payable, input.VAT)
	if err != nil {
		return response.ServerError(c, "Failed to compute quote")
	}
	return response.Success(c, "Quote computed", quote)
}
