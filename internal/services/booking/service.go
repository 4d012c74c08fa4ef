package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"skyfare/internal/models"
	"skyfare/internal/repositories"
	"skyfare/internal/services/flightapi"
	"skyfare/internal/services/markup"
	"skyfare/internal/services/payment"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrPricingFailed = errors.New("failed to price offer")
)

// Service runs the order-tracking side of the dashboard and the two
// confirmation flows that fold markup into what the customer is charged.
type Service interface {
	// ConfirmOrder prices the offer, resolves the acting user's markup,
	// applies it to every fare line, captures the adjusted total and
	// persists the order with the markup-applied fare snapshot.
	ConfirmOrder(ctx context.Context, userID uint, role, offerID string) (*models.BookingOrder, error)

	// SellSummary computes the offer-sell confirmation totals without
	// creating an order.
	SellSummary(ctx context.Context, role, offerID string) (*markup.SellQuote, error)

	// MarkupQuote is the standalone markup calculation display.
	MarkupQuote(ctx context.Context, role, airlineCode, fromAirport, toAirport string, payable, vat int64) (*markup.SummaryQuote, error)

	ListOrders(ctx context.Context, filter repositories.OrderFilter) ([]models.BookingOrder, int64, error)
	GetOrder(ctx context.Context, id uint) (*models.BookingOrder, error)

	RequestRefund(ctx context.Context, orderID uint, amount int64, reason string) (*models.RefundRequest, error)
	ListRefunds(ctx context.Context, orderID uint, status string) ([]models.RefundRequest, error)

	RequestAncillary(ctx context.Context, orderID uint, ancillaryType, description string, amount int64) (*models.AncillaryRequest, error)
	ListAncillaries(ctx context.Context, orderID uint, ancillaryType string) ([]models.AncillaryRequest, error)
}

type service struct {
	repo     repositories.BookingRepository
	flights  flightapi.Service
	markups  markup.Service
	payments payment.Service
}

func NewService(
	repo repositories.BookingRepository,
	flights flightapi.Service,
	markups markup.Service,
	payments payment.Service,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if flights == nil {
		panic("flight service is required")
	}
	if markups == nil {
		panic("markup service is required")
	}
	return &service{
		repo:     repo,
		flights:  flights,
		markups:  markups,
		payments: payments,
	}
}

func (s *service) ConfirmOrder(ctx context.Context, userID uint, role, offerID string) (*models.BookingOrder, error) {
	offer, err := s.flights.PriceOffer(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricingFailed, err)
	}

	// Rule lookup must finish before the fare lines are adjusted.
	percent, err := s.markups.Resolve(ctx, offer.AirlineCode, role, offer.FromAirport, offer.ToAirport)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve markup: %w", err)
	}

	lines, total := markup.ApplyToOffer(offer.FareLines, percent)
	var commission int64
	for _, line := range lines {
		commission += line.Discount
	}

	order := &models.BookingOrder{
		Reference:    newReference(),
		UserID:       userID,
		OfferID:      offer.ID,
		AirlineCode:  markup.NormalizeCode(offer.AirlineCode),
		FromAirport:  markup.NormalizeCode(offer.FromAirport),
		ToAirport:    markup.NormalizeCode(offer.ToAirport),
		Status:       models.OrderStatusPending,
		Currency:     offer.Currency,
		GrossAmount:  offer.Gross,
		Payable:      offer.Payable,
		MarkupAmount: commission,
		TotalAmount:  total,
		FareSnapshot: models.NewJSON(lines),
	}

	if s.payments != nil {
		paymentRef, err := s.payments.Capture(ctx, total, offer.Currency, order.Reference)
		if err != nil {
			return nil, err
		}
		order.PaymentRef = paymentRef
		order.Status = models.OrderStatusConfirmed
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.Printf("order %s confirmed: airline=%s total=%d %s markup=%d",
		order.Reference, order.AirlineCode, order.TotalAmount, order.Currency, order.MarkupAmount)
	return order, nil
}

func (s *service) SellSummary(ctx context.Context, role, offerID string) (*markup.SellQuote, error) {
	offer, err := s.flights.PriceOffer(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricingFailed, err)
	}

	percent, err := s.markups.Resolve(ctx, offer.AirlineCode, role, offer.FromAirport, offer.ToAirport)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve markup: %w", err)
	}

	quote := markup.SellSummary(offer.Gross, offer.Payable, percent)
	return &quote, nil
}

func (s *service) MarkupQuote(ctx context.Context, role, airlineCode, fromAirport, toAirport string, payable, vat int64) (*markup.SummaryQuote, error) {
	percent, err := s.markups.Resolve(ctx, airlineCode, role, fromAirport, toAirport)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve markup: %w", err)
	}

	quote := markup.SummaryTotal(payable, vat, percent)
	return &quote, nil
}

func (s *service) ListOrders(ctx context.Context, filter repositories.OrderFilter) ([]models.BookingOrder, int64, error) {
	return s.repo.ListOrders(ctx, filter)
}

func (s *service) GetOrder(ctx context.Context, id uint) (*models.BookingOrder, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *service) RequestRefund(ctx context.Context, orderID uint, amount int64, reason string) (*models.RefundRequest, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	refund := &models.RefundRequest{
		OrderID:   order.ID,
		Reference: newReference(),
		Amount:    amount,
		Currency:  order.Currency,
		Reason:    reason,
	}
	if err := s.repo.CreateRefund(ctx, refund); err != nil {
		return nil, fmt.Errorf("failed to create refund request: %w", err)
	}
	return refund, nil
}

func (s *service) ListRefunds(ctx context.Context, orderID uint, status string) ([]models.RefundRequest, error) {
	return s.repo.ListRefunds(ctx, orderID, status)
}

func (s *service) RequestAncillary(ctx context.Context, orderID uint, ancillaryType, description string, amount int64) (*models.AncillaryRequest, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	req := &models.AncillaryRequest{
		OrderID:     order.ID,
		Type:        ancillaryType,
		Description: description,
		Amount:      amount,
		Currency:    order.Currency,
	}
	if err := s.repo.CreateAncillary(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create ancillary request: %w", err)
	}
	return req, nil
}

func (s *service) ListAncillaries(ctx context.Context, orderID uint, ancillaryType string) ([]models.AncillaryRequest, error) {
	return s.repo.ListAncillaries(ctx, orderID, ancillaryType)
}

// newReference builds a short booking reference, e.g. SF3F9A2C.
func newReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SF" + id[:6]
}
