package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skyfare/internal/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("booking order not found")

// OrderFilter shapes the dashboard order-table queries: equality filters,
// free-text search on the reference code, sorting and pagination.
type OrderFilter struct {
	UserID      uint
	Status      string
	AirlineCode string
	Search      string
	SortBy      string
	SortDesc    bool
	Offset      int
	Limit       int
}

// BookingRepository persists orders and their refund/ancillary requests.
type BookingRepository interface {
	CreateOrder(ctx context.Context, order *models.BookingOrder) error
	GetOrderByID(ctx context.Context, id uint) (*models.BookingOrder, error)
	GetOrderByReference(ctx context.Context, reference string) (*models.BookingOrder, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.BookingOrder, int64, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) error

	CreateRefund(ctx context.Context, refund *models.RefundRequest) error
	ListRefunds(ctx context.Context, orderID uint, status string) ([]models.RefundRequest, error)

	CreateAncillary(ctx context.Context, req *models.AncillaryRequest) error
	ListAncillaries(ctx context.Context, orderID uint, reqType string) ([]models.AncillaryRequest, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

func (r *bookingRepository) CreateOrder(ctx context.Context, order *models.BookingOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *bookingRepository) GetOrderByID(ctx context.Context, id uint) (*models.BookingOrder, error) {
	var order models.BookingOrder
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *bookingRepository) GetOrderByReference(ctx context.Context, reference string) (*models.BookingOrder, error) {
	var order models.BookingOrder
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// sortColumns whitelists the sortable order-table columns.
var sortColumns = map[string]string{
	"created_at":   "created_at",
	"reference":    "reference",
	"airline":      "airline_code",
	"status":       "status",
	"total_amount": "total_amount",
}

func (r *bookingRepository) ListOrders(ctx context.Context, filter OrderFilter) ([]models.BookingOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BookingOrder{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AirlineCode != "" {
		query = query.Where("airline_code = ?", filter.AirlineCode)
	}
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+strings.ToUpper(filter.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc || !ok {
		direction = "DESC"
	}

	var orders []models.BookingOrder
	err := query.Order(column + " " + direction).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (r *bookingRepository) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.BookingOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *bookingRepository) CreateRefund(ctx context.Context, refund *models.RefundRequest) error {
	return r.db.WithContext(ctx).Create(refund).Error
}

func (r *bookingRepository) ListRefunds(ctx context.Context, orderID uint, status string) ([]models.RefundRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.RefundRequest{})
	if orderID != 0 {
		query = query.Where("order_id = ?", orderID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var refunds []models.RefundRequest
	if err := query.Order("created_at DESC").Find(&refunds).Error; err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	return refunds, nil
}

func (r *bookingRepository) CreateAncillary(ctx context.Context, req *models.AncillaryRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *bookingRepository) ListAncillaries(ctx context.Context, orderID uint, reqType string) ([]models.AncillaryRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.AncillaryRequest{})
	if orderID != 0 {
		query = query.Where("order_id = ?", orderID)
	}
	if reqType != "" {
		query = query.Where("type = ?", reqType)
	}

	var reqs []models.AncillaryRequest
	if err := query.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list ancillaries: %w", err)
	}
	return reqs, nil
}
