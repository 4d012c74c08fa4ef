package repositories

import (
	"context"
	"errors"
	"fmt"

	"skyfare/internal/models"

	"gorm.io/gorm"
)

type markupRuleRepository struct {
	db *gorm.DB
}

func NewMarkupRuleRepository(db *gorm.DB) MarkupRuleRepository {
	return &markupRuleRepository{
		db: db,
	}
}

func (r *markupRuleRepository) List(ctx context.Context) ([]models.MarkupRule, error) {
	var rules []models.MarkupRule
	if err := r.db.WithContext(ctx).Order("airline_code, role").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list markup rules: %w", err)
	}
	return rules, nil
}

func (r *markupRuleRepository) ListByAirline(ctx context.Context, airlineCode, role string) ([]models.MarkupRule, error) {
	query := r.db.WithContext(ctx).Model(&models.MarkupRule{})
	if airlineCode != "" {
		query = query.Where("airline_code = ?", airlineCode)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var rules []models.MarkupRule
	if err := query.Order("airline_code, role").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list markup rules: %w", err)
	}
	return rules, nil
}

func (r *markupRuleRepository) GetByID(ctx context.Context, id uint) (*models.MarkupRule, error) {
	var rule models.MarkupRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarkupRuleNotFound
		}
		return nil, fmt.Errorf("failed to get markup rule: %w", err)
	}
	return &rule, nil
}

func (r *markupRuleRepository) FindByKey(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (*models.MarkupRule, error) {
	var rule models.MarkupRule
	err := r.db.WithContext(ctx).
		Where("airline_code = ? AND role = ? AND from_airport = ? AND to_airport = ?",
			airlineCode, role, fromAirport, toAirport).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarkupRuleNotFound
		}
		return nil, fmt.Errorf("failed to find markup rule: %w", err)
	}
	return &rule, nil
}

func (r *markupRuleRepository) Create(ctx context.Context, rule *models.MarkupRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *markupRuleRepository) Update(ctx context.Context, rule *models.MarkupRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *markupRuleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.MarkupRule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMarkupRuleNotFound
	}
	return nil
}
