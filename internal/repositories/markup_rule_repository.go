package repositories

import (
	"context"
	"errors"

	"skyfare/internal/models"
)

var ErrMarkupRuleNotFound = errors.New("markup rule not found")

// MarkupRuleRepository defines the persistence operations the markup
// rule store depends on: list-all, equality filters on the identity
// tuple, add, update-by-id and delete-by-id. No transactions and no
// range queries.
type MarkupRuleRepository interface {
	List(ctx context.Context) ([]models.MarkupRule, error)

	// ListByAirline narrows the entries table by airline and optionally
	// role; empty strings mean no filter.
	ListByAirline(ctx context.Context, airlineCode, role string) ([]models.MarkupRule, error)

	GetByID(ctx context.Context, id uint) (*models.MarkupRule, error)

	// FindByKey returns the rule matching the exact identity tuple,
	// including the blank-route tuple when both airports are empty.
	FindByKey(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (*models.MarkupRule, error)

	Create(ctx context.Context, rule *models.MarkupRule) error
	Update(ctx context.Context, rule *models.MarkupRule) error
	Delete(ctx context.Context, id uint) error
}
