package markup

import (
	"context"
	"math"
	"testing"

	"skyfare/internal/models"
	"skyfare/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMarkupRuleRepository struct {
	mock.Mock
}

func (m *MockMarkupRuleRepository) List(ctx context.Context) ([]models.MarkupRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MarkupRule), args.Error(1)
}

func (m *MockMarkupRuleRepository) ListByAirline(ctx context.Context, airlineCode, role string) ([]models.MarkupRule, error) {
	args := m.Called(ctx, airlineCode, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MarkupRule), args.Error(1)
}

func (m *MockMarkupRuleRepository) GetByID(ctx context.Context, id uint) (*models.MarkupRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarkupRule), args.Error(1)
}

func (m *MockMarkupRuleRepository) FindByKey(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (*models.MarkupRule, error) {
	args := m.Called(ctx, airlineCode, role, fromAirport, toAirport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarkupRule), args.Error(1)
}

func (m *MockMarkupRuleRepository) Create(ctx context.Context, rule *models.MarkupRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockMarkupRuleRepository) Update(ctx context.Context, rule *models.MarkupRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockMarkupRuleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("route-specific rule wins over catch-all", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "DAC", "DXB").
			Return(&models.MarkupRule{MarkupPercent: 7}, nil)

		s := NewService(repo, nil)
		percent, err := s.Resolve(ctx, "EK", models.RoleAgent, "DAC", "DXB")

		assert.NoError(t, err)
		assert.Equal(t, 7.0, percent)
		repo.AssertNotCalled(t, "FindByKey", ctx, "EK", models.RoleAgent, "", "")
	})

	t.Run("falls back to catch-all when no route rule exists", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "DAC", "DXB").
			Return(nil, repositories.ErrMarkupRuleNotFound)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "", "").
			Return(&models.MarkupRule{MarkupPercent: 5}, nil)

		s := NewService(repo, nil)
		percent, err := s.Resolve(ctx, "EK", models.RoleAgent, "DAC", "DXB")

		assert.NoError(t, err)
		assert.Equal(t, 5.0, percent)
		repo.AssertExpectations(t)
	})

	t.Run("no rule at all resolves to zero without error", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, repositories.ErrMarkupRuleNotFound)

		s := NewService(repo, nil)
		percent, err := s.Resolve(ctx, "EK", models.RoleUser, "DAC", "DXB")

		assert.NoError(t, err)
		assert.Equal(t, 0.0, percent)
	})

	t.Run("skips route lookup when an airport is missing", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "", "").
			Return(&models.MarkupRule{MarkupPercent: 5}, nil)

		s := NewService(repo, nil)
		percent, err := s.Resolve(ctx, "EK", models.RoleAgent, "DAC", "")

		assert.NoError(t, err)
		assert.Equal(t, 5.0, percent)
		repo.AssertNumberOfCalls(t, "FindByKey", 1)
	})

	t.Run("lowercase codes resolve against the stored uppercase key", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "DAC", "DXB").
			Return(&models.MarkupRule{MarkupPercent: 7}, nil)

		s := NewService(repo, nil)
		percent, err := s.Resolve(ctx, "ek", models.RoleAgent, "dac", "dxb")

		assert.NoError(t, err)
		assert.Equal(t, 7.0, percent)
		repo.AssertExpectations(t)
	})
}

func TestService_UpsertRule(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new rule when the key is free", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "DAC", "DXB").
			Return(nil, repositories.ErrMarkupRuleNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(rule *models.MarkupRule) bool {
			return rule.AirlineCode == "EK" && rule.MarkupPercent == 7
		})).Return(nil)

		s := NewService(repo, nil)
		rule, err := s.UpsertRule(ctx, RuleInput{
			AirlineCode:   "ek",
			Role:          models.RoleAgent,
			FromAirport:   "dac",
			ToAirport:     "dxb",
			MarkupPercent: 7,
		})

		assert.NoError(t, err)
		assert.Equal(t, "EK", rule.AirlineCode)
		assert.Equal(t, "DAC", rule.FromAirport)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a second rule for the same key", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "DAC", "DXB").
			Return(&models.MarkupRule{MarkupPercent: 5}, nil)

		s := NewService(repo, nil)
		_, err := s.UpsertRule(ctx, RuleInput{
			AirlineCode:   "EK",
			Role:          models.RoleAgent,
			FromAirport:   "DAC",
			ToAirport:     "DXB",
			MarkupPercent: 9,
		})

		assert.ErrorIs(t, err, ErrDuplicateRule)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("allows the same airline and role on a different route", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "DAC", "JFK").
			Return(nil, repositories.ErrMarkupRuleNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		s := NewService(repo, nil)
		_, err := s.UpsertRule(ctx, RuleInput{
			AirlineCode:   "EK",
			Role:          models.RoleAgent,
			FromAirport:   "DAC",
			ToAirport:     "JFK",
			MarkupPercent: 4,
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("edits only the percentage of an existing rule", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		existing := &models.MarkupRule{
			AirlineCode:   "EK",
			Role:          models.RoleAgent,
			MarkupPercent: 5,
		}
		repo.On("GetByID", ctx, uint(12)).Return(existing, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(rule *models.MarkupRule) bool {
			return rule.MarkupPercent == 9
		})).Return(nil)

		s := NewService(repo, nil)
		rule, err := s.UpsertRule(ctx, RuleInput{
			ID:            12,
			AirlineCode:   "EK",
			Role:          models.RoleAgent,
			MarkupPercent: 9,
		})

		assert.NoError(t, err)
		assert.Equal(t, 9.0, rule.MarkupPercent)
		repo.AssertExpectations(t)
	})

	t.Run("editing a missing rule fails", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("GetByID", ctx, uint(99)).Return(nil, repositories.ErrMarkupRuleNotFound)

		s := NewService(repo, nil)
		_, err := s.UpsertRule(ctx, RuleInput{
			ID:            99,
			AirlineCode:   "EK",
			Role:          models.RoleAgent,
			MarkupPercent: 9,
		})

		assert.ErrorIs(t, err, ErrRuleNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input RuleInput
			want  error
		}{
			{
				name:  "airline code too long",
				input: RuleInput{AirlineCode: "EKX", Role: models.RoleAgent},
				want:  ErrInvalidAirlineCode,
			},
			{
				name:  "airline code empty",
				input: RuleInput{AirlineCode: "", Role: models.RoleAgent},
				want:  ErrInvalidAirlineCode,
			},
			{
				name:  "unknown role",
				input: RuleInput{AirlineCode: "EK", Role: "superuser"},
				want:  ErrInvalidRole,
			},
			{
				name:  "airport code wrong length",
				input: RuleInput{AirlineCode: "EK", Role: models.RoleAgent, FromAirport: "DACC"},
				want:  ErrInvalidAirportCode,
			},
			{
				name:  "non-finite percent",
				input: RuleInput{AirlineCode: "EK", Role: models.RoleAgent, MarkupPercent: math.NaN()},
				want:  ErrInvalidPercent,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(MockMarkupRuleRepository)
				s := NewService(repo, nil)

				_, err := s.UpsertRule(ctx, tt.input)

				assert.ErrorIs(t, err, tt.want)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestService_DeleteRule(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing rule", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("Delete", ctx, uint(3)).Return(nil)

		s := NewService(repo, nil)
		assert.NoError(t, s.DeleteRule(ctx, 3))
		repo.AssertExpectations(t)
	})

	t.Run("missing rule maps to the service sentinel", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("Delete", ctx, uint(3)).Return(repositories.ErrMarkupRuleNotFound)

		s := NewService(repo, nil)
		assert.ErrorIs(t, s.DeleteRule(ctx, 3), ErrRuleNotFound)
	})
}

func TestService_FindExact(t *testing.T) {
	ctx := context.Background()

	t.Run("blank route key finds the catch-all", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "", "").
			Return(&models.MarkupRule{MarkupPercent: 5}, nil)

		s := NewService(repo, nil)
		rule, err := s.FindByAirlineAndRole(ctx, "EK", models.RoleAgent)

		assert.NoError(t, err)
		assert.Equal(t, 5.0, rule.MarkupPercent)
	})

	t.Run("miss maps to the service sentinel", func(t *testing.T) {
		repo := new(MockMarkupRuleRepository)
		repo.On("FindByKey", ctx, "EK", models.RoleAgent, "DAC", "DXB").
			Return(nil, repositories.ErrMarkupRuleNotFound)

		s := NewService(repo, nil)
		_, err := s.FindExact(ctx, "EK", models.RoleAgent, "DAC", "DXB")

		assert.ErrorIs(t, err, ErrRuleNotFound)
	})
}
