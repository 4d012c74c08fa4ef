package markup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skyfare/internal/models"
	"skyfare/internal/repositories"
	"skyfare/internal/repositories/cache"
)

const (
	// resolveCachePrefix namespaces cached resolved percentages.
	resolveCachePrefix = "markup:resolve"
	resolveCacheTTL    = 10 * time.Minute
)

// Service manages markup rules and resolves the percentage that applies
// to a pricing request.
type Service interface {
	ListRules(ctx context.Context, airlineCode, role string) ([]models.MarkupRule, error)
	UpsertRule(ctx context.Context, input RuleInput) (*models.MarkupRule, error)
	DeleteRule(ctx context.Context, id uint) error

	FindExact(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (*models.MarkupRule, error)
	FindByAirlineAndRole(ctx context.Context, airlineCode, role string) (*models.MarkupRule, error)

	// Resolve returns the percentage for a pricing flow: the
	// route-specific rule when both airports are given and such a rule
	// exists, otherwise the airline+role catch-all, otherwise 0.
	Resolve(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (float64, error)
}

type service struct {
	repo  repositories.MarkupRuleRepository
	cache *cache.CacheService
}

// NewService creates a markup rule service. The cache is optional; a nil
// cache disables resolve caching.
func NewService(repo repositories.MarkupRuleRepository, cacheService *cache.CacheService) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) ListRules(ctx context.Context, airlineCode, role string) ([]models.MarkupRule, error) {
	airlineCode = NormalizeCode(airlineCode)
	if airlineCode == "" && role == "" {
		return s.repo.List(ctx)
	}
	return s.repo.ListByAirline(ctx, airlineCode, role)
}

func (s *service) UpsertRule(ctx context.Context, input RuleInput) (*models.MarkupRule, error) {
	input.AirlineCode = NormalizeCode(input.AirlineCode)
	input.FromAirport = NormalizeCode(input.FromAirport)
	input.ToAirport = NormalizeCode(input.ToAirport)

	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	if input.ID != 0 {
		// Editing keeps the rule's identity; only the percentage moves.
		rule, err := s.repo.GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrMarkupRuleNotFound) {
				return nil, ErrRuleNotFound
			}
			return nil, err
		}
		rule.MarkupPercent = input.MarkupPercent
		if err := s.repo.Update(ctx, rule); err != nil {
			return nil, fmt.Errorf("failed to update markup rule: %w", err)
		}
		s.invalidateResolved(ctx)
		return rule, nil
	}

	// Pre-insert existence check: the same identity tuple must be edited,
	// not recreated. The composite unique index backs this up against
	// racing writers.
	existing, err := s.repo.FindByKey(ctx, input.AirlineCode, input.Role, input.FromAirport, input.ToAirport)
	if err != nil && !errors.Is(err, repositories.ErrMarkupRuleNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRule
	}

	rule := &models.MarkupRule{
		AirlineCode:   input.AirlineCode,
		Role:          input.Role,
		FromAirport:   input.FromAirport,
		ToAirport:     input.ToAirport,
		MarkupPercent: input.MarkupPercent,
	}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create markup rule: %w", err)
	}
	s.invalidateResolved(ctx)
	return rule, nil
}

func (s *service) DeleteRule(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMarkupRuleNotFound) {
			return ErrRuleNotFound
		}
		return err
	}
	s.invalidateResolved(ctx)
	return nil
}

func (s *service) FindExact(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (*models.MarkupRule, error) {
	rule, err := s.repo.FindByKey(ctx,
		NormalizeCode(airlineCode), role, NormalizeCode(fromAirport), NormalizeCode(toAirport))
	if err != nil {
		if errors.Is(err, repositories.ErrMarkupRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

func (s *service) FindByAirlineAndRole(ctx context.Context, airlineCode, role string) (*models.MarkupRule, error) {
	return s.FindExact(ctx, airlineCode, role, "", "")
}

func (s *service) Resolve(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (float64, error) {
	airlineCode = NormalizeCode(airlineCode)
	fromAirport = NormalizeCode(fromAirport)
	toAirport = NormalizeCode(toAirport)

	cacheKey := fmt.Sprintf("%s:%s:%s:%s:%s", resolveCachePrefix, airlineCode, role, fromAirport, toAirport)
	if s.cache != nil {
		if percent, found, err := s.cache.GetFloat64(ctx, cacheKey); err == nil && found {
			return percent, nil
		}
	}

	percent, err := s.resolve(ctx, airlineCode, role, fromAirport, toAirport)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetFloat64(ctx, cacheKey, percent, resolveCacheTTL); err != nil {
			log.Printf("failed to cache resolved markup for %s: %v", cacheKey, err)
		}
	}
	return percent, nil
}

// resolve implements the two-tier precedence: route-specific rule first
// (only when both airports are supplied), then the airline+role
// catch-all, then zero. A missing rule is not an error.
func (s *service) resolve(ctx context.Context, airlineCode, role, fromAirport, toAirport string) (float64, error) {
	if fromAirport != "" && toAirport != "" {
		rule, err := s.repo.FindByKey(ctx, airlineCode, role, fromAirport, toAirport)
		if err == nil {
			return rule.MarkupPercent, nil
		}
		if !errors.Is(err, repositories.ErrMarkupRuleNotFound) {
			return 0, err
		}
	}

	rule, err := s.repo.FindByKey(ctx, airlineCode, role, "", "")
	if err == nil {
		return rule.MarkupPercent, nil
	}
	if errors.Is(err, repositories.ErrMarkupRuleNotFound) {
		return 0, nil
	}
	return 0, err
}

// invalidateResolved drops every cached resolution after any rule write,
// so pricing flows see the stored rules immediately.
func (s *service) invalidateResolved(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, resolveCachePrefix+":*"); err != nil {
		log.Printf("failed to invalidate resolved markup cache: %v", err)
	}
}
