package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/resolvenow/complaint-service/internal/domain"
	"github.com/resolvenow/complaint-service/internal/repository"
	apperrors "github.com/resolvenow/complaint-service/pkg/util"
)

const categoryCacheKey = "categories:all"

// CategoryService serves the predefined complaint categories, caching the
// full list in Redis. Cache failures degrade to direct reads.
type CategoryService struct {
	categories repository.CategoryRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// CategoryInput describes category create/update payloads.
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
}

// NewCategoryService constructs the service. cache may be nil.
func NewCategoryService(categories repository.CategoryRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.writeCache(ctx, categories)
	return categories, nil
}

// Create adds a category to the predefined set. Admin only.
func (s *CategoryService) Create(ctx context.Context, actor *domain.Profile, input CategoryInput) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", map[string]any{"field": "name"})
	}

	category := &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Icon:        domain.ResolveIcon(input.Icon),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.invalidateCache(ctx)
	return category, nil
}

// Update modifies a category. Admin only.
func (s *CategoryService) Update(ctx context.Context, actor *domain.Profile, id string, input CategoryInput) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", map[string]any{"field": "name"})
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.Icon = domain.ResolveIcon(input.Icon)

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.invalidateCache(ctx)
	return category, nil
}

func (s *CategoryService) readCache(ctx context.Context) ([]domain.Category, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("category cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		s.logger.Warn("category cache decode failed", zap.Error(err))
		return nil, false
	}
	return categories, true
}

func (s *CategoryService) writeCache(ctx context.Context, categories []domain.Category) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, categoryCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("category cache write failed", zap.Error(err))
	}
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoryCacheKey).Err(); err != nil {
		s.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
