// Package services содержит бизнес-логику чтения каталога курсов с кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// CourseRepository определяет методы для чтения каталога курсов из хранилища.
type CourseRepository interface {
	// ListCourses возвращает все курсы, сначала новые.
	ListCourses(ctx context.Context) ([]*models.Course, error)
	// GetCourseByID возвращает курс по ID.
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует чтение каталога курсов с read-through кешем.
// Каталог для пользователей read-only, единственный писатель — процесс
// наполнения, поэтому окно устаревания кеша допустимо.
type CatalogService struct {
	repo  CourseRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
// cache может быть nil, тогда кеширование отключено.
func NewCatalogService(repo CourseRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const cacheTTL = time.Hour

// List возвращает все курсы каталога, сначала новые.
func (s *CatalogService) List(ctx context.Context) ([]*models.Course, error) {
	const cacheKey = "courses:all"

	if s.cache != nil {
		var cached []*models.Course
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read courses from cache", slog.Any("err", err))
		} else if found {
			return cached, nil
		}
	}

	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(cacheKey, courses, cacheTTL); err != nil {
			s.log.Warn("failed to cache courses", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return courses, nil
}

// Get возвращает курс по ID, используя кеш или репозиторий.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Course, error) {
	cacheKey := fmt.Sprintf("course:%s", id)

	if s.cache != nil {
		var cached *models.Course
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read course from cache", slog.String("key", cacheKey), slog.Any("err", err))
		} else if found {
			return cached, nil
		}
	}

	course, err := s.repo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(cacheKey, course, cacheTTL); err != nil {
			s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return course, nil
}
