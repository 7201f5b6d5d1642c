// Package services содержит бизнес-логику оформления подписок на курсы:
// вычисление цены, проверку промо-кода и запись в журнал подписок.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// CourseRepository определяет чтение каталога, необходимое при оформлении подписки.
type CourseRepository interface {
	// GetCourseByID возвращает курс по ID или app_errors.ErrCourseNotFound.
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
}

// SubscriptionRepository определяет методы журнала подписок в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription вставляет запись; дубликат (user, course) даёт
	// app_errors.ErrAlreadySubscribed.
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// ListUserCourses возвращает подписки пользователя с полями курса, сначала новые.
	ListUserCourses(ctx context.Context, userUID string) ([]*models.UserCourse, error)
}

// EventPublisher описывает публикацию событий об оформленных подписках.
type EventPublisher interface {
	PublishSubscriptionCreated(event models.SubscriptionEvent) error
}

// SubscriptionService решает, состоится ли подписка и по какой цене.
// Действующий промо-код и доля скидки внедряются при создании сервиса,
// что позволяет менять кампанию без изменения кода.
type SubscriptionService struct {
	courses      CourseRepository
	subs         SubscriptionRepository
	events       EventPublisher
	promoCode    string
	discountRate float64
	log          *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
// events может быть nil, тогда события не публикуются.
func NewSubscriptionService(courses CourseRepository, subs SubscriptionRepository,
	events EventPublisher, promoCode string, discountRate float64, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		courses:      courses,
		subs:         subs,
		events:       events,
		promoCode:    promoCode,
		discountRate: discountRate,
		log:          log,
	}
}

// Subscribe оформляет подписку пользователя на курс.
//
// Бесплатный курс (цена 0) подписывается сразу, промо-код не требуется
// и не проверяется. Для платного курса промо-код обязателен и сравнивается
// с действующим кодом кампании точным, регистрозависимым сравнением;
// при совпадении цена умножается на (1 - discountRate). На любом пути
// отказа запись в журнал не производится. Дубликат пары (user, course)
// обнаруживает уникальное ограничение хранилища.
func (s *SubscriptionService) Subscribe(ctx context.Context, userUID, courseID, promoCode string) (*models.SubscriptionResult, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var pricePaid float64
	paid := course.Price > 0
	if paid {
		if promoCode == "" {
			return nil, app_errors.ErrPromoCodeRequired
		}
		if promoCode != s.promoCode {
			return nil, app_errors.ErrInvalidPromoCode
		}
		pricePaid = course.Price * (1 - s.discountRate)
	}

	created, err := s.subs.CreateSubscription(ctx, models.Subscription{
		UserUID:   userUID,
		CourseID:  course.ID,
		PricePaid: pricePaid,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created new subscription",
		slog.String("id", created.ID),
		slog.String("course_id", course.ID))

	result := &models.SubscriptionResult{
		ID:           created.ID,
		CourseID:     course.ID,
		PricePaid:    created.PricePaid,
		SubscribedAt: created.SubscribedAt,
	}
	if paid {
		result.OriginalPrice = course.Price
		result.DiscountPercent = s.discountRate * 100
	}

	if s.events != nil {
		event := models.SubscriptionEvent{
			SubscriptionID: created.ID,
			UserUID:        created.UserUID,
			CourseID:       course.ID,
			CourseTitle:    course.Title,
			PricePaid:      created.PricePaid,
			SubscribedAt:   created.SubscribedAt,
		}
		if err := s.events.PublishSubscriptionCreated(event); err != nil {
			s.log.Warn("failed to publish subscription event",
				slog.String("id", created.ID), slog.Any("err", err))
		}
	}

	return result, nil
}

// ListUserCourses возвращает подписки пользователя с полями курса, сначала новые.
func (s *SubscriptionService) ListUserCourses(ctx context.Context, userUID string) ([]*models.UserCourse, error) {
	return s.subs.ListUserCourses(ctx, userUID)
}
