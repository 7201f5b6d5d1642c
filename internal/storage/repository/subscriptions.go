package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// CreateSubscription вставляет запись подписки и возвращает её, прочитанную
// из базы после вставки. Уникальное ограничение (user_uid, course_id) —
// единственный источник истины для обнаружения дубликатов: повторная вставка
// даёт app_errors.ErrAlreadySubscribed, отдельной проверки существования нет.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (id, user_uid, course_id, price_paid)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_uid, course_id, price_paid, subscribed_at`
	row := s.DB.QueryRowContext(ctx, query,
		uuid.New().String(), sub.UserUID, sub.CourseID, sub.PricePaid)

	var created models.Subscription
	if err := row.Scan(&created.ID, &created.UserUID, &created.CourseID,
		&created.PricePaid, &created.SubscribedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, app_errors.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListUserCourses возвращает подписки пользователя, объединённые с полями
// курса для отображения, сначала новые.
func (s *Storage) ListUserCourses(ctx context.Context, userUID string) ([]*models.UserCourse, error) {
	const op = "storage.ListUserCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.course_id, c.title, c.description, c.image,
			      s.price_paid, s.subscribed_at
			  FROM subscriptions s
			  JOIN courses c ON c.id = s.course_id
			  WHERE s.user_uid = $1
			  ORDER BY s.subscribed_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserCourse
	for rows.Next() {
		var item models.UserCourse
		if err := rows.Scan(&item.ID, &item.CourseID, &item.Title, &item.Description,
			&item.Image, &item.PricePaid, &item.SubscribedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
