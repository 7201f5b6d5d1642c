package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// CreateCourse добавляет курс в каталог и возвращает созданную запись.
// Используется административным процессом наполнения каталога.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (id, title, description, price, image)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, title, description, price, image, created_at`
	row := s.DB.QueryRowContext(ctx, query,
		uuid.New().String(), course.Title, course.Description, course.Price, course.Image)

	var created models.Course
	if err := row.Scan(&created.ID, &created.Title, &created.Description,
		&created.Price, &created.Image, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListCourses возвращает все курсы каталога, сначала новые.
func (s *Storage) ListCourses(ctx context.Context) ([]*models.Course, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, price, image, created_at
			  FROM courses
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		if err := rows.Scan(&item.ID, &item.Title, &item.Description,
			&item.Price, &item.Image, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCourseByID возвращает курс по его ID или app_errors.ErrCourseNotFound.
func (s *Storage) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	const op = "storage.GetCourseByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, price, image, created_at
			  FROM courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Course
	if err := row.Scan(&result.ID, &result.Title, &result.Description,
		&result.Price, &result.Image, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// DeleteAllCourses очищает каталог. Используется только при пересеве данных.
func (s *Storage) DeleteAllCourses(ctx context.Context) error {
	const op = "storage.DeleteAllCourses"
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
