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

// CreateUser сохраняет нового пользователя и возвращает запись, прочитанную
// из базы после вставки. Дубликат email даёт app_errors.ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, email, name, password_hash)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid, email, name, password_hash, created_at`
	row := s.DB.QueryRowContext(ctx, query,
		uuid.New().String(), user.Email, user.Name, user.PasswordHash)

	var created models.User
	if err := row.Scan(&created.UID, &created.Email, &created.Name,
		&created.PasswordHash, &created.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, app_errors.ErrUserExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetUserByEmail возвращает пользователя по точному совпадению email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, created_at
			  FROM users WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	var result models.User
	if err := row.Scan(&result.UID, &result.Email, &result.Name,
		&result.PasswordHash, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
