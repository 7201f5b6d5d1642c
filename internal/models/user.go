// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (хранится в нижнем регистре, без пробелов)
	Name         string    // Отображаемое имя, может быть пустым
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата создания учётной записи
}

// UserView — публичное представление пользователя для JSON-ответов.
// Хэш пароля наружу не отдаётся.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// View возвращает публичное представление пользователя.
func (u *User) View() UserView {
	return UserView{
		ID:    u.UID,
		Email: u.Email,
		Name:  u.Name,
	}
}
