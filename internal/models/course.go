// Package models содержит доменную модель курса из каталога.
// Курсы создаются административным процессом (seed) и доступны
// пользователям только для чтения.
package models

import "time"

// Course представляет курс из каталога.
type Course struct {
	ID          string    `json:"id"`          // Уникальный идентификатор курса
	Title       string    `json:"title"`       // Название курса
	Description string    `json:"description"` // Описание курса
	Price       float64   `json:"price"`       // Цена курса, >= 0; 0 означает бесплатный курс
	Image       string    `json:"image"`       // Ссылка на обложку курса
	CreatedAt   time.Time `json:"createdAt"`   // Дата добавления курса в каталог
}
