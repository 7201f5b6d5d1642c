// Package models содержит доменные структуры, описывающие подписку пользователя
// на курс, а также представления для JSON-ответов и событий.
package models

import "time"

// Subscription представляет запись в журнале подписок: связывает пользователя
// и курс, фиксирует фактически уплаченную цену и момент подписки.
// Запись создаётся один раз и после этого не изменяется и не удаляется.
type Subscription struct {
	ID           string    // Уникальный идентификатор записи
	UserUID      string    // Идентификатор пользователя
	CourseID     string    // Идентификатор курса
	PricePaid    float64   // Фактически уплаченная цена, >= 0
	SubscribedAt time.Time // Момент оформления подписки
}

// SubscriptionResult — результат оформления подписки для JSON-ответа.
// OriginalPrice и DiscountPercent заполняются только на платном пути,
// на бесплатном пути поля опускаются.
type SubscriptionResult struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"courseId"`
	PricePaid       float64   `json:"pricePaid"`
	OriginalPrice   float64   `json:"originalPrice,omitempty"`
	DiscountPercent float64   `json:"discount,omitempty"`
	SubscribedAt    time.Time `json:"subscribedAt"`
}

// UserCourse — строка списка "мои курсы": подписка, объединённая
// с полями курса для отображения.
type UserCourse struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"courseId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	PricePaid    float64   `json:"pricePaid"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// SubscriptionEvent — событие об оформленной подписке, публикуемое
// в очередь для последующих уведомлений.
type SubscriptionEvent struct {
	SubscriptionID string    `json:"subscription_id"`
	UserUID        string    `json:"user_uid"`
	CourseID       string    `json:"course_id"`
	CourseTitle    string    `json:"course_title"`
	PricePaid      float64   `json:"price_paid"`
	SubscribedAt   time.Time `json:"subscribed_at"`
}
