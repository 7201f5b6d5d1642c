// Package app_errors содержит сентинельные ошибки уровня приложения.
// Обработчики HTTP сопоставляют их со статусами через errors.Is.
package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrCourseNotFound = errors.New("course not found")
var ErrAlreadySubscribed = errors.New("already subscribed to this course")
var ErrPromoCodeRequired = errors.New("promo code is required for paid courses")
var ErrInvalidPromoCode = errors.New("invalid promo code")
