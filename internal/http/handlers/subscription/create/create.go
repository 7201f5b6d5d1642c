// Package create реализует HTTP-обработчик оформления подписки на курс.
//
// Handler принимает JSON с ID курса и необязательным промо-кодом, валидирует его,
// извлекает идентификатор пользователя из контекста, вызывает бизнес-логику
// оформления подписки и возвращает созданную запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-subscription/internal/http/response"
	"github.com/magabrotheeeer/course-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// Request — входные данные для оформления подписки.
type Request struct {
	CourseID  string `json:"courseId" validate:"required,uuid"`
	PromoCode string `json:"promoCode"`
}

// Handler управляет HTTP-запросами на оформление подписок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики оформления подписок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Subscribe(ctx context.Context, userUID, courseID, promoCode string) (*models.SubscriptionResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить подписку на курс
// @Description Подписывает текущего пользователя на курс. Для платного курса обязателен действующий промо-код.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body Request true "ID курса и необязательный промо-код"
// @Success 201 {object} map[string]any "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, отсутствующий или неверный промо-код"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 409 {object} response.ErrorResponse "Подписка уже существует"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при оформлении подписки"
// @Router /subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("course_id", req.CourseID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.Subscribe(r.Context(), userUID, req.CourseID, req.PromoCode)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound):
			log.Error("course not found", slog.String("course_id", req.CourseID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
		case errors.Is(err, app_errors.ErrAlreadySubscribed):
			log.Error("duplicate subscription", slog.String("course_id", req.CourseID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("already subscribed to this course"))
		case errors.Is(err, app_errors.ErrPromoCodeRequired):
			log.Error("promo code missing", slog.String("course_id", req.CourseID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("promo code is required for paid courses"))
		case errors.Is(err, app_errors.ErrInvalidPromoCode):
			log.Error("invalid promo code", slog.String("course_id", req.CourseID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid promo code"))
		default:
			log.Error("failed to create subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create subscription"))
		}
		return
	}

	log.Info("success to create subscription", slog.String("id", result.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": result,
	}))
}
