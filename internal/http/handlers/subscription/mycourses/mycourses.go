// Package mycourses реализует HTTP-обработчик списка курсов,
// на которые подписан текущий пользователь.
package mycourses

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-subscription/internal/http/response"
	"github.com/magabrotheeeer/course-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы списка подписок пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения подписок пользователя.
type Service interface {
	ListUserCourses(ctx context.Context, userUID string) ([]*models.UserCourse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои курсы
// @Description Возвращает подписки текущего пользователя с полями курса, сначала новые.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} map[string]any "Список подписок пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении подписок"
// @Router /my-courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.mycourses"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	courses, err := h.service.ListUserCourses(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list user courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list user courses"))
		return
	}

	log.Info("success to list user courses", slog.Int("count", len(courses)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"courses": courses,
	}))
}
