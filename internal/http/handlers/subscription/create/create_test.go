package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, userUID, courseID, promoCode string) (*models.SubscriptionResult, error) {
	args := m.Called(ctx, userUID, courseID, promoCode)
	if res := args.Get(0); res != nil {
		return res.(*models.SubscriptionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const (
	testUserUID  = "8b6d2e54-7f1a-4c3e-9b0f-2d5a8c1e6f43"
	testCourseID = "f2c1a9d7-3e5b-4a8c-b6d0-1e9f7a4c2b58"
)

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное оформление подписки",
			body:    `{"courseId":"` + testCourseID + `","promoCode":"BFSALE25"}`,
			userUID: testUserUID,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, testUserUID, testCourseID, "BFSALE25").
					Return(&models.SubscriptionResult{
						ID:              "a7e3c5f1-9b2d-4e6a-8c0b-3f5d7a9e1c24",
						CourseID:        testCourseID,
						PricePaid:       49.995,
						OriginalPrice:   99.99,
						DiscountPercent: 50,
						SubscribedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"pricePaid":49.995`,
		},
		{
			name:           "некорректный JSON",
			body:           `{course`,
			userUID:        testUserUID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует courseId",
			body:           `{"promoCode":"BFSALE25"}`,
			userUID:        testUserUID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field CourseID is a required field`,
		},
		{
			name:           "пользователь не авторизован",
			body:           `{"courseId":"` + testCourseID + `"}`,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "курс не найден",
			body:    `{"courseId":"` + testCourseID + `","promoCode":"BFSALE25"}`,
			userUID: testUserUID,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, testUserUID, testCourseID, "BFSALE25").
					Return(nil, app_errors.ErrCourseNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"course not found"`,
		},
		{
			name:    "повторная подписка",
			body:    `{"courseId":"` + testCourseID + `"}`,
			userUID: testUserUID,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, testUserUID, testCourseID, "").
					Return(nil, app_errors.ErrAlreadySubscribed)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"already subscribed to this course"`,
		},
		{
			name:    "платный курс без промо-кода",
			body:    `{"courseId":"` + testCourseID + `"}`,
			userUID: testUserUID,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, testUserUID, testCourseID, "").
					Return(nil, app_errors.ErrPromoCodeRequired)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"promo code is required for paid courses"`,
		},
		{
			name:    "неверный промо-код",
			body:    `{"courseId":"` + testCourseID + `","promoCode":"WRONG"}`,
			userUID: testUserUID,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, testUserUID, testCourseID, "WRONG").
					Return(nil, app_errors.ErrInvalidPromoCode)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid promo code"`,
		},
		{
			name:    "ошибка хранилища",
			body:    `{"courseId":"` + testCourseID + `"}`,
			userUID: testUserUID,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, testUserUID, testCourseID, "").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(tt.body))
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
