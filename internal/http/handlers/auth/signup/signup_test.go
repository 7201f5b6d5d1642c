package signup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// MockService реализует интерфейс signup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	args := m.Called(ctx, email, password, name)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSignupHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"email":"john@example.com","password":"secret123","name":"John"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "john@example.com", "secret123", "John").
					Return(&models.User{
						UID:   "9f8e7d6c-5b4a-4392-8170-6e5d4c3b2a19",
						Email: "john@example.com",
						Name:  "John",
					}, "signed.jwt.token", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"token":"signed.jwt.token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{email`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует email",
			body:           `{"password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email is a required field`,
		},
		{
			name:           "слишком короткий пароль",
			body:           `{"email":"john@example.com","password":"short"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password is shorter than the allowed minimum`,
		},
		{
			name: "дубликат email",
			body: `{"email":"john@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "john@example.com", "secret123", "").
					Return(nil, "", app_errors.ErrUserExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"user already exists"`,
		},
		{
			name: "ошибка хранилища",
			body: `{"email":"john@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "john@example.com", "secret123", "").
					Return(nil, "", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
