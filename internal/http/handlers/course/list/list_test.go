package list

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

	"github.com/magabrotheeeer/course-subscription/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение каталога",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return([]*models.Course{
					{ID: "f2c1a9d7-3e5b-4a8c-b6d0-1e9f7a4c2b58", Title: "Node.js Masterclass", Price: 99.99},
					{ID: "a7e3c5f1-9b2d-4e6a-8c0b-3f5d7a9e1c24", Title: "Web Development Basics", Price: 0},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Node.js Masterclass"`,
		},
		{
			name: "пустой каталог",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return([]*models.Course{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"courses":[]`,
		},
		{
			name: "ошибка хранилища",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not list courses"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/courses", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
