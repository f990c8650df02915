package subscribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/docmycode/docmycode/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	args := m.Called(ctx, email)
	sub, _ := args.Get(0).(*models.Subscriber)
	return sub, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubscribeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSub        *models.Subscriber
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantBodyPart   string
	}{
		{
			name:           "successful subscription",
			requestBody:    Request{Email: "new@example.com"},
			mockSub:        &models.Subscriber{ID: 1, Email: "new@example.com"},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantBodyPart:   "new@example.com",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantBodyPart:   "invalid request body",
		},
		{
			name:           "validation error - bad email",
			requestBody:    Request{Email: "not-an-email"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBodyPart:   "field Email must be a valid email address",
		},
		{
			name:           "duplicate subscription",
			requestBody:    Request{Email: "dup@example.com"},
			mockErr:        models.ErrAlreadySubscribed,
			mockCalled:     true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBodyPart:   "email is already subscribed",
		},
		{
			name:           "storage failure",
			requestBody:    Request{Email: "new@example.com"},
			mockErr:        errors.New("connection reset"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantBodyPart:   "could not subscribe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockCalled {
				serviceMock.On("Subscribe", mock.Anything, tt.requestBody.(Request).Email).
					Return(tt.mockSub, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/subscribe", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBodyPart)

			serviceMock.AssertExpectations(t)
		})
	}
}
