package send

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
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Send(name, email, message string) error {
	args := m.Called(name, email, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSendHandler_ServeHTTP(t *testing.T) {
	validBody := Request{Name: "Alice", Email: "alice@example.com", Message: "Hello there"}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantBodyPart   string
	}{
		{
			name:           "successful send",
			requestBody:    validBody,
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantBodyPart:   "Email sent",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantBodyPart:   "invalid request body",
		},
		{
			name:           "validation error - missing message",
			requestBody:    Request{Name: "Alice", Email: "alice@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBodyPart:   "field Message is a required field",
		},
		{
			name:           "smtp failure",
			requestBody:    validBody,
			mockErr:        errors.New("connection refused"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantBodyPart:   "could not send email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockCalled {
				r := tt.requestBody.(Request)
				serviceMock.On("Send", r.Name, r.Email, r.Message).Return(tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/sendMail", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBodyPart)

			serviceMock.AssertExpectations(t)
		})
	}
}
