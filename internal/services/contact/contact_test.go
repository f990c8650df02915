package services_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docmycode/docmycode/internal/lib/smtp"
	services "github.com/docmycode/docmycode/internal/services/contact"
)

type ClientMock struct {
	mock.Mock
	body bytes.Buffer
}

func (m *ClientMock) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *ClientMock) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *ClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return &nopWriteCloser{&m.body}, args.Error(1)
}

func (m *ClientMock) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *ClientMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type nopWriteCloser struct {
	w io.Writer
}

func (n *nopWriteCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n *nopWriteCloser) Close() error                { return nil }

type TransportMock struct {
	mock.Mock
}

func (m *TransportMock) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *TransportMock) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestContactService_Send(t *testing.T) {
	t.Run("успешная отправка", func(t *testing.T) {
		client := new(ClientMock)
		client.On("Mail", "documentmycode@gmail.com").Return(nil).Once()
		client.On("Rcpt", "documentmycode@gmail.com").Return(nil).Once()
		client.On("Data").Return(client, nil).Once()
		client.On("Quit").Return(nil).Once()
		client.On("Close").Return(nil).Once()

		transport := new(TransportMock)
		transport.On("Connect").Return(client, nil).Once()
		transport.On("GetSMTPUser").Return("documentmycode@gmail.com")

		svc := services.NewContactService(transport, "documentmycode@gmail.com", newTestLogger())
		err := svc.Send("Alice", "alice@example.com", "Great service!")

		require.NoError(t, err)

		body := client.body.String()
		assert.Contains(t, body, "Subject: New message from Alice")
		assert.Contains(t, body, "Reply-To: alice@example.com")
		assert.Contains(t, body, "Great service!")
	})

	t.Run("ошибка подключения к SMTP", func(t *testing.T) {
		transport := new(TransportMock)
		transport.On("Connect").Return(nil, errors.New("dial timeout")).Once()
		transport.On("GetSMTPUser").Return("documentmycode@gmail.com")

		svc := services.NewContactService(transport, "documentmycode@gmail.com", newTestLogger())
		err := svc.Send("Alice", "alice@example.com", "hello")

		assert.Error(t, err)
	})

	t.Run("ошибка RCPT TO", func(t *testing.T) {
		client := new(ClientMock)
		client.On("Mail", mock.Anything).Return(nil).Once()
		client.On("Rcpt", mock.Anything).Return(errors.New("mailbox unavailable")).Once()
		client.On("Close").Return(nil).Once()

		transport := new(TransportMock)
		transport.On("Connect").Return(client, nil).Once()
		transport.On("GetSMTPUser").Return("documentmycode@gmail.com")

		svc := services.NewContactService(transport, "documentmycode@gmail.com", newTestLogger())
		err := svc.Send("Alice", "alice@example.com", "hello")

		assert.Error(t, err)
	})
}
