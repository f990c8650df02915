// Package send реализует HTTP-обработчик формы обратной связи.
//
// Обработчик принимает имя, почту и текст сообщения посетителя,
// проверяет их и пересылает письмо на контактный ящик через SMTP.
package send

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/docmycode/docmycode/internal/http/response"
	"github.com/docmycode/docmycode/internal/lib/sl"
)

// Request — входные данные формы обратной связи.
type Request struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Service описывает интерфейс пересылки писем обратной связи.
type Service interface {
	Send(name, email, message string) error
}

// Handler обрабатывает HTTP-запросы формы обратной связи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправка сообщения обратной связи
// @Description Пересылает сообщение посетителя на контактный ящик. Reply-To указывает на отправителя.
// @Tags Contact
// @Accept  json
// @Produce  json
// @Param request body Request true "Имя, почта и текст сообщения"
// @Success 200 {object} map[string]string "Письмо отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки письма"
// @Router /sendMail [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.send"
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
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if err := h.service.Send(req.Name, req.Email, req.Message); err != nil {
		log.Error("failed to send email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not send email"))
		return
	}

	log.Info("contact email sent", slog.String("from", req.Email))
	render.JSON(w, r, map[string]string{"status": "Email sent"})
}
