// Package subscribe реализует HTTP-обработчик подписки на новостную рассылку.
package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/docmycode/docmycode/internal/http/response"
	"github.com/docmycode/docmycode/internal/lib/sl"
	"github.com/docmycode/docmycode/internal/models"
)

// Request — входные данные подписки на рассылку.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики рассылки.
type Service interface {
	Subscribe(ctx context.Context, email string) (*models.Subscriber, error)
}

// Handler обрабатывает HTTP-запросы подписки на рассылку.
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
// @Summary Подписка на новостную рассылку
// @Description Сохраняет адрес подписчика. Повторная подписка того же адреса отклоняется.
// @Tags Newsletter
// @Accept  json
// @Produce  json
// @Param request body Request true "Адрес подписчика"
// @Success 200 {object} map[string]any "Запись подписчика"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или повторная подписка"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при подписке"
// @Router /subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.subscribe"
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

	sub, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrAlreadySubscribed) {
			log.Info("email already subscribed", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("email is already subscribed"))
			return
		}
		log.Error("failed to subscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not subscribe"))
		return
	}

	log.Info("subscriber created", slog.Int("id", sub.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":    sub.ID,
		"email": sub.Email,
	}))
}
