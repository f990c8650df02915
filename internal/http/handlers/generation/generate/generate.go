// Package generate реализует HTTP-обработчик запросов на генерацию документации.
//
// Обработчик декодирует исходный код и флаги стилей документирования, проверяет
// авторизацию пользователя по контексту и делегирует генерацию сервису.
// Исчерпание дневного лимита транслируется в HTTP 429 Too Many Requests.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/docmycode/docmycode/internal/http/middlewarectx"
	"github.com/docmycode/docmycode/internal/http/response"
	"github.com/docmycode/docmycode/internal/lib/sl"
	"github.com/docmycode/docmycode/internal/models"
)

// Service описывает интерфейс бизнес-логики генерации документации.
type Service interface {
	Generate(ctx context.Context, username string, req models.GenerateRequest) (string, error)
}

// Handler управляет HTTP-запросами на генерацию документации.
type Handler struct {
	log        *slog.Logger        // Логгер для записи информации и ошибок
	service    Service             // Сервис генерации документации
	validate   *validator.Validate // Валидатор для проверки входных данных
	dailyLimit int
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, dailyLimit int) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		validate:   validator.New(),
		dailyLimit: dailyLimit,
	}
}

// ServeHTTP godoc
// @Summary Генерация документации к коду
// @Description Принимает исходный код и флаги стилей документирования, возвращает документированный код.
// @Tags Generation
// @Accept  json
// @Produce  json
// @Param request body models.GenerateRequest true "Исходный код и флаги стилей"
// @Success 200 {object} map[string]any "Сгенерированный ответ"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Дневной лимит исчерпан"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при генерации"
// @Security BearerAuth
// @Router /generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.generation.generate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	answer, err := h.service.Generate(r.Context(), username, req)
	if err != nil {
		if errors.Is(err, models.ErrDailyLimitReached) {
			log.Info("daily limit reached", slog.String("username", username))
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.Error(fmt.Sprintf(
				"daily limit of %d requests reached, try again tomorrow", h.dailyLimit)))
			return
		}
		log.Error("failed to generate documentation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate documentation"))
		return
	}

	log.Info("documentation generated", slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": answer,
	}))
}
