// Package current реализует HTTP-обработчик сведений о текущем пользователе.
//
// Возвращает профиль и потребление дневного лимита генераций.
package current

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/docmycode/docmycode/internal/http/middlewarectx"
	"github.com/docmycode/docmycode/internal/http/response"
	"github.com/docmycode/docmycode/internal/lib/sl"
	"github.com/docmycode/docmycode/internal/models"
)

// Service описывает интерфейс получения потребления дневного лимита.
type Service interface {
	GetUsage(ctx context.Context, username string) (*models.Usage, error)
}

// Handler обрабатывает запросы сведений о текущем пользователе.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль пользователя и остаток дневного лимита генераций.
// @Tags User
// @Produce  json
// @Success 200 {object} map[string]any "Профиль и лимиты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.current"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	usage, err := h.service.GetUsage(r.Context(), username)
	if err != nil {
		log.Error("failed to get usage", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load user info"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(usage))
}
