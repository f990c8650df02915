// Package services содержит бизнес-логику генерации документации:
// учет дневного лимита, сборку промпта, кеширование и обращение к провайдеру.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/docmycode/docmycode/internal/lib/prompt"
	"github.com/docmycode/docmycode/internal/lib/sl"
	"github.com/docmycode/docmycode/internal/models"
)

// responseCacheTTL время жизни закешированного ответа провайдера.
const responseCacheTTL = time.Hour

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// ConsumeDailyQuota атомарно расходует единицу дневного лимита.
	ConsumeDailyQuota(ctx context.Context, username string, limit int, today time.Time) (int, error)
}

// CompletionProvider определяет контракт клиента провайдера генерации.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Cache описывает методы для кэширования ответов провайдера.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// GenerationService реализует конвейер одного запроса на генерацию.
type GenerationService struct {
	repo       UserRepository
	provider   CompletionProvider
	cache      Cache
	dailyLimit int
	log        *slog.Logger
}

// NewGenerationService создает новый экземпляр GenerationService.
func NewGenerationService(repo UserRepository, provider CompletionProvider, cache Cache, dailyLimit int, log *slog.Logger) *GenerationService {
	return &GenerationService{
		repo:       repo,
		provider:   provider,
		cache:      cache,
		dailyLimit: dailyLimit,
		log:        log,
	}
}

// Generate выполняет один запрос на генерацию документации.
//
// Сначала атомарно расходуется единица дневного лимита: при исчерпании
// возвращается models.ErrDailyLimitReached без обращения к провайдеру.
// Затем собирается промпт; одинаковые промпты в течение часа отвечаются
// из кеша без повторного вызова провайдера.
func (s *GenerationService) Generate(ctx context.Context, username string, req models.GenerateRequest) (string, error) {
	if _, err := s.repo.GetUserByUsername(ctx, username); err != nil {
		return "", err
	}

	used, err := s.repo.ConsumeDailyQuota(ctx, username, s.dailyLimit, time.Now().UTC())
	if err != nil {
		return "", err
	}
	s.log.Info("daily quota consumed",
		slog.String("username", username),
		slog.Int("used", used),
		slog.Int("limit", s.dailyLimit))

	formattedPrompt := prompt.Compose(prompt.Flags{
		Explain:           req.Explain,
		InlineComments:    req.InlineComments,
		DocStrings:        req.DocStrings,
		CodeBlockComments: req.CodeBlockComments,
		APIDocumentation:  req.APIDocumentation,
		Optimize:          req.Optimize,
	}, req.Prompt)

	cacheKey := completionCacheKey(formattedPrompt)
	var cached string
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read completion cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		s.log.Info("completion served from cache", slog.String("key", cacheKey))
		return cached, nil
	}

	answer, err := s.provider.Complete(ctx, formattedPrompt)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, cacheKey, answer, responseCacheTTL); err != nil {
		s.log.Warn("failed to cache completion", slog.String("key", cacheKey), sl.Err(err))
	}

	return answer, nil
}

// GetUsage возвращает текущее потребление дневного лимита пользователем.
// Счетчик считается нулевым, если дата последнего запроса не сегодня.
func (s *GenerationService) GetUsage(ctx context.Context, username string) (*models.Usage, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	used := 0
	if user.LastRequestDate != nil && sameDay(*user.LastRequestDate, time.Now().UTC()) {
		used = user.RequestsToday
	}
	remaining := s.dailyLimit - used
	if remaining < 0 {
		remaining = 0
	}

	return &models.Usage{
		Email:             user.Email,
		Username:          user.Username,
		RequestsToday:     used,
		RequestsRemaining: remaining,
		DailyLimit:        s.dailyLimit,
	}, nil
}

func completionCacheKey(formattedPrompt string) string {
	sum := sha256.Sum256([]byte(formattedPrompt))
	return fmt.Sprintf("completion:%s", hex.EncodeToString(sum[:]))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
