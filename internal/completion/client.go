// Package completion реализует клиент внешнего провайдера генерации текста.
//
// Клиент — тонкий адаптер без локального состояния: один запрос, без повторных
// попыток, с фиксированными параметрами сэмплирования и явным таймаутом.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/docmycode/docmycode/internal/config"
)

// ErrNoChoices провайдер вернул успешный ответ без единого варианта текста.
var ErrNoChoices = errors.New("no choices available in the response")

// Client клиент HTTP API провайдера генерации.
type Client struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewClient создаёт новый клиент провайдера из конфигурации.
func NewClient(cfg config.Completion) *Client {
	return &Client{
		apiKey:      cfg.CompletionAPIKey,
		apiURL:      cfg.CompletionAPIURL,
		model:       cfg.CompletionModel,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.CompletionTimeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Complete отправляет собранный промпт провайдеру и возвращает текст первого
// варианта ответа без окружающих пробелов.
//
// Одна попытка: ошибка транспорта, неуспешный статус или пустой список
// вариантов возвращаются вызывающему как есть.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	const op = "completion.Complete"

	reqParams := Request{
		Model:       c.model,
		Prompt:      prompt,
		MaxTokens:   c.maxTokens,
		N:           1,
		Stop:        nil,
		Temperature: c.temperature,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/completions", reqParams)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var completionResp Response
	if err := json.NewDecoder(resp.Body).Decode(&completionResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(completionResp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrNoChoices)
	}
	return strings.TrimSpace(completionResp.Choices[0].Text), nil
}
