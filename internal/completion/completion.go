package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "deepseek/deepseek-chat-v3.1"
	DefaultTimeout = 7 * time.Second
)

var (
	ErrMissingCredential = errors.New("completion: API key is not configured")
	ErrNoChoices         = errors.New("completion: response has no choices")
	ErrEmptyContent      = errors.New("completion: first choice has no text")
)

//go:generate mockgen -destination=mock/completer_mock.go -package=mock . Completer

// Completer отправляет пару сообщений (системное + пользовательское) сервису генерации текста.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	HTTPClient *http.Client
}

var _ Completer = (*Client)(nil)

// Client — клиент OpenAI-совместимого эндпоинта /chat/completions (по умолчанию OpenRouter).
type Client struct {
	cfg         Config
	completions openai.ChatCompletionService
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/"),
		option.WithHTTPClient(cfg.HTTPClient),
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &Client{
		cfg:         cfg,
		completions: openai.NewChatCompletionService(opts...),
	}
}

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingCredential
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", fmt.Errorf("completion: status %d: %w", apierr.StatusCode, err)
		}
		return "", fmt.Errorf("completion: request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}

	return text, nil
}
