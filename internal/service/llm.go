package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/katakuxiko/biz-rag-backend/internal/config"
	"github.com/katakuxiko/biz-rag-backend/internal/metrics"
)

const defaultAnswerLanguage = "english"

// LLMClient — клиент OpenAI (или совместимого API)
type LLMClient struct {
	client   *openai.Client
	chatName string
}

// NewLLMClient создаёт клиент с настройками из config
func NewLLMClient(cfg config.OpenAIConfig) *LLMClient {
	oaiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaiCfg.BaseURL = cfg.BaseURL
	}

	return &LLMClient{
		client:   openai.NewClientWithConfig(oaiCfg),
		chatName: cfg.Model,
	}
}

// BuildMessages — системная инструкция + документ целиком и вопрос
func BuildMessages(document, question, language string) []openai.ChatCompletionMessage {
	if language == "" {
		language = defaultAnswerLanguage
	}
	return []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(
				"You are an assistant bot in an event who can help visitors who speaks only in %s "+
					"and answers questions based only on the details in the given document. "+
					"Keep answers minimal unless asked for detail.",
				language,
			),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Document:\n%s\n\nQuestion: %s", document, question),
		},
	}
}

// Answer возвращает текст первого варианта без изменений
func (l *LLMClient) Answer(ctx context.Context, document, question, language string) (answer string, err error) {
	defer func(start time.Time) {
		metrics.ObserveVendor(metrics.VendorOpenAI, start, err)
	}(time.Now())

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    l.chatName,
		Messages: BuildMessages(document, question, language),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels возвращает список моделей провайдера
func (l *LLMClient) ListModels(ctx context.Context) (models []openai.Model, err error) {
	defer func(start time.Time) {
		metrics.ObserveVendor(metrics.VendorOpenAI, start, err)
	}(time.Now())

	resp, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return resp.Models, nil
}
