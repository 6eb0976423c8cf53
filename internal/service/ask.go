package service

import (
	"context"
	"fmt"

	"github.com/katakuxiko/biz-rag-backend/internal/pdf"
)

// DocumentFetcher — хранилище документов по userId (GCS или Postgres)
type DocumentFetcher interface {
	Fetch(ctx context.Context, userID string) ([]byte, error)
}

type Answerer interface {
	Answer(ctx context.Context, document, question, language string) (string, error)
}

// AskService — документ пользователя + вопрос -> ответ LLM
type AskService struct {
	docs DocumentFetcher
	llm  Answerer
}

func NewAskService(docs DocumentFetcher, llm Answerer) *AskService {
	return &AskService{docs: docs, llm: llm}
}

// Ask не обращается к LLM, если документ не получен
func (s *AskService) Ask(ctx context.Context, question, userID, language string) (string, error) {
	raw, err := s.docs.Fetch(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}

	doc, err := pdf.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}

	answer, err := s.llm.Answer(ctx, doc, question, language)
	if err != nil {
		return "", fmt.Errorf("llm error: %w", err)
	}
	return answer, nil
}
