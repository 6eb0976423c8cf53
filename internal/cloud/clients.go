package cloud

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/storage"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"google.golang.org/api/option"

	"github.com/katakuxiko/biz-rag-backend/internal/config"
)

// options — явный ключ сервисного аккаунта или Application Default Credentials
func options(sa *config.ServiceAccount) []option.ClientOption {
	if sa == nil {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsJSON(sa.Raw)}
}

// NewStorageClient — клиент бакета Firebase Storage
func NewStorageClient(ctx context.Context, cfg config.FirebaseConfig) (*storage.Client, error) {
	c, err := storage.NewClient(ctx, options(cfg.Credentials)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return c, nil
}

func NewSpeechClient(ctx context.Context, cfg config.GCPConfig) (*speech.Client, error) {
	c, err := speech.NewClient(ctx, options(cfg.Credentials)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return c, nil
}

func NewTextToSpeechClient(ctx context.Context, cfg config.GCPConfig) (*texttospeech.Client, error) {
	c, err := texttospeech.NewClient(ctx, options(cfg.Credentials)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}
	return c, nil
}
