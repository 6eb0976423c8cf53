package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	GCP      GCPConfig      `mapstructure:"gcp"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr          string `mapstructure:"addr"`
	ServiceName   string `mapstructure:"service_name"`
	BodyLimitMB   int    `mapstructure:"body_limit_mb"`
	UploadLimitMB int    `mapstructure:"upload_limit_mb"`
}

// BodyLimit — лимит JSON-тела (/ask, /speak) в байтах
func (s ServerConfig) BodyLimit() int {
	return s.BodyLimitMB * 1024 * 1024
}

// UploadLimit — лимит multipart-загрузки аудио (/stt) в байтах
func (s ServerConfig) UploadLimit() int {
	return s.UploadLimitMB * 1024 * 1024
}

// AppBodyLimit — общий лимит fiber, больший из двух; JSON-маршруты режутся отдельно
func (s ServerConfig) AppBodyLimit() int {
	return max(s.BodyLimit(), s.UploadLimit())
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
	Suffix  string `mapstructure:"suffix"`
	PgConn  string `mapstructure:"pg_conn"`
}

type FirebaseConfig struct {
	ServiceAccount string `mapstructure:"service_account"`

	// заполняется в Load
	Credentials *ServiceAccount `mapstructure:"-"`
}

type GCPConfig struct {
	ServiceAccountJSON string `mapstructure:"service_account_json"`

	Credentials *ServiceAccount `mapstructure:"-"`
}

type SpeechConfig struct {
	Encoding        string `mapstructure:"encoding"`
	SampleRateHertz int32  `mapstructure:"sample_rate_hertz"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	BackendGCS      = "gcs"
	BackendPostgres = "postgres"
)

// ServiceAccount — JSON ключ сервисного аккаунта Google.
// Raw хранит исходные байты для option.WithCredentialsJSON.
type ServiceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`

	Raw []byte `json:"-"`
}

// ParseServiceAccount разбирает JSON ключ. Пустая строка — не ошибка:
// клиенты тогда используют Application Default Credentials.
func ParseServiceAccount(raw string) (*ServiceAccount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var sa ServiceAccount
	if err := json.Unmarshal([]byte(raw), &sa); err != nil {
		return nil, fmt.Errorf("parse service account json: %w", err)
	}
	if sa.Type != "service_account" {
		return nil, fmt.Errorf("unexpected credentials type %q", sa.Type)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, errors.New("service account json lacks client_email or private_key")
	}
	sa.Raw = []byte(raw)
	return &sa, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendGCS:
		if c.Storage.Bucket == "" {
			return errors.New("storage.bucket is required for gcs backend")
		}
	case BackendPostgres:
		if c.Storage.PgConn == "" {
			return errors.New("storage.pg_conn is required for postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Server.BodyLimitMB <= 0 {
		return errors.New("server.body_limit_mb must be positive")
	}
	if c.Server.UploadLimitMB <= 0 {
		return errors.New("server.upload_limit_mb must be positive")
	}
	if c.Speech.SampleRateHertz <= 0 {
		return errors.New("speech.sample_rate_hertz must be positive")
	}
	return nil
}
