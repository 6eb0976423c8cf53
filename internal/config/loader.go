package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"server.addr":              ":8080",
	"server.service_name":      "biz-rag-backend",
	"server.body_limit_mb":     5,
	"server.upload_limit_mb":   10,
	"openai.api_key":           "",
	"openai.base_url":          "",
	"openai.model":             "gpt-4o-mini",
	"storage.backend":          BackendGCS,
	"storage.bucket":           "oqulix-chat-bot.firebasestorage.app",
	"storage.prefix":           "instances/",
	"storage.suffix":           ".json",
	"storage.pg_conn":          "",
	"firebase.service_account": "",
	"gcp.service_account_json": "",
	"speech.encoding":          "WEBM_OPUS",
	"speech.sample_rate_hertz": 48000,
	"log.level":                "info",
	"log.format":               "json",
}

// Load читает .env, configs/config.yaml (если есть) и переменные окружения.
// Ключ server.addr переопределяется переменной SERVER_ADDR и т.д.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	var err error
	if cfg.Firebase.Credentials, err = ParseServiceAccount(cfg.Firebase.ServiceAccount); err != nil {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT: %w", err)
	}
	if cfg.GCP.Credentials, err = ParseServiceAccount(cfg.GCP.ServiceAccountJSON); err != nil {
		return nil, fmt.Errorf("GCP_SERVICE_ACCOUNT_JSON: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// .env не обязателен; уже выставленные переменные не перезаписываются
func loadEnvFile() {
	for _, p := range []string{".env", "../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}
