package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_TOKEN,required"`
	AdminUserID      int64   `env:"ADMIN_ID,required"`
	AllowedUsers     []int64 `env:"ALLOWED_USERS" envSeparator:","`

	// LLM settings
	LLMProvider       LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey      string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string      `env:"OPENAI_BASE_URL"`
	OpenAIModel       string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIVisionModel string      `env:"OPENAI_VISION_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken  string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID    string      `env:"YANDEX_FOLDER_ID"`

	// Storage
	ChatLogDir  string `env:"CHAT_LOG_DIR" envDefault:"chat_logs"`
	DownloadDir string `env:"DOWNLOAD_DIR" envDefault:"downloads"`

	// Daily news broadcast (local time)
	DailyNewsHour   int `env:"DAILY_NEWS_HOUR" envDefault:"21"`
	DailyNewsMinute int `env:"DAILY_NEWS_MINUTE" envDefault:"0"`

	// Formatting
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"Markdown"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	switch cfg.LLMProvider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("OPENAI_API_KEY is required for provider %q", cfg.LLMProvider)
		}
	case ProviderYandex:
		if cfg.YandexOAuthToken == "" || cfg.YandexFolderID == "" {
			log.Fatalf("YANDEX_OAUTH_TOKEN and YANDEX_FOLDER_ID are required for provider %q", cfg.LLMProvider)
		}
	default:
		log.Fatalf("unknown llm provider: %s", cfg.LLMProvider)
	}
	return cfg
}
