package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/lasindusenash05/TG-Bot/internal/assistant"
	"github.com/lasindusenash05/TG-Bot/internal/auth"
	"github.com/lasindusenash05/TG-Bot/internal/chatlog"
	"github.com/lasindusenash05/TG-Bot/internal/config"
	"github.com/lasindusenash05/TG-Bot/internal/llm"
	"github.com/lasindusenash05/TG-Bot/internal/scheduler"
	"github.com/lasindusenash05/TG-Bot/internal/telegram"
	"github.com/lasindusenash05/TG-Bot/internal/youtube"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	authSvc := auth.New(cfg.AdminUserID, cfg.AllowedUsers)
	state := assistant.NewState()

	logStore, err := chatlog.New(cfg.ChatLogDir)
	if err != nil {
		log.Fatalf("failed to init chat log: %v", err)
	}

	llmClient, err := newLLMClient(cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		authSvc,
		llmClient,
		state,
		logStore,
		youtube.NewFetcher(),
		cfg.DownloadDir,
		cfg.MessageParseMode,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New(time.Local)
	sched.SetBroadcastFunc(bot.SendDailyNews)
	if err := sched.Start(cfg.DailyNewsHour, cfg.DailyNewsMinute); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	bot.Start(context.Background())
}

func newLLMClient(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAIVisionModel), nil
	case config.ProviderYandex:
		return llm.NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
