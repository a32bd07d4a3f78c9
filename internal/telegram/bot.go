package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/lasindusenash05/TG-Bot/internal/assistant"
	"github.com/lasindusenash05/TG-Bot/internal/auth"
	"github.com/lasindusenash05/TG-Bot/internal/chatlog"
	"github.com/lasindusenash05/TG-Bot/internal/format"
	"github.com/lasindusenash05/TG-Bot/internal/llm"
)

// TranscriptFetcher provides video transcripts for the /sum command.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	authSvc     *auth.Service
	llmClient   llm.Client
	state       *assistant.State
	logStore    *chatlog.Store
	transcripts TranscriptFetcher
	downloadDir string
	parseMode   string
	now         func() time.Time
}

func New(botToken string, authSvc *auth.Service, llmClient llm.Client, state *assistant.State,
	logStore *chatlog.Store, transcripts TranscriptFetcher, downloadDir, parseMode string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		authSvc:     authSvc,
		llmClient:   llmClient,
		state:       state,
		logStore:    logStore,
		transcripts: transcripts,
		downloadDir: downloadDir,
		parseMode:   parseMode,
		now:         time.Now,
	}, nil
}

// Start consumes the update stream until the channel closes. Each message
// is handled on its own goroutine; all shared state behind the handlers
// is mutex-guarded.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		msg := update.Message
		if msg == nil || msg.From == nil || msg.Chat == nil || !msg.Chat.IsPrivate() {
			continue
		}
		go b.handleIncomingMessage(ctx, msg)
	}
}

// SendDailyNews generates one news report and fans it out to every user
// in the allow-list. A failed delivery is logged per recipient and never
// aborts the remaining sends.
func (b *Bot) SendDailyNews(ctx context.Context) error {
	resp, err := b.llmClient.Generate(ctx, newsPrompt)
	if err != nil {
		return fmt.Errorf("generate daily news: %w", err)
	}
	report := format.DailyNews(resp.Content, b.now())

	var g errgroup.Group
	for _, id := range b.authSvc.AllowedIDs() {
		id := id
		g.Go(func() error {
			out := tgbotapi.NewMessage(id, report)
			out.ParseMode = b.parseMode
			if _, err := b.s.Send(out); err != nil {
				log.Printf("failed to send daily news to user %d: %v", id, err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("daily news fan-out had failures: %w", err)
	}
	log.Printf("✅ Daily news sent to %d users", len(b.authSvc.AllowedIDs()))
	return nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

// sendFormatted sends with the configured parse mode; used for replies
// that carry intentional markup.
func (b *Bot) sendFormatted(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
