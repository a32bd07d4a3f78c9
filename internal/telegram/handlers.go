package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/lasindusenash05/TG-Bot/internal/chatlog"
	"github.com/lasindusenash05/TG-Bot/internal/command"
	"github.com/lasindusenash05/TG-Bot/internal/format"
)

const errProcessing = "Sorry, I encountered an error processing your message."

const welcomeText = "🌟 *Welcome to AI Assistant Bot!* 🤖\n\n" +
	"I'm here to help you with:\n" +
	"📸 *Image Analysis*\n" +
	"🎥 *YouTube Summaries* (/sum)\n" +
	"💬 *Chat Assistance*\n\n" +
	"Feel free to send me messages, images, or YouTube links! 🚀"

const newsPrompt = `Generate a comprehensive daily news report covering:
1. Latest technological inventions and innovations
2. Global football news and match results
3. Cricket updates and match summaries
4. Major global conflict updates

Format with emojis and clear sections. Keep it concise but informative.`

const defaultVisionPrompt = `Please analyze this image in a beginner-friendly way:
1. If it's a math problem:
   - First, explain what type of problem it is
   - Break down the solution into very simple steps
   - Explain each step like you're teaching a beginner
   - Show the final answer clearly

2. If it's any other image:
   - Describe what you see in simple terms
   - Explain any important details
   - Use simple language that anyone can understand

Make sure to use clear explanations and avoid complex terms without explanation.`

func summaryPrompt(transcript string) string {
	return "Please provide a concise summary of this YouTube video transcript. Format the response with:\n" +
		"- Key points in bullet points\n" +
		"- Important quotes or highlights\n" +
		"- Main takeaways\n\n" + transcript
}

// handleIncomingMessage is the single entry point for every inbound
// message. Classification order: command text first (commands work even
// while the assistant is off), then authorization, then the assistant
// gate, then the generic AI path.
func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if strings.HasPrefix(strings.TrimSpace(msg.Text), "/") {
		b.handleCommand(ctx, msg)
		return
	}

	if !b.authSvc.IsAuthorized(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d", msg.From.ID)
		b.sendMessage(msg.Chat.ID, "You are not authorized to use this bot.")
		return
	}

	// intentional silent drop while the assistant is off
	if !b.state.Enabled() {
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}
	if msg.Text != "" {
		b.handleText(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd, parseErr := command.Parse(msg.Text, b.now())

	// Authorization first: a non-admin sending a malformed admin command
	// gets the forbidden reply, not the usage hint.
	switch cmd.Kind {
	case command.Unknown:
		// unrecognized /-token, left for potential future handlers
		return
	case command.Start:
		b.sendFormatted(msg.Chat.ID, welcomeText)
		return
	case command.Summarize:
		if !b.authSvc.IsAuthorized(msg.From.ID) {
			b.sendMessage(msg.Chat.ID, "You are not authorized to use this bot.")
			return
		}
	default:
		if !b.authSvc.IsAdmin(msg.From.ID) {
			b.sendMessage(msg.Chat.ID, adminDeniedMessage(cmd.Kind))
			return
		}
	}

	if parseErr != nil {
		var ue *command.UsageError
		if errors.As(parseErr, &ue) {
			b.sendMessage(msg.Chat.ID, ue.Hint)
		} else {
			log.Printf("failed to parse command %q: %v", msg.Text, parseErr)
			b.sendMessage(msg.Chat.ID, errProcessing)
		}
		return
	}

	switch cmd.Kind {
	case command.Enable:
		b.state.Enable()
		b.sendFormatted(msg.Chat.ID, "🟢 *Assistant responses are now enabled!*")
	case command.Disable:
		b.state.Disable()
		b.sendFormatted(msg.Chat.ID, "🔴 *Assistant responses are now disabled. You can still use commands like /sum!*")
	case command.ViewLogs:
		b.handleViewLogs(msg.Chat.ID, cmd.Date)
	case command.Backup:
		b.handleBackup(msg.Chat.ID, cmd.Window)
	case command.Promote:
		b.handlePromote(msg.Chat.ID, msg.From.ID, cmd.TargetID)
	case command.Summarize:
		b.handleSummarize(ctx, msg.Chat.ID, cmd.VideoID)
	}
}

func adminDeniedMessage(k command.Kind) string {
	switch k {
	case command.ViewLogs:
		return "You are not authorized to view logs."
	case command.Backup:
		return "You are not authorized to use the backup command."
	case command.Promote:
		return "You are not authorized to promote users."
	default:
		return "You are not authorized to use this command."
	}
}

func (b *Bot) handleViewLogs(chatID int64, date string) {
	entries, err := b.logStore.QueryRange(date)
	if err != nil {
		if errors.Is(err, chatlog.ErrNotFound) {
			b.sendMessage(chatID, fmt.Sprintf("No logs found for date %s", date))
			return
		}
		log.Printf("failed to read logs for %s: %v", date, err)
		b.sendMessage(chatID, errProcessing)
		return
	}
	dump := format.LogDump(entries)
	if dump == "" {
		b.sendMessage(chatID, "No messages found.")
		return
	}
	for _, chunk := range format.Chunk(dump, format.MaxMessageLength) {
		b.sendMessage(chatID, chunk)
	}
}

func (b *Bot) handleBackup(chatID int64, w command.Window) {
	entries, err := b.logStore.QueryWindow(w.Start, w.End)
	if err != nil {
		log.Printf("failed to query backup window: %v", err)
		b.sendMessage(chatID, errProcessing)
		return
	}
	if len(entries) == 0 {
		b.sendMessage(chatID, "No chat history found for the specified time range.")
		return
	}
	b.sendMessage(chatID, format.BackupReport(entries))
}

func (b *Bot) handlePromote(chatID, requesterID, targetID int64) {
	if err := b.authSvc.Promote(requesterID, targetID); err != nil {
		// the router already rejected non-admins; keep the reply anyway
		b.sendMessage(chatID, "You are not authorized to promote users.")
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("User %d has been granted access to the bot.", targetID))
}

// handleSummarize bypasses the assistant gate and is never written to the
// chat log.
func (b *Bot) handleSummarize(ctx context.Context, chatID int64, videoID string) {
	transcript, err := b.transcripts.FetchTranscript(ctx, videoID)
	if err != nil {
		log.Printf("failed to fetch transcript for %s: %v", videoID, err)
		b.sendMessage(chatID, "Error summarizing video. Make sure the video has English subtitles available.")
		return
	}
	resp, err := b.llmClient.Generate(ctx, summaryPrompt(transcript))
	if err != nil {
		log.Printf("failed to summarize video %s: %v", videoID, err)
		b.sendMessage(chatID, errProcessing)
		return
	}
	b.sendFormatted(chatID, format.VideoSummary(resp.Content))
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	log.Printf("Incoming message from %d: %q", msg.From.ID, msg.Text)

	resp, err := b.llmClient.Generate(ctx, msg.Text)
	if err != nil {
		log.Printf("failed to generate response: %v", err)
		b.sendMessage(msg.Chat.ID, errProcessing)
		return
	}
	log.Printf("LLM response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)

	b.logExchange(msg.From.ID, msg.Text, resp.Content)
	b.sendMessage(msg.Chat.ID, resp.Content)
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	log.Printf("Received image message from %d", msg.From.ID)

	path, err := b.downloadPhoto(msg)
	if err != nil {
		log.Printf("failed to download photo: %v", err)
		b.sendMessage(msg.Chat.ID, errProcessing)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove temp file %s: %v", path, err)
		}
	}()

	image, err := os.ReadFile(path)
	if err != nil {
		log.Printf("failed to read downloaded photo: %v", err)
		b.sendMessage(msg.Chat.ID, errProcessing)
		return
	}

	prompt := msg.Caption
	if prompt == "" {
		prompt = defaultVisionPrompt
	}

	resp, err := b.llmClient.GenerateVision(ctx, image, prompt)
	if err != nil {
		log.Printf("failed to analyze image: %v", err)
		b.sendMessage(msg.Chat.ID, "Sorry, I encountered an error analyzing your image.")
		return
	}

	reply := format.VisionAnalysis(resp.Content)
	b.logExchange(msg.From.ID, "Image Message", reply)
	b.sendMessage(msg.Chat.ID, reply)
}

// logExchange appends the inbound entry then the outbound entry. Append
// failures are logged and never block the reply.
func (b *Bot) logExchange(userID int64, inbound, outbound string) {
	if err := b.logStore.Append(userID, inbound, chatlog.Inbound); err != nil {
		log.Printf("failed to log inbound message: %v", err)
	}
	if err := b.logStore.Append(userID, outbound, chatlog.Outbound); err != nil {
		log.Printf("failed to log outbound message: %v", err)
	}
}

// downloadPhoto fetches the largest rendition of the photo into a scoped
// temp file and returns its path; the caller owns removal.
func (b *Bot) downloadPhoto(msg *tgbotapi.Message) (string, error) {
	photo := msg.Photo[len(msg.Photo)-1]
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: photo.FileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}
	if err := os.MkdirAll(b.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure download dir: %w", err)
	}
	path := filepath.Join(b.downloadDir, "temp_"+uuid.NewString()+".jpg")

	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return "", fmt.Errorf("download photo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}
