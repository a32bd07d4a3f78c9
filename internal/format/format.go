// Package format turns raw model output and chat log data into the
// user-facing report texts. Everything here is a pure transform over
// already-validated input.
package format

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lasindusenash05/TG-Bot/internal/chatlog"
)

// MaxMessageLength is the Telegram reply size the bot chunks to.
const MaxMessageLength = 4000

func DailyNews(report string, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("📰 *Daily News Report* 📰\n\n")
	b.WriteString(report)
	b.WriteString("\n\n🕘 Generated at ")
	b.WriteString(generatedAt.Format("2006-01-02 3:04 PM"))
	return b.String()
}

func VideoSummary(summary string) string {
	var b strings.Builder
	b.WriteString("🎥 *YouTube Video Summary* 🎬\n\n")
	b.WriteString("📌 *Key Points*:\n")
	b.WriteString(summary)
	b.WriteString("\n\n💡 *Generated by AI Assistant* ✨")
	return b.String()
}

// VisionAnalysis reflows a vision response for readability: sentence
// breaks become line breaks and step markers open new paragraphs.
func VisionAnalysis(text string) string {
	text = strings.ReplaceAll(text, "Step ", "\n📝 Step ")
	text = strings.ReplaceAll(text, ". ", ".\n")
	return "🔍 Analysis:\n\n" + text
}

func BackupReport(entries []chatlog.Entry) string {
	var b strings.Builder
	b.WriteString("📑 Chat Backup Report\n\n")
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	return b.String()
}

// LogDump renders a partition's entries one line each, matching the
// on-disk layout.
func LogDump(entries []chatlog.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}

// Chunk splits s into pieces of at most max bytes without breaking a
// rune. Chunks come back in order; a string within the limit is returned
// as a single chunk.
func Chunk(s string, max int) []string {
	if max <= 0 || len(s) <= max {
		return []string{s}
	}
	var chunks []string
	var b strings.Builder
	for _, r := range s {
		if b.Len()+utf8.RuneLen(r) > max {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
