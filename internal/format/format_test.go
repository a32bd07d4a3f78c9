package format

import (
	"strings"
	"testing"
	"time"

	"github.com/lasindusenash05/TG-Bot/internal/chatlog"
)

func TestDailyNews(t *testing.T) {
	at := time.Date(2024, 5, 23, 21, 0, 0, 0, time.Local)
	got := DailyNews("tech news here", at)
	if !strings.HasPrefix(got, "📰 *Daily News Report* 📰") {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, "tech news here") {
		t.Fatalf("report body lost: %q", got)
	}
	if !strings.Contains(got, "2024-05-23 9:00 PM") {
		t.Fatalf("timestamp missing: %q", got)
	}
}

func TestVisionAnalysisReflow(t *testing.T) {
	got := VisionAnalysis("This is algebra. Step 1: isolate x. Step 2: solve.")
	if !strings.HasPrefix(got, "🔍 Analysis:") {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, "\n📝 Step 1") || !strings.Contains(got, "\n📝 Step 2") {
		t.Fatalf("step markers not annotated: %q", got)
	}
	if !strings.Contains(got, "algebra.\n") {
		t.Fatalf("sentence break not inserted: %q", got)
	}
}

func TestBackupReport(t *testing.T) {
	ts := time.Date(2024, 5, 23, 13, 5, 0, 0, time.Local)
	entries := []chatlog.Entry{
		{Timestamp: ts, UserID: 1, Content: "hi", Direction: chatlog.Inbound},
		{Timestamp: ts.Add(time.Second), UserID: 1, Content: "hello", Direction: chatlog.Outbound},
		{Timestamp: ts.Add(2 * time.Second), UserID: 2, Content: "yo", Direction: chatlog.Inbound},
	}
	got := BackupReport(entries)
	if !strings.HasPrefix(got, "📑 Chat Backup Report") {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, "1 inbound: hi") || !strings.Contains(got, "1 outbound: hello") {
		t.Fatalf("entry lines missing: %q", got)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// header + blank + 3 entry lines
	if len(lines) != 5 {
		t.Fatalf("want 3 formatted entry lines, got %d total lines: %q", len(lines), got)
	}
}

func TestChunk(t *testing.T) {
	if got := Chunk("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short string must stay whole: %v", got)
	}

	long := strings.Repeat("a", 25)
	got := Chunk(long, 10)
	if len(got) != 3 {
		t.Fatalf("want 3 chunks, got %d", len(got))
	}
	if strings.Join(got, "") != long {
		t.Fatalf("chunks lose content")
	}

	// never split inside a rune
	emoji := strings.Repeat("🟢", 5) // 4 bytes each
	for _, c := range Chunk(emoji, 10) {
		if !strings.HasPrefix(c, "🟢") {
			t.Fatalf("rune split across chunks: %q", c)
		}
	}
}
