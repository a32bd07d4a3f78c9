package command

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 23, 12, 0, 0, 0, time.Local)

func mustParse(t *testing.T, text string) Command {
	t.Helper()
	cmd, err := Parse(text, testNow)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return cmd
}

func TestParseToggles(t *testing.T) {
	for _, text := range []string{"/on", "/sa"} {
		if got := mustParse(t, text); got.Kind != Enable {
			t.Fatalf("%q: want Enable, got %v", text, got.Kind)
		}
	}
	for _, text := range []string{"/off", "/ss"} {
		if got := mustParse(t, text); got.Kind != Disable {
			t.Fatalf("%q: want Disable, got %v", text, got.Kind)
		}
	}
}

func TestParseStartAndBotSuffix(t *testing.T) {
	if got := mustParse(t, "/start"); got.Kind != Start {
		t.Fatalf("want Start, got %v", got.Kind)
	}
	if got := mustParse(t, "/help@my_bot"); got.Kind != Start {
		t.Fatalf("@botname suffix not stripped: %v", got.Kind)
	}
}

func TestParseNonCommand(t *testing.T) {
	if got := mustParse(t, "hello there"); got.Kind != Unknown {
		t.Fatalf("plain text must parse to Unknown, got %v", got.Kind)
	}
	if got := mustParse(t, "/doesnotexist"); got.Kind != Unknown {
		t.Fatalf("unknown token must parse to Unknown, got %v", got.Kind)
	}
	if got := mustParse(t, ""); got.Kind != Unknown {
		t.Fatalf("empty text must parse to Unknown, got %v", got.Kind)
	}
}

func TestParseViewLogs(t *testing.T) {
	got := mustParse(t, "/logs")
	if got.Kind != ViewLogs || got.Date != "2024-05-23" {
		t.Fatalf("default date not today: %+v", got)
	}

	got = mustParse(t, "/logs 2024-01-15")
	if got.Date != "2024-01-15" {
		t.Fatalf("explicit date lost: %+v", got)
	}

	cmd, err := Parse("/logs not-a-date", testNow)
	var ue *UsageError
	if !errors.As(err, &ue) {
		t.Fatalf("want UsageError, got %v", err)
	}
	if cmd.Kind != ViewLogs {
		t.Fatalf("kind must survive usage error, got %v", cmd.Kind)
	}
}

func TestParseBackup(t *testing.T) {
	got := mustParse(t, "/backup 1:00pm - 2:00pm")
	if got.Kind != Backup {
		t.Fatalf("want Backup, got %v", got.Kind)
	}
	if got.Window.Start.Hour() != 13 || got.Window.End.Hour() != 14 {
		t.Fatalf("window hours wrong: %+v", got.Window)
	}
	if got.Window.Start.Day() != testNow.Day() || got.Window.End.Day() != testNow.Day() {
		t.Fatalf("window not anchored to today: %+v", got.Window)
	}

	got = mustParse(t, "/backup 9:30am - 11:45AM")
	if got.Window.Start.Hour() != 9 || got.Window.Start.Minute() != 30 ||
		got.Window.End.Hour() != 11 || got.Window.End.Minute() != 45 {
		t.Fatalf("am parsing wrong: %+v", got.Window)
	}

	for _, bad := range []string{"/backup", "/backup 1pm - 2pm", "/backup 1:00pm 2:00pm", "/backup 1:00pm - 2:00pm - 3:00pm"} {
		cmd, err := Parse(bad, testNow)
		var ue *UsageError
		if !errors.As(err, &ue) {
			t.Fatalf("%q: want UsageError, got %v", bad, err)
		}
		if cmd.Kind != Backup {
			t.Fatalf("%q: kind must survive usage error", bad)
		}
	}
}

func TestParsePromote(t *testing.T) {
	got := mustParse(t, "/promote 555")
	if got.Kind != Promote || got.TargetID != 555 {
		t.Fatalf("promote mismatch: %+v", got)
	}

	for _, bad := range []string{"/promote", "/promote abc", "/promote 1 2"} {
		_, err := Parse(bad, testNow)
		var ue *UsageError
		if !errors.As(err, &ue) {
			t.Fatalf("%q: want UsageError, got %v", bad, err)
		}
	}
}

func TestParseSummarize(t *testing.T) {
	got := mustParse(t, "/sum https://youtu.be/abc123")
	if got.Kind != Summarize || got.VideoID != "abc123" {
		t.Fatalf("short url mismatch: %+v", got)
	}

	got = mustParse(t, "/sum https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s")
	if got.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("watch url mismatch: %+v", got)
	}

	for _, bad := range []string{"/sum", "/sum a b", "/sum https://vimeo.com/123", "/sum https://youtube.com/watch"} {
		_, err := Parse(bad, testNow)
		var ue *UsageError
		if !errors.As(err, &ue) {
			t.Fatalf("%q: want UsageError, got %v", bad, err)
		}
	}
}
