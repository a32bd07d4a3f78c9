// Package command parses the bot's text command surface into typed
// commands once, at the router boundary, so handlers receive validated
// arguments instead of raw strings.
package command

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	Unknown Kind = iota
	Enable
	Disable
	ViewLogs
	Backup
	Promote
	Summarize
	Start
)

// Window is a same-day time range. The textual backup format anchors both
// endpoints to the current date, so a range crossing midnight cannot be
// expressed here.
type Window struct {
	Start time.Time
	End   time.Time
}

// Command is the tagged result of parsing one message. Exactly the fields
// relevant to Kind are populated.
type Command struct {
	Kind     Kind
	Date     string // ViewLogs: YYYY-MM-DD
	Window   Window // Backup
	TargetID int64  // Promote
	VideoID  string // Summarize
}

// UsageError reports malformed arguments for a recognized command. The
// message is shown to the user verbatim as a usage hint.
type UsageError struct {
	Hint string
}

func (e *UsageError) Error() string { return e.Hint }

const (
	dateLayout = "2006-01-02"
	timeLayout = "3:04pm"
)

// Parse classifies text as one of the known commands. Text that does not
// start with "/" or carries an unrecognized token parses to Unknown. For
// a recognized command with malformed arguments the returned Command
// still carries the kind, together with a *UsageError, so the caller can
// check authorization before surfacing the hint.
func Parse(text string, now time.Time) (Command, error) {
	text = strings.TrimSpace(text)
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, nil
	}
	token := strings.TrimPrefix(fields[0], "/")
	// strip the @botname suffix Telegram appends in some clients
	if i := strings.Index(token, "@"); i >= 0 {
		token = token[:i]
	}
	args := fields[1:]

	switch token {
	case "on", "sa":
		return Command{Kind: Enable}, nil
	case "off", "ss":
		return Command{Kind: Disable}, nil
	case "start", "help":
		return Command{Kind: Start}, nil
	case "logs":
		return parseViewLogs(args, now)
	case "backup":
		rest := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
		return parseBackup(rest, now)
	case "promote":
		return parsePromote(args)
	case "sum":
		return parseSummarize(args)
	default:
		return Command{}, nil
	}
}

func parseViewLogs(args []string, now time.Time) (Command, error) {
	cmd := Command{Kind: ViewLogs}
	if len(args) == 0 {
		cmd.Date = now.Format(dateLayout)
		return cmd, nil
	}
	d, err := time.Parse(dateLayout, args[0])
	if err != nil || len(args) > 1 {
		return cmd, &UsageError{Hint: "Usage: /logs YYYY-MM-DD\nExample: /logs 2024-05-23"}
	}
	cmd.Date = d.Format(dateLayout)
	return cmd, nil
}

func parseBackup(rangeText string, now time.Time) (Command, error) {
	cmd := Command{Kind: Backup}
	usage := &UsageError{Hint: "Please use the format: /backup 1:00pm - 2:00pm"}

	parts := strings.Split(rangeText, "-")
	if len(parts) != 2 {
		return cmd, usage
	}
	start, err := parseClock(parts[0], now)
	if err != nil {
		return cmd, usage
	}
	end, err := parseClock(parts[1], now)
	if err != nil {
		return cmd, usage
	}
	cmd.Window = Window{Start: start, End: end}
	return cmd, nil
}

// parseClock reads "H:MMam/pm" and anchors it to now's date.
func parseClock(s string, now time.Time) (time.Time, error) {
	t, err := time.Parse(timeLayout, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

func parsePromote(args []string) (Command, error) {
	cmd := Command{Kind: Promote}
	if len(args) != 1 {
		return cmd, &UsageError{Hint: "Please provide a valid user ID.\nFormat: /promote user_id"}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return cmd, &UsageError{Hint: "Please provide a valid user ID.\nFormat: /promote user_id"}
	}
	cmd.TargetID = id
	return cmd, nil
}

func parseSummarize(args []string) (Command, error) {
	cmd := Command{Kind: Summarize}
	if len(args) != 1 {
		return cmd, &UsageError{Hint: "Please provide a YouTube URL.\nFormat: /sum youtube_url"}
	}
	id, err := extractVideoID(args[0])
	if err != nil {
		return cmd, &UsageError{Hint: "Please provide a valid YouTube URL"}
	}
	cmd.VideoID = id
	return cmd, nil
}

// extractVideoID accepts the two recognized URL shapes:
// youtu.be/<id> and youtube.com/watch?v=<id>.
func extractVideoID(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	var id string
	switch {
	case host == "youtu.be":
		id = strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)[0]
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		id = u.Query().Get("v")
	default:
		return "", fmt.Errorf("unrecognized video host: %s", host)
	}
	if id == "" {
		return "", fmt.Errorf("no video id in url")
	}
	return id, nil
}
