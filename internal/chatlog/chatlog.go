package chatlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// ErrNotFound is returned when no partition exists for a requested date.
var ErrNotFound = errors.New("chatlog: no log for date")

type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// Entry is a single logged message. Entries are immutable once written.
type Entry struct {
	Timestamp time.Time
	UserID    int64
	Content   string
	Direction Direction
}

// String renders the on-disk line format: human-readable timestamp,
// identity, direction and content. Newlines in content are flattened so
// every entry stays a single line.
func (e Entry) String() string {
	content := strings.ReplaceAll(e.Content, "\n", " ")
	return fmt.Sprintf("[%s] %d %s: %s", e.Timestamp.Format(timeLayout), e.UserID, e.Direction, content)
}

func parseLine(line string) (Entry, bool) {
	if !strings.HasPrefix(line, "[") {
		return Entry{}, false
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return Entry{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, line[1:end], time.Local)
	if err != nil {
		return Entry{}, false
	}
	rest := line[end+2:]
	sep := strings.Index(rest, ": ")
	if sep < 0 {
		return Entry{}, false
	}
	head := strings.Fields(rest[:sep])
	if len(head) != 2 {
		return Entry{}, false
	}
	uid, err := strconv.ParseInt(head[0], 10, 64)
	if err != nil {
		return Entry{}, false
	}
	dir := Direction(head[1])
	if dir != Inbound && dir != Outbound {
		return Entry{}, false
	}
	return Entry{Timestamp: ts, UserID: uid, Content: rest[sep+2:], Direction: dir}, true
}

// Store is an append-only chat log partitioned by calendar date: one
// plain-text file per day under dir, one line per entry. Appends to a
// partition serialize with each other; partitions are never deleted here.
type Store struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func New(dir string) (*Store, error) {
	return NewWithClock(dir, time.Now)
}

// NewWithClock is like New but lets the caller supply the time source
// entries are stamped with.
func NewWithClock(dir string, now func() time.Time) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure chat log dir: %w", err)
	}
	return &Store{dir: dir, now: now}, nil
}

func (s *Store) path(date string) string {
	return filepath.Join(s.dir, "chat_log_"+date+".txt")
}

// Append writes one entry to the partition for the current local date,
// creating the partition on first write of the day. A returned error
// must never prevent the caller from sending its reply.
func (s *Store) Append(userID int64, content string, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now()
	e := Entry{Timestamp: ts, UserID: userID, Content: content, Direction: dir}
	f, err := os.OpenFile(s.path(ts.Format(dateLayout)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open partition: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(e.String() + "\n"); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// QueryRange returns all entries for an exact date key (YYYY-MM-DD), in
// write order. Returns ErrNotFound when no partition exists for the date.
func (s *Store) QueryRange(date string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPartition(date)
}

// QueryWindow returns every entry with a timestamp in [start, end]
// inclusive, ascending, reading only partitions whose date intersects the
// window. An empty window yields an empty result, not an error.
func (s *Store) QueryWindow(start, end time.Time) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Entry
	if end.Before(start) {
		return out, nil
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	lastDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	for !day.After(lastDay) {
		entries, err := s.readPartition(day.Format(dateLayout))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				day = day.AddDate(0, 0, 1)
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
				out = append(out, e)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *Store) readPartition(date string) ([]Entry, error) {
	f, err := os.Open(s.path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w %s", ErrNotFound, date)
		}
		return nil, fmt.Errorf("open partition: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 1024*1024)
	var entries []Entry
	for sc.Scan() {
		if e, ok := parseLine(sc.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan partition: %w", err)
	}
	return entries, nil
}
