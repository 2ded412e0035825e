package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger provides topic-based debug logging with minimal overhead when disabled
type Logger struct {
	topic string
}

var (
	mu            sync.RWMutex
	enabledTopics = map[string]bool{}
)

func init() {
	// DEBUG_TOPICS=tables,analyzer or DEBUG_TOPICS=all
	Enable(os.Getenv("DEBUG_TOPICS"), os.Stderr)
}

// Enable turns on the given comma-separated topics ("all" enables every
// topic) and lowers the default slog logger to DEBUG, writing to w.
// An empty list leaves logging untouched.
func Enable(topics string, w io.Writer) {
	parsed := parseTopics(topics)
	if len(parsed) == 0 {
		return
	}

	mu.Lock()
	for topic := range parsed {
		enabledTopics[topic] = true
	}
	mu.Unlock()

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func parseTopics(topics string) map[string]bool {
	out := map[string]bool{}
	for _, topic := range strings.Split(topics, ",") {
		topic = strings.TrimSpace(topic)
		switch topic {
		case "":
		case "all":
			out["*"] = true
		default:
			out[topic] = true
		}
	}
	return out
}

// New creates a topic logger, e.g. var tableLog = logging.New("tables").
// Topics enabled later via Enable are picked up by existing loggers.
func New(topic string) *Logger {
	return &Logger{topic: topic}
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.Enabled() {
		return
	}
	slog.Debug(msg, l.with(args)...)
}

func (l *Logger) Info(msg string, args ...any) {
	if !l.Enabled() {
		return
	}
	slog.Info(msg, l.with(args)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	if !l.Enabled() {
		return
	}
	slog.Warn(msg, l.with(args)...)
}

// Enabled returns true if this logger's topic is on.
// Useful for expensive computations: if log.Enabled() { ... }
func (l *Logger) Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabledTopics["*"] || enabledTopics[l.topic]
}

func (l *Logger) with(args []any) []any {
	return append([]any{"topic", l.topic}, args...)
}

// reset clears all topics. Used by tests.
func reset(topics map[string]bool) {
	mu.Lock()
	enabledTopics = topics
	mu.Unlock()
}
