// Package notify reports command outcomes to the user.
package notify

import (
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/term"

	"autobarrel/pkg/errors"
)

// Level is the severity of a user message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows one message to the user.
type Notifier interface {
	Notify(level Level, msg string)
}

// Report shows err as a warning or an error depending on its kind,
// followed by any hint attached to it. A nil err is ignored.
func Report(n Notifier, err error) {
	if err == nil {
		return
	}
	level := LevelError
	if errors.IsWarning(err) {
		level = LevelWarning
	}
	msg := err.Error()
	if hint := errors.Hint(err); hint != "" {
		msg += "\n" + hint
	}
	n.Notify(level, msg)
}

// Terminal prints messages with pterm prefixes. Styling is turned off
// when stdout is not a terminal.
type Terminal struct {
	logger *zap.Logger
}

// NewTerminal returns a terminal notifier.
func NewTerminal(logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}
	return &Terminal{logger: logger}
}

// Notify implements Notifier.
func (t *Terminal) Notify(level Level, msg string) {
	t.logger.Debug("User notification", zap.Stringer("level", level), zap.String("message", msg))
	switch level {
	case LevelSuccess:
		pterm.Success.Println(msg)
	case LevelWarning:
		pterm.Warning.Println(msg)
	case LevelError:
		pterm.Error.Println(msg)
	default:
		pterm.Info.Println(msg)
	}
}

// Message is one recorded notification.
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify implements Notifier.
func (r *Recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: msg})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent message, or a zero Message.
func (r *Recorder) Last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}
	}
	return r.messages[len(r.messages)-1]
}

// Contains reports whether any message at level contains substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, m := range r.Messages() {
		if m.Level == level && strings.Contains(m.Text, substr) {
			return true
		}
	}
	return false
}

// Nop drops every message.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(Level, string) {}
