// Package console runs the bot as a line-oriented REPL on the terminal.
package console

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/catbot/internal/bot"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/ui"
	"github.com/peterh/liner"
)

// Prompt is shown before every command line.
const Prompt = "> "

// LineReader reads one edited line at a time.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// Console feeds lines from a LineReader to the bot until the session closes
// or input ends.
type Console struct {
	bot       *bot.Bot
	assistant *ui.Assistant
	reader    LineReader
	logger    logging.Logger
}

// New creates a Console. The bot must already be initialized with assistant.
func New(b *bot.Bot, assistant *ui.Assistant, reader LineReader, logger logging.Logger) *Console {
	if b == nil || assistant == nil || reader == nil {
		panic("console.New: bot, assistant and reader are required")
	}
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Console{bot: b, assistant: assistant, reader: reader, logger: logger}
}

// Run greets the user and reads commands until "bye", end of input, Ctrl+C
// or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	defer c.reader.Close()

	c.assistant.Greet()
	for c.assistant.IsStillOpen() {
		if err := ctx.Err(); err != nil {
			c.assistant.Cleanup()
			return nil
		}
		line, err := c.reader.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				c.assistant.Cleanup()
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.reader.AppendHistory(line)
		c.bot.RunLine(line)
	}
	return nil
}

// Liner is a LineReader over peterh/liner that keeps its history in a file.
type Liner struct {
	state       *liner.State
	historyFile string
}

// NewLiner creates a terminal line reader. An empty historyFile disables
// history persistence.
func NewLiner(historyFile string) *Liner {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	l := &Liner{state: state, historyFile: historyFile}
	l.loadHistory()
	return l
}

func (l *Liner) loadHistory() {
	if l.historyFile == "" {
		return
	}
	if f, err := os.Open(l.historyFile); err == nil {
		_, _ = l.state.ReadHistory(f)
		f.Close()
	}
}

func (l *Liner) Prompt(prompt string) (string, error) {
	return l.state.Prompt(prompt)
}

func (l *Liner) AppendHistory(line string) {
	l.state.AppendHistory(line)
}

// Close saves history and restores the terminal.
func (l *Liner) Close() error {
	if l.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(l.historyFile), 0o755); err == nil {
			if f, err := os.OpenFile(l.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				_, _ = l.state.WriteHistory(f)
				f.Close()
			}
		}
	}
	return l.state.Close()
}
