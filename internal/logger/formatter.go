package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Formatter converts log entries to their rendered representation.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// Entry represents a single log record.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []Field
}

// TextFormatter renders log entries as traditional single-line text.
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
	DisableColors    bool
	ForceColors      bool
	Output           io.Writer
}

// Format converts the Entry into its textual representation.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	timestamp := ""
	if !f.DisableTimestamp {
		timestampFormat := f.TimestampFormat
		if timestampFormat == "" {
			timestampFormat = time.RFC3339
		}
		timestamp = entry.Time.Format(timestampFormat)
	}

	level := entry.Level.String()
	if f.shouldColorize() {
		if c := levelColor(entry.Level); c != nil {
			level = c.Sprint(level)
		}
	}

	return formatEntry(entry, timestamp, level), nil
}

func (f *TextFormatter) shouldColorize() bool {
	if f == nil || f.DisableColors {
		return false
	}
	if f.ForceColors {
		return true
	}

	writer := f.Output
	if writer == nil {
		writer = os.Stdout
	}
	return isTerminal(writer)
}

func levelColor(level Level) *color.Color {
	switch level {
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelInfo:
		return color.New(color.FgBlue)
	case LevelWarn:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return nil
	}
}

func isTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// JSONFormatter renders log entries as JSON objects, one per line.
type JSONFormatter struct {
	TimestampFormat string
}

// Format converts the Entry into JSON.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = time.RFC3339
	}

	data := map[string]interface{}{
		"time":  entry.Time.Format(timestampFormat),
		"level": entry.Level.String(),
		"msg":   entry.Message,
	}
	for _, field := range entry.Fields {
		data[field.Key] = field.Value
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func formatEntry(entry *Entry, timestamp, levelText string) []byte {
	var buf bytes.Buffer

	if timestamp != "" {
		buf.WriteString(timestamp)
		buf.WriteString(" ")
	}

	buf.WriteString("[")
	buf.WriteString(levelText)
	buf.WriteString("] ")
	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		fmt.Fprintf(&buf, " %s=%v", field.Key, field.Value)
	}

	buf.WriteString("\n")
	return buf.Bytes()
}
