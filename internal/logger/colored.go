package logger

import (
	"os"
)

// ColoredLogger renders log messages with coloured levels when the output
// writer supports it.
type ColoredLogger struct {
	*StandardLogger
}

// NewColoredLogger returns a logger configured for colourful terminal
// output when possible. NO_COLOR in the environment disables colours.
func NewColoredLogger(options ...Option) *ColoredLogger {
	std := NewStandardLogger(options...)

	writer := std.output
	if writer == nil {
		writer = os.Stdout
	}

	std.formatter = &TextFormatter{
		TimestampFormat: "15:04:05",
		DisableColors:   os.Getenv("NO_COLOR") != "",
		ForceColors:     false,
		Output:          writer,
	}

	return &ColoredLogger{StandardLogger: std}
}
