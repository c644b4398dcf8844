package config

import "io"

// NewTestLogger returns a JSON logger config writing to w
func NewTestLogger(w io.Writer) *Logger {
	return &Logger{Level: "info", JSON: true, writer: w}
}
