// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/ui/style"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error provides it; other errors end the chain walk.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger instance writing pretty output to stderr.
func New() ports.Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination, preserving the JSON mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild replaces the slog handler. The caller holds mu or owns l exclusively.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its cause chain and metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := collectErrorEntries(err)

	if l.jsonMode {
		metadata := mergeMetadata(entries)
		args := []any{"error", err.Error()}
		for _, key := range sortedKeys(metadata) {
			args = append(args, key, metadata[key])
		}
		l.logger.Error("operation failed", args...)
		return
	}

	l.logger.Error(formatErrorEntries(entries))
}

// errorEntry is one level of an error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the chain of zerr errors. A standard error contributes its
// full text and ends the walk. Levels without a message only carry metadata, which is
// folded into the next entry.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	pending := make(map[string]any)
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: nonEmpty(pending)})
			break
		}
		metadata := make(map[string]any)
		if md, ok := current.(metadataer); ok {
			metadata = md.Metadata()
		}
		// Outer levels win over the levels they wrap.
		maps.Copy(metadata, pending)
		current = errors.Unwrap(current)

		if m.Message() == "" && current != nil {
			pending = metadata
			continue
		}
		entries = append(entries, errorEntry{message: m.Message(), metadata: nonEmpty(metadata)})
		pending = make(map[string]any)
	}
	return entries
}

func nonEmpty(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}

func mergeMetadata(entries []errorEntry) map[string]any {
	merged := make(map[string]any)
	// Outer entries win over the causes they wrap.
	for i := len(entries) - 1; i >= 0; i-- {
		maps.Copy(merged, entries[i].metadata)
	}
	return merged
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// formatErrorEntries renders entries as:
//
//	Error: <message>
//
//	  Caused by:
//	    → <cause>
//
//	  Details:
//	    key: value
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")
		switch i {
		case 0:
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		case 1:
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    "+style.Arrow+" "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	metadata := mergeMetadata(entries)
	if len(metadata) > 0 {
		lines = append(lines, "", "  Details:")
		for _, key := range sortedKeys(metadata) {
			lines = append(lines, fmt.Sprintf("    %s: %v", key, metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
