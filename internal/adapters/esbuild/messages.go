package esbuild

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/spawn/internal/engine/scan"
	"go.trai.ch/zerr"
)

// formatMessage renders an esbuild message as "file:line:column: text".
func formatMessage(m api.Message) string {
	text := m.Text
	if m.PluginName != "" {
		text = fmt.Sprintf("[plugin %s] %s", m.PluginName, text)
	}
	if m.Location == nil || m.Location.File == "" {
		return text
	}
	return fmt.Sprintf("%s:%d:%d: %s",
		filepath.ToSlash(m.Location.File), m.Location.Line, m.Location.Column, text)
}

func formatMessages(msgs []api.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, formatMessage(m))
	}
	return out
}

// toMessage converts a pipeline error into an esbuild message. Errors that carry an
// "offset" into code are anchored at that position.
func toMessage(err error, file, code string) api.Message {
	msg := api.Message{Text: err.Error()}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		return msg
	}
	// The first non-empty message is the text, the rest of the chain becomes notes.
	msg.Text = ""
	for cause := error(zErr); cause != nil; cause = errors.Unwrap(cause) {
		text := cause.Error()
		inner, ok := cause.(*zerr.Error)
		if ok {
			text = inner.Message()
		}
		switch {
		case text == "":
		case msg.Text == "":
			msg.Text = text
		default:
			msg.Notes = append(msg.Notes, api.Note{Text: text})
		}
		if !ok {
			break
		}
	}
	if msg.Text == "" {
		msg.Text = err.Error()
	}

	offset, ok := zErr.Metadata()["offset"].(int)
	if !ok || code == "" {
		return msg
	}
	pos := scan.PositionAt(code, offset)
	msg.Location = &api.Location{
		File:     file,
		Line:     pos.Line,
		Column:   pos.Column,
		LineText: pos.LineText,
	}
	return msg
}
