package scan

import (
	"sort"
	"strings"
)

// Editor accumulates replacements against an immutable source string.
// Ranges refer to offsets in the original source and must not overlap.
type Editor struct {
	src    string
	prefix string
	edits  []edit
}

type edit struct {
	start, end int
	text       string
}

// NewEditor returns an editor over src.
func NewEditor(src string) *Editor {
	return &Editor{src: src}
}

// Overwrite replaces src[start:end] with text.
func (e *Editor) Overwrite(start, end int, text string) {
	e.edits = append(e.edits, edit{start: start, end: end, text: text})
}

// Prepend inserts text before the start of the source.
func (e *Editor) Prepend(text string) {
	e.prefix = text + e.prefix
}

// Changed reports whether any edit was recorded.
func (e *Editor) Changed() bool {
	return e.prefix != "" || len(e.edits) > 0
}

// String applies the edits and returns the result.
func (e *Editor) String() string {
	if !e.Changed() {
		return e.src
	}
	sort.SliceStable(e.edits, func(i, j int) bool { return e.edits[i].start < e.edits[j].start })

	var b strings.Builder
	b.Grow(len(e.prefix) + len(e.src))
	b.WriteString(e.prefix)
	last := 0
	for _, ed := range e.edits {
		b.WriteString(e.src[last:ed.start])
		b.WriteString(ed.text)
		last = ed.end
	}
	b.WriteString(e.src[last:])
	return b.String()
}
