package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.trai.ch/spawn/internal/ui/style"
)

// SummaryRow is a single written file in a build summary.
type SummaryRow struct {
	Path string
	Size int
}

// WriteSummary prints the written files with their sizes followed by a status line.
func WriteSummary(w io.Writer, rows []SummaryRow, elapsed time.Duration) error {
	r := NewRenderer(w)
	pathStyle := r.NewStyle().Foreground(style.Iris)
	sizeStyle := r.NewStyle().Foreground(style.Slate)
	doneStyle := r.NewStyle().Foreground(style.Green)

	width := 0
	for _, row := range rows {
		width = max(width, len(row.Path))
	}

	var b strings.Builder
	for _, row := range rows {
		pad := strings.Repeat(" ", width-len(row.Path))
		fmt.Fprintf(&b, "  %s%s  %s\n", pathStyle.Render(row.Path), pad, sizeStyle.Render(FormatSize(row.Size)))
	}
	noun := "files"
	if len(rows) == 1 {
		noun = "file"
	}
	status := fmt.Sprintf("%s wrote %d %s in %s", style.Check, len(rows), noun, elapsed.Round(time.Millisecond))
	b.WriteString(doneStyle.Render(status) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatSize renders a byte count the way esbuild prints output sizes.
func FormatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%db", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1fkb", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1fmb", float64(n)/(1024*1024))
	}
}
