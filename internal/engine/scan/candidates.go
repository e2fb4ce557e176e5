package scan

import (
	"regexp"
	"strings"
)

// Candidate is one `new Worker(new URL(<literal>, import.meta.url))` site.
// All offsets index the original source.
type Candidate struct {
	// Start and End bound the whole constructor call.
	Start, End int
	// ExprStart and ExprEnd bound the `new URL(...)` expression.
	ExprStart, ExprEnd int
	// URLStart and URLEnd bound the quoted URL literal, quotes included.
	URLStart, URLEnd int
	// Shared reports a SharedWorker constructor.
	Shared bool
}

// Quote returns the quote character of the URL literal.
func (c Candidate) Quote(code string) byte {
	return code[c.URLStart]
}

// URL returns the URL literal without its quotes.
func (c Candidate) URL(code string) string {
	return code[c.URLStart+1 : c.URLEnd-1]
}

// CandidateFinder finds worker URL sites in a masked copy of the source.
type CandidateFinder interface {
	Find(masked string) []Candidate
}

var (
	workerURLPattern = regexp.MustCompile(
		`\bnew\s+(?:Worker|SharedWorker)\s*\(\s*(new\s+URL\s*\(\s*('[^']+'|"[^"]+"|` + "`[^`]+`" +
			`)\s*,\s*import\.meta\.url\s*(?:,\s*)?\))`)

	quickPattern = regexp.MustCompile(`(?s)new\s+(?:Worker|SharedWorker)\s*\(\s*new\s+URL.+?import\.meta\.url`)
)

// MayContainWorkerURL is a cheap prefilter for sources that cannot hold a candidate.
func MayContainWorkerURL(code string) bool {
	return quickPattern.MatchString(code)
}

// RegexpFinder matches the constructor call shape with a regular expression.
type RegexpFinder struct{}

// Find implements CandidateFinder.
func (RegexpFinder) Find(masked string) []Candidate {
	matches := workerURLPattern.FindAllStringSubmatchIndex(masked, -1)
	out := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, Candidate{
			Start:     m[0],
			End:       m[1],
			ExprStart: m[2],
			ExprEnd:   m[3],
			URLStart:  m[4],
			URLEnd:    m[5],
			Shared:    strings.Contains(masked[m[0]:m[2]], "SharedWorker"),
		})
	}
	return out
}
