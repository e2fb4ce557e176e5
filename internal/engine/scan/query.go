package scan

import (
	"regexp"
	"strings"

	"go.trai.ch/spawn/internal/core/domain"
)

var (
	workerQueryPattern = regexp.MustCompile(`(?:\?|&)(worker|sharedworker)(?:&|$)`)
	inlinePattern      = regexp.MustCompile(`[?&]inline\b`)
	urlPattern         = regexp.MustCompile(`[?&]url\b`)
)

// WorkerQuery describes a query-suffixed worker import.
type WorkerQuery struct {
	Kind domain.WorkerKind
	// Inline embeds the compiled worker source instead of emitting a file.
	Inline bool
	// URL default-exports the worker URL instead of a factory.
	URL bool
}

// ParseQuery reports whether id carries a worker query and decodes it.
func ParseQuery(id string) (WorkerQuery, bool) {
	m := workerQueryPattern.FindStringSubmatch(id)
	if m == nil {
		return WorkerQuery{}, false
	}
	q := WorkerQuery{Kind: domain.KindWorker}
	if m[1] == "sharedworker" {
		q.Kind = domain.KindSharedWorker
	}
	q.Inline = inlinePattern.MatchString(id)
	q.URL = !q.Inline && urlPattern.MatchString(id)
	return q, true
}

// CleanURL strips the query string and hash fragment from id.
func CleanURL(id string) string {
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		return id[:i]
	}
	return id
}

// SplitQuery splits id into its path and its query suffix, the `?` included.
func SplitQuery(id string) (string, string) {
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		return id[:i], id[i:]
	}
	return id, ""
}
