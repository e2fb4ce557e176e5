package worker

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/spawn/internal/core/domain"
)

// urlArgumentPattern matches a placeholder passed as the first argument of `new URL(`.
var urlArgumentPattern = regexp.MustCompile(`new\s+URL\(\s*["'](` + domain.PlaceholderPattern.String() + `)`)

// Render replaces worker asset placeholders in code with final file names.
// Placeholders from query imports become paths relative to the output directory;
// placeholders from `new URL` references become bare file names, since worker files
// are emitted next to the main output. An entry referenced both ways shares one token,
// so the form is taken from the cache that issued it and, when both did, from whether
// the token sits in a `new URL(` argument.
func (p *Pipeline) Render(code string, rc domain.RenderContext) string {
	if !strings.Contains(code, domain.PlaceholderPrefix) {
		return code
	}
	matches := domain.PlaceholderPattern.FindAllStringSubmatchIndex(code, -1)
	if len(matches) == 0 {
		return code
	}

	urlArgs := make(map[int]struct{})
	for _, m := range urlArgumentPattern.FindAllStringSubmatchIndex(code, -1) {
		urlArgs[m[2]] = struct{}{}
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		hash := code[m[2]:m[3]]
		_, inURL := urlArgs[start]

		b.WriteString(code[last:start])
		if name, ok := p.resolvePlaceholder(hash, inURL, rc); ok {
			b.WriteString(name)
		} else {
			p.logger.Warn(fmt.Sprintf("Could not find worker asset for hash: %s", hash))
			b.WriteString(code[start:end])
		}
		last = end
	}
	b.WriteString(code[last:])
	return b.String()
}

func (p *Pipeline) resolvePlaceholder(hash string, inURL bool, rc domain.RenderContext) (string, bool) {
	queryName, fromQuery := p.queryCache.FilenameForHash(hash)
	urlName, fromURL := p.urlCache.FilenameForHash(hash)
	switch {
	case fromURL && (inURL || !fromQuery):
		return urlName, true
	case fromQuery:
		return jsStringContent(p.relativeToOutput(queryName, rc)), true
	}
	return "", false
}

func (p *Pipeline) relativeToOutput(name string, rc domain.RenderContext) string {
	dir := rc.Dir()
	if dir == "" || p.outDir == "" {
		return name
	}
	rel, err := filepath.Rel(dir, filepath.Join(p.outDir, filepath.FromSlash(name)))
	if err != nil {
		return name
	}
	return filepath.ToSlash(rel)
}
