package scan

import "strings"

const (
	importMeta      = "import.meta"
	importMetaLocal = "_importMeta"
	locationHref    = "self.location.href"
	importMetaDecl  = "const _importMeta = { url: self.location.href };\n"
)

// RewriteImportMeta adapts `import.meta` for classic scripts, which have no module
// metadata. `import.meta.url` becomes `self.location.href`; any other use refers to a
// local object declared once at the top of the file.
func RewriteImportMeta(code string) (string, bool) {
	if !strings.Contains(code, importMeta) {
		return code, false
	}
	// An unterminated trailing comment or template still masks everything before it.
	masked, _ := Mask(code)

	ed := NewEditor(code)
	needsLocal := false
	for offset := 0; ; {
		i := strings.Index(masked[offset:], importMeta)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(importMeta)
		offset = end
		if start > 0 && (isIdentByte(masked[start-1]) || masked[start-1] == '.') {
			continue
		}
		if end < len(masked) && isIdentByte(masked[end]) {
			continue
		}

		if urlEnd := end + len(".url"); strings.HasPrefix(masked[end:], ".url") &&
			(urlEnd == len(masked) || !isIdentByte(masked[urlEnd])) {
			ed.Overwrite(start, urlEnd, locationHref)
			offset = urlEnd
			continue
		}
		ed.Overwrite(start, end, importMetaLocal)
		needsLocal = true
	}

	if needsLocal {
		ed.Prepend(importMetaDecl)
	}
	if !ed.Changed() {
		return code, false
	}
	return ed.String(), true
}
