package scan

import "go.trai.ch/zerr"

// regexKeywords are the words after which a slash starts a regular expression.
var regexKeywords = map[string]struct{}{
	"return": {}, "typeof": {}, "instanceof": {}, "in": {}, "of": {}, "new": {},
	"delete": {}, "void": {}, "throw": {}, "case": {}, "do": {}, "else": {},
	"yield": {}, "await": {},
}

// maskTolerant masks code with a byte scanner that never gives up. A quote or regular
// expression that does not close on its line is taken as a plain character, which keeps
// JSX text and closing tags from swallowing the rest of the file.
func maskTolerant(code string) (string, error) {
	m := &masker{src: code, out: []byte(code)}
	m.run()
	return string(m.out), m.err
}

type masker struct {
	src string
	out []byte
	pos int
	err error
	// exprs holds the open brace depth of every enclosing template expression.
	exprs    []int
	prev     byte
	prevWord string
}

func (m *masker) run() {
	for m.pos < len(m.src) {
		c := m.src[m.pos]
		switch {
		case c == '/' && m.peek(1) == '/':
			m.lineComment()
		case c == '/' && m.peek(1) == '*':
			m.blockComment()
		case c == '\'' || c == '"':
			if !m.quoted(c) {
				m.punct(c)
			}
		case c == '`':
			m.pos++
			m.templateText()
		case c == '/':
			if m.regexAllowed() && m.regex() {
				continue
			}
			m.punct(c)
		case (c == '+' || c == '-') && m.peek(1) == c:
			// Postfix update: a slash that follows divides.
			m.pos += 2
			m.prev = ')'
			m.prevWord = ""
		case c == '{':
			if n := len(m.exprs); n > 0 {
				m.exprs[n-1]++
			}
			m.punct(c)
		case c == '}':
			if n := len(m.exprs); n > 0 {
				if m.exprs[n-1] == 0 {
					m.exprs = m.exprs[:n-1]
					m.pos++
					m.templateText()
					continue
				}
				m.exprs[n-1]--
			}
			m.punct(c)
		case isIdentByte(c):
			start := m.pos
			for m.pos < len(m.src) && isIdentByte(m.src[m.pos]) {
				m.pos++
			}
			m.prev = 'a'
			m.prevWord = m.src[start:m.pos]
		case isSpace(c):
			m.pos++
		default:
			m.punct(c)
		}
	}
	if len(m.exprs) > 0 {
		m.fail(len(m.src))
	}
}

func (m *masker) peek(n int) byte {
	if m.pos+n < len(m.src) {
		return m.src[m.pos+n]
	}
	return 0
}

func (m *masker) punct(c byte) {
	m.prev = c
	m.prevWord = ""
	m.pos++
}

func (m *masker) fail(offset int) {
	if m.err == nil {
		m.err = zerr.With(zerr.Wrap(ErrUnterminated, ""), "offset", offset)
	}
}

func (m *masker) lineComment() {
	start := m.pos
	for m.pos < len(m.src) && m.src[m.pos] != '\n' {
		m.pos++
	}
	blankRange(m.out, start, m.pos)
}

func (m *masker) blockComment() {
	start := m.pos
	for i := m.pos + 2; i+1 < len(m.src); i++ {
		if m.src[i] == '*' && m.src[i+1] == '/' {
			m.pos = i + 2
			blankRange(m.out, start, m.pos)
			return
		}
	}
	m.fail(start)
	m.pos = len(m.src)
	blankRange(m.out, start, m.pos)
}

// quoted masks a string literal starting at m.pos and reports whether it closed.
func (m *masker) quoted(q byte) bool {
	for i := m.pos + 1; i < len(m.src); i++ {
		switch m.src[i] {
		case '\\':
			i++
		case '\n':
			return false
		case q:
			blankRange(m.out, m.pos+1, i)
			m.pos = i + 1
			m.prev = '"'
			m.prevWord = ""
			return true
		}
	}
	return false
}

// templateText blanks template text up to the closing backtick or the next `${`.
func (m *masker) templateText() {
	start := m.pos
	for m.pos < len(m.src) {
		switch c := m.src[m.pos]; {
		case c == '\\':
			m.pos += 2
		case c == '`':
			blankRange(m.out, start, m.pos)
			m.pos++
			m.prev = '"'
			m.prevWord = ""
			return
		case c == '$' && m.peek(1) == '{':
			blankRange(m.out, start, m.pos)
			m.pos += 2
			m.exprs = append(m.exprs, 0)
			m.prev = '{'
			m.prevWord = ""
			return
		default:
			m.pos++
		}
	}
	m.fail(start)
	m.pos = len(m.src)
	blankRange(m.out, start, m.pos)
}

func (m *masker) regexAllowed() bool {
	switch m.prev {
	case 0:
		return true
	case 'a':
		_, ok := regexKeywords[m.prevWord]
		return ok
	case ')', ']', '"', '<':
		return false
	default:
		return true
	}
}

// regex masks a regular expression literal starting at m.pos and reports whether it
// closed on the same line.
func (m *masker) regex() bool {
	inClass := false
	for i := m.pos + 1; i < len(m.src); i++ {
		switch c := m.src[i]; {
		case c == '\\':
			if i+1 < len(m.src) && m.src[i+1] == '\n' {
				return false
			}
			i++
		case c == '\n':
			return false
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			blankRange(m.out, m.pos+1, i)
			m.pos = i + 1
			for m.pos < len(m.src) && isIdentByte(m.src[m.pos]) {
				m.pos++
			}
			m.prev = '"'
			m.prevWord = ""
			return true
		}
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
