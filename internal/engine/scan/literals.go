// Package scan locates worker references in JavaScript and TypeScript source text.
//
// Scanning works on a masked copy of the source in which the contents of string and
// template literals, comments, and regular expressions are blanked. Offsets in the
// masked copy are identical to offsets in the original.
package scan

import (
	"strings"

	"go.trai.ch/zerr"
	"vimagination.zapto.org/javascript"
	"vimagination.zapto.org/parser"
)

// ErrUnterminated is returned when a comment or template literal runs to the end of the input.
var ErrUnterminated = zerr.New("unterminated literal")

// Mask returns code with the contents of literals and comments replaced by spaces.
// Quotes, backticks, `${` `}` delimiters and newlines are kept, so template expressions
// stay visible.
//
// Source the JavaScript tokeniser rejects, such as JSX or decorators, is masked by a
// line-tolerant scan instead. The masked text is always usable; a non-nil error reports
// a comment or template that was still open at the end of the input.
func Mask(code string) (string, error) {
	if masked, ok := maskTokens(code); ok {
		return masked, nil
	}
	return maskTolerant(code)
}

// maskTokens blanks literal and comment tokens produced by the JavaScript tokeniser.
func maskTokens(code string) (string, bool) {
	tk := parser.NewStringTokeniser(code)
	javascript.SetTokeniser(&tk)

	out := []byte(code)
	pos := 0
	for {
		tok, err := tk.GetToken()
		if tok.Type == parser.TokenDone {
			break
		}
		if err != nil || tok.Type == parser.TokenError {
			return "", false
		}

		end := pos + len(tok.Data)
		if end > len(code) || code[pos:end] != tok.Data {
			return "", false
		}
		switch tok.Type {
		case javascript.TokenSingleLineComment, javascript.TokenMultiLineComment:
			blankRange(out, pos, end)
		case javascript.TokenStringLiteral, javascript.TokenNoSubstitutionTemplate,
			javascript.TokenTemplateTail:
			blankRange(out, pos+1, end-1)
		case javascript.TokenTemplateHead, javascript.TokenTemplateMiddle:
			blankRange(out, pos+1, end-2)
		case javascript.TokenRegularExpressionLiteral:
			blankRange(out, pos+1, pos+strings.LastIndexByte(tok.Data, '/'))
		}
		pos = end
	}
	return string(out), pos == len(code)
}

// blankRange replaces out[from:to] with spaces, keeping line breaks.
func blankRange(out []byte, from, to int) {
	for i := from; i < to; i++ {
		if out[i] != '\n' && out[i] != '\r' {
			out[i] = ' '
		}
	}
}
