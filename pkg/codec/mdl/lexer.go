package mdl

import (
	"strings"

	"github.com/metercore/mcore/pkg/codec"
	"github.com/metercore/mcore/pkg/errs"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokString
	tokByteString
	tokNumber
	tokIdent
)

type token struct {
	kind     tokenKind
	text     string // decoded string payload (tokString), or raw literal (tokNumber/tokIdent)
	bytes    []byte // decoded payload (tokByteString)
	unsigned bool   // tokNumber: 'u'/'U' suffix present
	float    bool   // tokNumber: trailing '.' or exponent present
}

type lexer struct {
	src []byte
	pos int
}

func newLexer(s string) *lexer { return &lexer{src: []byte(s)} }

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	c, ok := l.peekByte()
	if !ok {
		return token{kind: tokEOF}, nil
	}
	switch c {
	case '{':
		l.pos++
		return token{kind: tokLBrace}, nil
	case '}':
		l.pos++
		return token{kind: tokRBrace}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket}, nil
	case ':':
		l.pos++
		return token{kind: tokColon}, nil
	case ',':
		l.pos++
		return token{kind: tokComma}, nil
	case '"', '\'':
		return l.lexQuotedString(c)
	case '`':
		return l.lexBacktickString()
	case 'x', 'X', 'b', 'B', 'd', 'D':
		if l.pos+1 < len(l.src) && (l.src[l.pos+1] == '"' || l.src[l.pos+1] == '\'') {
			return l.lexByteLiteral()
		}
		return l.lexIdentOrKeyword()
	default:
		if c == '-' || c == '+' || (c >= '0' && c <= '9') {
			return l.lexNumber()
		}
		if isIdentStart(c) {
			return l.lexIdentOrKeyword()
		}
		return token{}, errs.ValidationFailed("MDL: unexpected character %q at offset %d", c, l.pos)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool { return isIdentStart(c) || (c >= '0' && c <= '9') }

func (l *lexer) lexIdentOrKeyword() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos])}, nil
}

// lexQuotedString reads a single- or double-quoted string with C-style
// backslash escapes.
func (l *lexer) lexQuotedString(quote byte) (token, error) {
	l.pos++ // opening quote
	var out strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, errs.ValidationFailed("MDL: unterminated string literal")
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			return token{kind: tokString, text: out.String()}, nil
		}
		if c == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return token{}, errs.ValidationFailed("MDL: unterminated escape sequence")
			}
			esc := l.src[l.pos]
			switch esc {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			case '0':
				out.WriteByte(0)
			case '\\', '"', '\'':
				out.WriteByte(esc)
			case 'x':
				if l.pos+2 >= len(l.src) {
					return token{}, errs.ValidationFailed("MDL: truncated \\x escape")
				}
				hex := string(l.src[l.pos+1 : l.pos+3])
				b, err := codec.DecodeHex(hex)
				if err != nil || len(b) != 1 {
					return token{}, errs.ValidationFailed("MDL: bad \\x escape %q", hex)
				}
				out.WriteByte(b[0])
				l.pos += 2
			default:
				out.WriteByte(esc)
			}
			l.pos++
			continue
		}
		out.WriteByte(c)
		l.pos++
	}
}

// lexBacktickString reads a back-tick-delimited string with no escape
// processing.
func (l *lexer) lexBacktickString() (token, error) {
	l.pos++ // opening backtick
	start := l.pos
	for {
		if l.pos >= len(l.src) {
			return token{}, errs.ValidationFailed("MDL: unterminated back-tick string")
		}
		if l.src[l.pos] == '`' {
			text := string(l.src[start:l.pos])
			l.pos++
			return token{kind: tokString, text: text}, nil
		}
		l.pos++
	}
}

// lexByteLiteral reads an x/b/d-prefixed quoted byte literal: hex pairs
// for 'x', raw bytes for 'b', decimal-dotted bytes for 'd'.
func (l *lexer) lexByteLiteral() (token, error) {
	prefix := l.src[l.pos]
	l.pos++
	quote := l.src[l.pos]
	l.pos++
	start := l.pos
	for {
		if l.pos >= len(l.src) {
			return token{}, errs.ValidationFailed("MDL: unterminated byte literal")
		}
		if l.src[l.pos] == quote {
			break
		}
		l.pos++
	}
	body := string(l.src[start:l.pos])
	l.pos++ // closing quote

	var decoded []byte
	var err error
	switch prefix {
	case 'x', 'X':
		decoded, err = codec.DecodeHex(body)
	case 'b', 'B':
		decoded = []byte(body)
	case 'd', 'D':
		decoded, err = codec.DecodeNumeric(body)
	}
	if err != nil {
		return token{}, errs.ValidationFailed("MDL: bad %c-byte literal %s: %v", prefix, errs.Quote(body), err)
	}
	return token{kind: tokByteString, bytes: decoded}, nil
}

// lexNumber reads a numeric literal: optional sign, digits, optional
// fractional part and exponent, optional trailing 'u'/'U' unsigned suffix.
func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if c, _ := l.peekByte(); c == '-' || c == '+' {
		l.pos++
	}
	isFloat := false
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if c, ok := l.peekByte(); ok && (c == '+' || c == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
	}
	text := string(l.src[start:l.pos])
	unsigned := false
	if l.pos < len(l.src) && (l.src[l.pos] == 'u' || l.src[l.pos] == 'U') {
		unsigned = true
		l.pos++
	}
	if text == "" || text == "-" || text == "+" {
		return token{}, errs.ValidationFailed("MDL: malformed numeric literal near offset %d", start)
	}
	return token{kind: tokNumber, text: text, unsigned: unsigned, float: isFloat}, nil
}
