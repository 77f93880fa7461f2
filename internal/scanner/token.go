package scanner

import "strings"

// tokenKind discriminates lexical tokens.
type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenNumber
	tokenLParen
	tokenRParen
	tokenComma
	tokenSymbol
)

// token is one lexical unit of a statement span. For identifiers, text is
// the display form (qualification preserved, quoting per the normalization
// policy) and lower is the form used for comparison. quoted marks
// identifiers with quoted or bracketed parts, which never act as keywords.
type token struct {
	kind   tokenKind
	text   string
	lower  string
	quoted bool
}

// isKeyword reports whether the token is the given unquoted keyword.
func (t token) isKeyword(kw string) bool {
	return t.kind == tokenIdent && !t.quoted && t.lower == kw
}

// lexer walks a statement span byte by byte. Whitespace, line comments,
// block comments (nested), and string literals are skipped as noise.
type lexer struct {
	input       string
	pos         int
	readPos     int
	ch          byte
	stripQuotes bool
}

func newLexer(input string, stripQuotes bool) *lexer {
	l := &lexer{input: input, stripQuotes: stripQuotes}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// nextToken returns the next token and false when the input is exhausted.
func (l *lexer) nextToken() (token, bool) {
	l.skipNoise()

	switch {
	case l.ch == 0:
		return token{}, false
	case l.ch == '(':
		l.readChar()
		return token{kind: tokenLParen, text: "("}, true
	case l.ch == ')':
		l.readChar()
		return token{kind: tokenRParen, text: ")"}, true
	case l.ch == ',':
		l.readChar()
		return token{kind: tokenComma, text: ","}, true
	case isDigit(l.ch):
		return l.readNumber(), true
	case isIdentStart(l.ch) || isQuoteOpen(l.ch):
		return l.readName(), true
	default:
		ch := l.ch
		l.readChar()
		return token{kind: tokenSymbol, text: string(ch)}, true
	}
}

// skipNoise advances past whitespace, comments, and string literals.
func (l *lexer) skipNoise() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		case l.ch == '\'':
			l.skipString()
		default:
			return
		}
	}
}

// skipBlockComment consumes a /* */ comment, tracking nesting depth.
func (l *lexer) skipBlockComment() {
	depth := 0
	for l.ch != 0 {
		if l.ch == '/' && l.peekChar() == '*' {
			depth++
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '*' && l.peekChar() == '/' {
			depth--
			l.readChar()
			l.readChar()
			if depth == 0 {
				return
			}
			continue
		}
		l.readChar()
	}
}

// skipString consumes a single-quoted literal, honoring '' escapes.
func (l *lexer) skipString() {
	l.readChar()
	for l.ch != 0 {
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return
		}
		l.readChar()
	}
}

// readName reads an identifier as a single token, assembling dotted
// qualification (schema.table) and quoted parts.
func (l *lexer) readName() token {
	var text strings.Builder
	quoted := false

	for {
		switch l.ch {
		case '"':
			text.WriteString(l.readQuoted('"'))
			quoted = true
		case '[':
			text.WriteString(l.readQuoted(']'))
			quoted = true
		case '`':
			text.WriteString(l.readQuoted('`'))
			quoted = true
		default:
			start := l.pos
			for isIdentChar(l.ch) {
				l.readChar()
			}
			text.WriteString(l.input[start:l.pos])
		}

		if l.ch == '.' && (isIdentStart(l.peekChar()) || isQuoteOpen(l.peekChar())) {
			text.WriteByte('.')
			l.readChar()
			continue
		}
		break
	}

	s := text.String()
	return token{kind: tokenIdent, text: s, lower: strings.ToLower(s), quoted: quoted}
}

// readQuoted consumes one delimited identifier part ending at closer.
// Doubled closers ("" or ]]) are literal. The delimiters are dropped when
// stripQuotes is set, otherwise the part is returned as written.
func (l *lexer) readQuoted(closer byte) string {
	start := l.pos
	l.readChar()
	var inner strings.Builder
	for l.ch != 0 {
		if l.ch == closer {
			if l.peekChar() == closer {
				inner.WriteByte(closer)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		inner.WriteByte(l.ch)
		l.readChar()
	}
	if l.stripQuotes {
		return inner.String()
	}
	return l.input[start:l.pos]
}

func (l *lexer) readNumber() token {
	start := l.pos
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return token{kind: tokenNumber, text: l.input[start:l.pos]}
}

// tokenize returns every token in the span text.
func tokenize(text string, stripQuotes bool) []token {
	l := newLexer(text, stripQuotes)
	var toks []token
	for {
		tok, ok := l.nextToken()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// isIdentStart admits letters, underscore, and the T-SQL variable and temp
// table prefixes.
func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '@' || ch == '#' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || ch == '$' || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isQuoteOpen(ch byte) bool {
	return ch == '"' || ch == '[' || ch == '`'
}
