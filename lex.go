package aleph

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or decimal literal.
	tokenNum
	// tokenStr is a double-quoted string literal. The token text is the
	// decoded string contents.
	tokenStr
	// tokenIdent is a variable, constant, or function name.
	tokenIdent
	// tokenOp is an operator, possibly multi-rune, e.g. == or <>.
	tokenOp
	// tokenOpen is an open bracket: ( [ {.
	tokenOpen
	// tokenClose is a close bracket: ) ] }.
	tokenClose
	// tokenSep is an argument separator, either , or ;.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenStr:
		return "Str"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// A bracket in byte position k in OpenBrackets is matched with the bracket
// in byte position k in CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

var (
	openbrackets  = [...]string{"(", "[", "{"}
	closebrackets = [...]string{")", "]", "}"}
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next.
// Panics if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("aleph: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("aleph: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is
// encountered, the result is an EOF token with a nil error. Subsequent
// times, if the EOF token is not pushed, the result is an empty token with
// io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case r == ' ', r == '\t', r == '\r', r == '\n', r == '\v', r == '\f':
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			l.unreadRune()
			l.scanIdent()
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == '"':
			if err := l.scanString(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenStr
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		case r == ';':
			tok.text = ";"
			tok.kind = tokenSep
			return tok, nil
		default:
			if k := strings.IndexRune(OpenBrackets, r); k >= 0 {
				tok.text = openbrackets[k]
				tok.kind = tokenOpen
				return tok, nil
			}
			if k := strings.IndexRune(CloseBrackets, r); k >= 0 {
				tok.text = closebrackets[k]
				tok.kind = tokenClose
				return tok, nil
			}
			op, err := l.scanOp(r)
			if err != nil {
				return tok, err
			}
			tok.text = op
			tok.kind = tokenOp
			return tok, nil
		}
	}
}

// scanOp scans an operator starting with r, consuming a second rune for
// the two-rune operators.
func (l *lexer) scanOp(r rune) (string, error) {
	two := func(second rune, both, alone string) (string, error) {
		q, err := l.readRune()
		if err == nil && q == second {
			return both, nil
		}
		if err == nil {
			l.unreadRune()
		}
		if alone == "" {
			l.buf.WriteRune(r)
			return "", l.error("operator")
		}
		return alone, nil
	}
	switch r {
	case '+', '*', '/', '^':
		return string(r), nil
	case '-':
		return two('>', "->", "-")
	case '=':
		return two('=', "==", "=")
	case '!':
		return two('=', "!=", "!")
	case '<':
		q, err := l.readRune()
		if err == nil {
			switch q {
			case '=':
				return "<=", nil
			case '>':
				return "<>", nil
			}
			l.unreadRune()
		}
		return "<", nil
	case '>':
		return two('=', ">=", ">")
	case '&':
		return two('&', "&&", "")
	case '|':
		return two('|', "||", "")
	case ':':
		return two('=', ":=", ":")
	default:
		l.buf.WriteRune(r)
		return "", l.error("")
	}
}

func (l *lexer) scanNum() error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
			dig = true
		case r == '.':
			if dot {
				l.buf.WriteRune(r)
				return l.error("number")
			}
			l.buf.WriteRune(r)
			dot = true
		default:
			l.unreadRune()
			if !dig {
				l.buf.WriteRune(r)
				return l.error("number")
			}
			return nil
		}
	}
	if !dig {
		return l.error("number")
	}
	return nil
}

// scanIdent scans a maximal [A-Za-z_][A-Za-z0-9_]* identifier.
func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return
		}
	}
}

// scanString scans a double-quoted string literal. The opening quote has
// already been consumed. The buffer receives the decoded contents.
func (l *lexer) scanString() error {
	for {
		r, err := l.readRune()
		if err != nil {
			return l.error("string")
		}
		switch r {
		case '"':
			return nil
		case '\\':
			q, err := l.readRune()
			if err != nil {
				return l.error("string")
			}
			switch q {
			case '"', '\\':
				l.buf.WriteRune(q)
			case 'n':
				l.buf.WriteByte('\n')
			case 't':
				l.buf.WriteByte('\t')
			case 'r':
				l.buf.WriteByte('\r')
			default:
				l.buf.WriteRune(q)
				return l.error("string")
			}
		default:
			l.buf.WriteRune(r)
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be
	// "number", "string", "operator", or the empty string (if a token kind
	// hadn't been decided).
	Kind string
	// Col is one more than the number of runes the lexer had consumed when
	// it detected the error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
