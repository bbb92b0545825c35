package pdftrace

import (
	"fmt"
	"strconv"
	"strings"
)

// lexer is a recursive-descent reader over raw PDF syntax.
type lexer struct {
	data []byte
	pos  int
}

func newLexer(data []byte, pos int) *lexer {
	return &lexer{data: data, pos: pos}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// skipSpace skips whitespace and comments.
func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		} else if isSpace(c) {
			l.pos++
		} else {
			return
		}
	}
}

// token reads a regular token up to the next delimiter or whitespace.
func (l *lexer) token() string {
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// expect consumes s if the upcoming bytes match it.
func (l *lexer) expect(s string) bool {
	end := l.pos + len(s)
	if end > len(l.data) || string(l.data[l.pos:end]) != s {
		return false
	}
	l.pos = end
	return true
}

// value parses one PDF object value at the current position.
func (l *lexer) value() (Value, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return Value{}, fmt.Errorf("unexpected end of data")
	}

	switch c := l.data[l.pos]; {
	case c == '<' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '<':
		return l.dictOrStream()
	case c == '<':
		return l.hexString()
	case c == '[':
		return l.array()
	case c == '/':
		l.pos++
		return Value{Kind: KindName, Name: l.token()}, nil
	case c == '(':
		return l.literalString()
	case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		return l.numberOrRef()
	default:
		switch tok := l.token(); tok {
		case "true":
			return Value{Kind: KindBool, Bool: true}, nil
		case "false":
			return Value{Kind: KindBool}, nil
		case "null":
			return Value{Kind: KindNull}, nil
		default:
			return Value{}, fmt.Errorf("unexpected token %q at %d", tok, l.pos)
		}
	}
}

// dictOrStream parses << ... >>, then checks for a following stream body.
func (l *lexer) dictOrStream() (Value, error) {
	l.pos += 2 // <<
	dict := make(Dict)
	for {
		l.skipSpace()
		if l.pos+1 < len(l.data) && l.data[l.pos] == '>' && l.data[l.pos+1] == '>' {
			l.pos += 2
			break
		}
		if l.pos >= len(l.data) || l.data[l.pos] != '/' {
			return Value{}, fmt.Errorf("expected name key in dict at %d", l.pos)
		}
		l.pos++
		key := l.token()
		val, err := l.value()
		if err != nil {
			return Value{}, err
		}
		dict[key] = val
	}

	l.skipSpace()
	if !l.expect("stream") {
		return Value{Kind: KindDict, Dict: dict}, nil
	}
	// EOL after the stream keyword: CRLF or LF
	if l.pos < len(l.data) && l.data[l.pos] == '\r' {
		l.pos++
	}
	if l.pos < len(l.data) && l.data[l.pos] == '\n' {
		l.pos++
	}
	length, ok := dict["Length"]
	if !ok || length.Kind != KindInt {
		return Value{}, fmt.Errorf("stream without direct /Length at %d", l.pos)
	}
	end := l.pos + int(length.Int)
	if end > len(l.data) {
		return Value{}, fmt.Errorf("stream overruns data at %d", l.pos)
	}
	raw := l.data[l.pos:end]
	l.pos = end
	return Value{Kind: KindStream, Dict: dict, Stream: raw}, nil
}

func (l *lexer) array() (Value, error) {
	l.pos++ // [
	var arr []Value
	for {
		l.skipSpace()
		if l.pos >= len(l.data) {
			return Value{}, fmt.Errorf("unterminated array")
		}
		if l.data[l.pos] == ']' {
			l.pos++
			return Value{Kind: KindArray, Arr: arr}, nil
		}
		v, err := l.value()
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, v)
	}
}

func (l *lexer) literalString() (Value, error) {
	l.pos++ // (
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch c {
		case '\\':
			l.pos++
			if l.pos < len(l.data) {
				out = append(out, l.data[l.pos])
				l.pos++
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				return Value{Kind: KindString, Str: out}, nil
			}
		}
		out = append(out, c)
		l.pos++
	}
	return Value{}, fmt.Errorf("unterminated string")
}

func (l *lexer) hexString() (Value, error) {
	l.pos++ // <
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		l.pos++
	}
	if l.pos >= len(l.data) {
		return Value{}, fmt.Errorf("unterminated hex string")
	}
	hex := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, string(l.data[start:l.pos]))
	l.pos++ // >
	if len(hex)%2 != 0 {
		hex += "0"
	}
	out := make([]byte, len(hex)/2)
	for i := 0; i < len(out); i++ {
		b, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return Value{}, fmt.Errorf("bad hex string: %w", err)
		}
		out[i] = byte(b)
	}
	return Value{Kind: KindString, Str: out}, nil
}

// numberOrRef parses an int, a real, or an indirect reference "N G R".
func (l *lexer) numberOrRef() (Value, error) {
	tok := l.token()
	if strings.ContainsAny(tok, ".eE") {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Value{}, fmt.Errorf("bad number %q: %w", tok, err)
		}
		return Value{Kind: KindReal, Real: f}, nil
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("bad number %q: %w", tok, err)
	}

	// Lookahead for "G R" marking an indirect reference.
	save := l.pos
	l.skipSpace()
	genTok := l.token()
	gen, genErr := strconv.Atoi(genTok)
	if genErr == nil && gen >= 0 {
		l.skipSpace()
		if l.pos < len(l.data) && l.data[l.pos] == 'R' &&
			(l.pos+1 >= len(l.data) || isSpace(l.data[l.pos+1]) || isDelim(l.data[l.pos+1])) {
			l.pos++
			return Value{Kind: KindRef, Ref: Ref{Num: int(n), Gen: gen}}, nil
		}
	}
	l.pos = save
	return Value{Kind: KindInt, Int: n}, nil
}
