package scanner

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const eof = -1

// Scanner turns a character stream into tokens, one at a time.
// It keeps a single character of lookahead and never rewinds.
type Scanner struct {
	r    *bufio.Reader
	ch   rune
	pos  Pos // position of ch
	next Pos
	done bool
	err  error
}

func New(r io.Reader) *Scanner {
	s := &Scanner{
		r:    bufio.NewReader(r),
		next: Pos{Line: 1, Col: 1},
	}
	s.read()
	return s
}

// Err returns the first read error other than io.EOF.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) read() {
	s.pos = s.next
	if s.done {
		s.ch = eof
		return
	}
	c, _, err := s.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		s.done = true
		s.ch = eof
		return
	}
	s.ch = c
	if c == '\n' {
		s.next.Line++
		s.next.Col = 1
	} else {
		s.next.Col++
	}
}

// digitFollows reports whether the character after ch is a decimal digit.
func (s *Scanner) digitFollows() bool {
	if s.done {
		return false
	}
	b, err := s.r.Peek(1)
	return err == nil && isDigit(rune(b[0]))
}

func (s *Scanner) Next() Token {
	for isSpace(s.ch) {
		s.read()
	}
	pos := s.pos

	switch {
	case s.ch == eof:
		return Token{Kind: EOF, Pos: pos}

	case isLetter(s.ch):
		var b strings.Builder
		for isLetter(s.ch) || isDigit(s.ch) {
			b.WriteRune(s.ch)
			s.read()
		}
		text := b.String()
		kind := Identifier
		if kw, ok := keywords[text]; ok {
			kind = kw
		}
		return Token{Kind: kind, Text: text, Pos: pos}

	case isDigit(s.ch):
		var b strings.Builder
		s.digits(&b)
		if s.ch == '.' && s.digitFollows() {
			b.WriteRune('.')
			s.read()
			s.digits(&b)
		}
		return s.number(b.String(), pos)

	case s.ch == '.':
		s.read()
		if !isDigit(s.ch) {
			return Token{Kind: Period, Text: ".", Pos: pos}
		}
		var b strings.Builder
		b.WriteRune('.')
		s.digits(&b)
		return s.number(b.String(), pos)

	case s.ch == '#':
		for s.ch != eof && s.ch != '\n' && s.ch != '\r' {
			s.read()
		}
		return s.Next()
	}

	c := s.ch
	s.read()
	return Token{Kind: Char, Text: string(c), Char: c, Pos: pos}
}

func (s *Scanner) digits(b *strings.Builder) {
	for isDigit(s.ch) {
		b.WriteRune(s.ch)
		s.read()
	}
}

func (s *Scanner) number(text string, pos Pos) Token {
	// out of range literals become ±Inf and are rejected when lowered
	value, _ := strconv.ParseFloat(text, 64)
	return Token{Kind: Number, Text: text, Value: value, Pos: pos}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isLetter(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
