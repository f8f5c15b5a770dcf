package scanner

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	EOF Kind = iota

	// keywords
	Var
	Begin
	End
	Program
	Const
	Procedure
	If
	Then
	Else
	For
	To
	Do
	Integer
	Boolean
	True
	False

	Identifier
	Number
	Period
	Char
)

var keywords = map[string]Kind{
	"var":       Var,
	"begin":     Begin,
	"end":       End,
	"program":   Program,
	"const":     Const,
	"procedure": Procedure,
	"if":        If,
	"then":      Then,
	"else":      Else,
	"for":       For,
	"to":        To,
	"do":        Do,
	"integer":   Integer,
	"boolean":   Boolean,
	"true":      True,
	"false":     False,
}

var kindNames = map[Kind]string{
	EOF:        "end of input",
	Identifier: "identifier",
	Number:     "number",
	Period:     "'.'",
	Char:       "character",
}

func init() {
	for text, kind := range keywords {
		kindNames[kind] = text
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= Var && k <= False
}

type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type Token struct {
	Kind Kind
	// spelled name for identifiers and keywords, literal text for numbers
	Text  string
	Value float64
	Char  rune
	Pos   Pos
}

// Is reports whether the token is the single character c.
func (t Token) Is(c rune) bool {
	return t.Kind == Char && t.Char == c
}

func (t Token) String() string {
	switch {
	case t.Kind == Identifier:
		return fmt.Sprintf("identifier %q", t.Text)
	case t.Kind == Number:
		return "number " + t.Text
	case t.Kind == Char:
		return strconv.QuoteRune(t.Char)
	case t.Kind.IsKeyword():
		return "'" + t.Kind.String() + "'"
	}
	return t.Kind.String()
}
