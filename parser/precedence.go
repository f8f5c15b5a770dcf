package parser

// Precedence maps binary operator characters to their binding power.
// Tables are shared between parsers and must not be modified.
type Precedence map[rune]int

var DefaultPrecedence = Precedence{
	'<': 10,
	'+': 20,
	'-': 20,
	'*': 40,
	'/': 40,
}
