package token

import "fmt"

// Location is a 1-indexed line/column position in the source text.
type Location struct {
	Line uint
	Col  uint
}

type Token struct {
	Value string
	Kind  TokenKind
	Loc   Location
}

// Equals compares value and kind only, ignoring position, so token
// streams can be compared irrespective of the formatting of the source
// they were scanned from.
func (t Token) Equals(other Token) bool {
	return t.Value == other.Value && t.Kind == other.Kind
}

func (t Token) String() string {
	return fmt.Sprintf("Token(value=%q, kind=%s, loc=(%d, %d))",
		t.Value, t.Kind, t.Loc.Line, t.Loc.Col)
}

type TokenKind int

const (
	KEYWORD TokenKind = iota
	SYMBOL
	IDENTIFIER
	STRING_LITERAL
	NUMERIC_LITERAL
)

func (k TokenKind) String() string {
	return [...]string{
		"KEYWORD",
		"SYMBOL",
		"IDENTIFIER",
		"STRING_LITERAL",
		"NUMERIC_LITERAL"}[k]
}

// Keyword values are the canonical lowercase spellings; matching is
// case-insensitive but tokens always carry these spellings.
type Keyword string

const (
	SELECT Keyword = "select"
	FROM   Keyword = "from"
	AS     Keyword = "as"
	TABLE  Keyword = "table"
	CREATE Keyword = "create"
	INSERT Keyword = "insert"
	INTO   Keyword = "into"
	VALUES Keyword = "values"
	INT    Keyword = "int"
	TEXT   Keyword = "text"
)

var Keywords = []Keyword{
	SELECT,
	FROM,
	AS,
	TABLE,
	CREATE,
	INSERT,
	INTO,
	VALUES,
	INT,
	TEXT,
}

type Symbol string

const (
	SEMICOLON Symbol = ";"
	ASTERISK  Symbol = "*"
	COMMA     Symbol = ","
	L_PAREN   Symbol = "("
	R_PAREN   Symbol = ")"
)

var Symbols = []Symbol{
	SEMICOLON,
	ASTERISK,
	COMMA,
	L_PAREN,
	R_PAREN,
}
