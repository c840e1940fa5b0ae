package parser

import (
	"fmt"
	"strings"

	"github.com/LDM-A/sqrldb/engine/token"
)

/*
   Lexical grammar, scanned by hand rather than with text/scanner so
   that positions and the SQL quoting rules stay under our control:

   keyword          -> one of token.Keywords, case-insensitive, not
                       followed by an identifier character
   symbol           -> one of token.Symbols, single byte
   string_literal   -> '\'' (any byte | '\'' '\'')* '\''
   numeric_literal  -> per the PostgreSQL lexical rules: digits with at
                       most one period, an optional exponent marker with
                       optional sign; the period may lead
   identifier       -> [A-Za-z_][A-Za-z0-9_]*

   Recognizers are tried in the order keyword, symbol, string, numeric,
   identifier; the first match at the current position wins.
*/

// cursor is the scan position: a byte offset into the source plus the
// line/column of that offset. Cursors are values; recognizers receive a
// copy of the committed position and return an advanced copy on match.
type cursor struct {
	pointer uint
	loc     token.Location
}

// advance consumes c, which must be the byte at the cursor. A newline
// starts the next line at column 1; every other byte moves one column.
func (cur cursor) advance(c byte) cursor {
	cur.pointer++
	if c == '\n' {
		cur.loc.Line++
		cur.loc.Col = 1
	} else {
		cur.loc.Col++
	}
	return cur
}

// lexer attempts to match a single token class at ic. The bool reports
// whether the class applies at this position at all; a non-nil error
// means the class began matching but the input violates its grammar,
// which aborts the entire scan.
type lexer func(source string, ic cursor) (token.Token, cursor, bool, error)

var lexers = []lexer{
	lexKeyword,
	lexSymbol,
	lexString,
	lexNumeric,
	lexIdentifier,
}

// LexicalScan converts src into an ordered sequence of tokens with
// whitespace elided. The whole scan fails on the first position where
// no recognizer matches or a recognizer reports a malformed construct;
// no partial token sequence is returned alongside an error.
func LexicalScan(src string) ([]token.Token, error) {
	tokens := make([]token.Token, 0, 10)
	cur := cursor{pointer: 0, loc: token.Location{Line: 1, Col: 1}}

lex:
	for cur.pointer < uint(len(src)) {
		cur = skipWhitespace(src, cur)
		if cur.pointer >= uint(len(src)) {
			break
		}

		for _, l := range lexers {
			tok, next, ok, err := l(src, cur)
			if err != nil {
				return nil, err
			}
			if ok {
				cur = next
				if tok.Value != "" {
					tokens = append(tokens, tok)
				}
				continue lex
			}
		}

		hint := ""
		if len(tokens) > 0 {
			hint = tokens[len(tokens)-1].Value
		}
		return nil, LexError{Loc: cur.loc, Hint: hint}
	}

	return tokens, nil
}

// skipWhitespace produces no token; it exists so that the recognizers
// never have to account for the space between tokens.
func skipWhitespace(source string, ic cursor) cursor {
	cur := ic
	for cur.pointer < uint(len(source)) {
		switch c := source[cur.pointer]; c {
		case ' ', '\t', '\r', '\n':
			cur = cur.advance(c)
		default:
			return cur
		}
	}
	return cur
}

// lexNumeric scans the longest numeric literal at ic. At most one
// period may appear, none after the exponent marker, and the marker
// cannot be the final byte of the source. A violation rejects the whole
// attempt at this position rather than truncating at the last valid
// prefix, so "1.2.3" is not a numeric literal at offset 0 at all.
func lexNumeric(source string, ic cursor) (token.Token, cursor, bool, error) {
	cur := ic
	periodFound := false
	expMarkerFound := false

	for cur.pointer < uint(len(source)) {
		c := source[cur.pointer]

		isDigit := c >= '0' && c <= '9'
		isPeriod := c == '.'
		isExpMarker := c == 'e' || c == 'E'

		// Must start with a digit or a period.
		if cur.pointer == ic.pointer {
			if !isDigit && !isPeriod {
				return token.Token{}, ic, false, nil
			}
			periodFound = isPeriod
			cur = cur.advance(c)
			continue
		}

		if isPeriod {
			if periodFound {
				return token.Token{}, ic, false, nil
			}
			periodFound = true
			cur = cur.advance(c)
			continue
		}

		if isExpMarker {
			if expMarkerFound {
				return token.Token{}, ic, false, nil
			}
			// No periods allowed after the exponent.
			periodFound = true
			expMarkerFound = true

			// The marker must be followed by at least one byte.
			if cur.pointer == uint(len(source))-1 {
				return token.Token{}, ic, false, nil
			}
			cur = cur.advance(c)
			if next := source[cur.pointer]; next == '+' || next == '-' {
				cur = cur.advance(next)
			}
			continue
		}

		if !isDigit {
			break
		}
		cur = cur.advance(c)
	}

	if cur.pointer == ic.pointer {
		return token.Token{}, ic, false, nil
	}

	return token.Token{
		Value: source[ic.pointer:cur.pointer],
		Kind:  token.NUMERIC_LITERAL,
		Loc:   ic.loc,
	}, cur, true, nil
}

// lexString scans a single-quoted SQL string literal.
func lexString(source string, ic cursor) (token.Token, cursor, bool, error) {
	return lexCharacterDelimited(source, ic, '\'')
}

// lexCharacterDelimited scans a literal bounded by delimiter, where a
// doubled delimiter embeds one delimiter byte in the value ('O''Brien'
// carries O'Brien). The token value is the accumulated body without the
// bounding delimiters. Once the opening delimiter is consumed the
// position is committed: running out of input before an unescaped
// closing delimiter is a malformed construct, not a failure to match.
func lexCharacterDelimited(source string, ic cursor, delimiter byte) (token.Token, cursor, bool, error) {
	if ic.pointer >= uint(len(source)) || source[ic.pointer] != delimiter {
		return token.Token{}, ic, false, nil
	}

	cur := ic.advance(delimiter)
	var value []byte

	for cur.pointer < uint(len(source)) {
		c := source[cur.pointer]
		if c == delimiter {
			if cur.pointer+1 < uint(len(source)) && source[cur.pointer+1] == delimiter {
				value = append(value, delimiter)
				cur = cur.advance(c)
				cur = cur.advance(c)
				continue
			}
			cur = cur.advance(c)
			return token.Token{
				Value: string(value),
				Kind:  token.STRING_LITERAL,
				Loc:   ic.loc,
			}, cur, true, nil
		}
		value = append(value, c)
		cur = cur.advance(c)
	}

	return token.Token{}, ic, false, UnterminatedLiteralError{Delimiter: delimiter, Loc: ic.loc}
}

// lexKeyword matches the longest vocabulary entry at ic, rejecting
// matches that run straight into an identifier character so that
// SELECTOR never yields the keyword select.
func lexKeyword(source string, ic cursor) (token.Token, cursor, bool, error) {
	match := ""
	for _, kw := range token.Keywords {
		end := ic.pointer + uint(len(kw))
		if end > uint(len(source)) {
			continue
		}
		if !strings.EqualFold(source[ic.pointer:end], string(kw)) {
			continue
		}
		if end < uint(len(source)) && isIdentifierChar(source[end]) {
			continue
		}
		if len(kw) > len(match) {
			match = string(kw)
		}
	}
	if match == "" {
		return token.Token{}, ic, false, nil
	}

	cur := ic
	for range match {
		cur = cur.advance(source[cur.pointer])
	}
	return token.Token{
		Value: match,
		Kind:  token.KEYWORD,
		Loc:   ic.loc,
	}, cur, true, nil
}

func lexSymbol(source string, ic cursor) (token.Token, cursor, bool, error) {
	if ic.pointer >= uint(len(source)) {
		return token.Token{}, ic, false, nil
	}
	c := source[ic.pointer]
	for _, s := range token.Symbols {
		if s == token.Symbol(c) {
			return token.Token{
				Value: string(s),
				Kind:  token.SYMBOL,
				Loc:   ic.loc,
			}, ic.advance(c), true, nil
		}
	}
	return token.Token{}, ic, false, nil
}

// lexIdentifier is the fallback class: a letter or underscore followed
// by any run of letters, digits and underscores.
func lexIdentifier(source string, ic cursor) (token.Token, cursor, bool, error) {
	if ic.pointer >= uint(len(source)) {
		return token.Token{}, ic, false, nil
	}
	if c := source[ic.pointer]; !isLetter(c) && c != '_' {
		return token.Token{}, ic, false, nil
	}

	cur := ic.advance(source[ic.pointer])
	for cur.pointer < uint(len(source)) && isIdentifierChar(source[cur.pointer]) {
		cur = cur.advance(source[cur.pointer])
	}
	return token.Token{
		Value: source[ic.pointer:cur.pointer],
		Kind:  token.IDENTIFIER,
		Loc:   ic.loc,
	}, cur, true, nil
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentifierChar(c byte) bool {
	return isLetter(c) || c >= '0' && c <= '9' || c == '_'
}

/** Error Handling **/

// LexError reports a position where no token class applies. The hint is
// the value of the most recently accepted token, when one exists.
type LexError struct {
	Loc  token.Location
	Hint string
}

func (e LexError) Error() string {
	hint := ""
	if e.Hint != "" {
		hint = fmt.Sprintf(" after `%s`", e.Hint)
	}
	return fmt.Sprintf("Unable to lex token%s at %d:%d", hint, e.Loc.Line, e.Loc.Col)
}

// UnterminatedLiteralError reports a delimited literal whose opening
// delimiter was consumed but whose closing delimiter never arrived. Loc
// is the position of the opening delimiter.
type UnterminatedLiteralError struct {
	Delimiter byte
	Loc       token.Location
}

func (e UnterminatedLiteralError) Error() string {
	return fmt.Sprintf("unterminated literal delimited by %q starting at %d:%d",
		e.Delimiter, e.Loc.Line, e.Loc.Col)
}
