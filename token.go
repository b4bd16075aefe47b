package kdl

import "fmt"

// tokenType identifies the lexical class of a token.
type tokenType int

const (
	tokenEOF       tokenType = iota // end of input
	tokenError                      // an illegal token; text holds the message
	tokenString                     // a quoted or raw string
	tokenIdent                      // a bare identifier: a node name, property key, or bare string value
	tokenNumber                     // an integer or float literal, any of the four radices
	tokenKeyword                    // #true #false #null #inf #-inf #nan
	tokenNewline                    // a line terminator
	tokenSemicolon                  // ';'
	tokenEquals                     // '='
	tokenLBrace                     // '{'
	tokenRBrace                     // '}'
	tokenLParen                     // '('
	tokenRParen                     // ')'
	tokenTag                        // a resolved "(identifier)" type annotation; text holds the identifier
	tokenSuffixTag                  // a resolved "#identifier" number-suffix annotation (experimental)
	tokenSlashdash                  // '/-'
)

var tokenName = map[tokenType]string{
	tokenEOF:       "end of input",
	tokenError:     "error",
	tokenString:    "string",
	tokenIdent:     "identifier",
	tokenNumber:    "number",
	tokenKeyword:   "keyword",
	tokenNewline:   "newline",
	tokenSemicolon: "';'",
	tokenEquals:    "'='",
	tokenLBrace:    "'{'",
	tokenRBrace:    "'}'",
	tokenLParen:    "'('",
	tokenRParen:    "')'",
	tokenTag:       "type annotation",
	tokenSuffixTag: "number suffix",
	tokenSlashdash: "'/-'",
}

func (t tokenType) String() string {
	if s, ok := tokenName[t]; ok {
		return s
	}
	return fmt.Sprintf("token%d", int(t))
}

// token represents a single lexical unit emitted by the lexer.
type token struct {
	typ  tokenType
	line int // 1-based
	col  int // 0-based, counted in bytes from the start of line
	text string
	// spaceBefore records whether whitespace (or a comment) separated
	// this token from the previous one. The parser uses it to reject a
	// type annotation that isn't immediately adjacent to the thing it
	// annotates.
	spaceBefore bool
}
