package decl

import "github.com/crimeraaa/dsa-sub000/strs"

// TokenKind enumerates the ~22 lexical categories the lexer can produce.
type TokenKind int

const (
	TokenInvalid TokenKind = iota

	TokenBool

	TokenChar
	TokenShort
	TokenInt
	TokenLong

	TokenFloat
	TokenDouble

	TokenStruct
	TokenEnum
	TokenUnion
	TokenIdent

	TokenSigned
	TokenUnsigned
	TokenComplex

	TokenConst
	TokenVolatile
	TokenRestrict

	TokenVoid
	TokenAsterisk
	TokenEof
)

// keywords maps every reserved spelling to its token kind. A map is the Go
// idiom for the first-byte-and-length dispatch table the same lookup would
// use in a lower-level language.
var keywords = map[string]TokenKind{
	"_Bool": TokenBool, "bool": TokenBool,
	"char": TokenChar, "short": TokenShort, "int": TokenInt, "long": TokenLong,
	"float": TokenFloat, "double": TokenDouble,
	"struct": TokenStruct, "enum": TokenEnum, "union": TokenUnion,
	"signed": TokenSigned, "unsigned": TokenUnsigned,
	"complex": TokenComplex, "_Complex": TokenComplex,
	"const": TokenConst, "volatile": TokenVolatile, "restrict": TokenRestrict,
	"void": TokenVoid,
}

// tokenNames is used for diagnostics; unset entries fall back to their
// lexeme in error messages rather than a name here.
var tokenNames = map[TokenKind]string{
	TokenInvalid: "<invalid>", TokenEof: "<eof>", TokenIdent: "<identifier>",
	TokenAsterisk: "<pointer>",
}

// Token is one lexical unit: its kind and the source bytes it spans.
type Token struct {
	Kind TokenKind
	Word strs.View
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

// Lexer scans a caller-owned byte slice into Tokens. It is restartable by
// constructing a new Lexer; it never mutates src.
type Lexer struct {
	start, current int
	src            []byte
}

// NewLexer creates a Lexer over src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) atEnd() bool { return l.current >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.current]
}

func (l *Lexer) advance() byte {
	c := l.src[l.current]
	l.current++
	return c
}

func (l *Lexer) makeToken(kind TokenKind) Token {
	return Token{Kind: kind, Word: l.src[l.start:l.current]}
}

// Scan skips whitespace and returns the next Token, ending the sequence
// with an unbounded run of TokenEof once the source is exhausted.
func (l *Lexer) Scan() Token {
	for !l.atEnd() && isWhitespace(l.peek()) {
		l.advance()
	}
	l.start = l.current
	if l.atEnd() {
		return l.makeToken(TokenEof)
	}

	c := l.advance()
	if isAlpha(c) {
		for !l.atEnd() && isAlnum(l.peek()) {
			l.advance()
		}
		word := string(l.src[l.start:l.current])
		if kind, ok := keywords[word]; ok {
			return l.makeToken(kind)
		}
		return l.makeToken(TokenIdent)
	}
	if c == '*' {
		return l.makeToken(TokenAsterisk)
	}
	return l.makeToken(TokenInvalid)
}

// Name returns a human-readable name for kind, used in diagnostics.
func (k TokenKind) Name() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	for word, kind := range keywords {
		if kind == k {
			return word
		}
	}
	return "<unknown>"
}
