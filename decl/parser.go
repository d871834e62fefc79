package decl

import (
	"fmt"
	"io"

	"github.com/crimeraaa/dsa-sub000/strs"
)

// ParseError reports a semantic or lexical failure from Parser.Parse. The
// parser never returns partially built state on failure: the Parser's
// accumulator must be discarded by the caller when an error is returned.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func throwf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// Parser accumulates a declaration-specifier sequence into a CType plus its
// modifier and qualifier bit sets.
type Parser struct {
	Type       CType
	Qualifiers QualifierFlag
	Flags      BasicFlag

	// Diag receives the "[ERROR]: <msg>" line Parse writes on failure,
	// mirroring the C parser's direct write to stdout. Defaults to
	// io.Discard if nil.
	Diag io.Writer
}

// NewParser creates a Parser with an unset (invalid) accumulator.
func NewParser() *Parser {
	return &Parser{Type: BasicType(BasicInvalid)}
}

func (p *Parser) diagf(format string, args ...any) {
	if p.Diag == nil {
		return
	}
	fmt.Fprintf(p.Diag, "[ERROR]: "+format+"\n", args...)
}

// Parse pulls tokens from lexer until Eof, maintaining the accumulator.
// On success it reports the end-of-input semantic check's verdict and a
// nil error. On any lexical or semantic failure it reports false and a
// non-nil error after writing a diagnostic to p.Diag; the accumulator must
// not be trusted by the caller in that case.
func (p *Parser) Parse(lexer *Lexer) (bool, error) {
	for {
		tok := lexer.Scan()
		if tok.Kind == TokenInvalid {
			err := throwf("Invalid token %q.", string(tok.Word))
			p.diagf("%s", err)
			return false, err
		}
		if tok.Kind == TokenEof {
			if err := p.checkSemantics(); err != nil {
				p.diagf("%s", err)
				return false, err
			}
			return true, nil
		}

		if err := p.dispatch(tok); err != nil {
			p.diagf("%s", err)
			return false, err
		}
	}
}

func (p *Parser) dispatch(tok Token) error {
	switch tok.Kind {
	case TokenBool:
		return p.setBasic(BasicBool)
	case TokenChar:
		return p.setBasic(BasicChar)
	case TokenShort:
		return p.setBasic(BasicShort)
	case TokenInt:
		return p.setBasic(BasicInt)
	case TokenLong:
		return p.setBasic(BasicLong)
	case TokenFloat:
		return p.setBasic(BasicFloat)
	case TokenDouble:
		return p.setBasic(BasicDouble)
	case TokenVoid:
		return p.setBasic(BasicVoid)

	case TokenSigned:
		return p.setModifier(FlagSigned, "signed")
	case TokenUnsigned:
		return p.setModifier(FlagUnsigned, "unsigned")
	case TokenComplex:
		return p.setModifier(FlagComplex, "complex")

	case TokenConst:
		return p.setQualifier(QualConst, "const")
	case TokenVolatile:
		return p.setQualifier(QualVolatile, "volatile")
	case TokenRestrict:
		return p.setQualifier(QualRestrict, "restrict")

	case TokenStruct, TokenEnum, TokenUnion, TokenIdent, TokenAsterisk:
		return throwf("%q (%s) is unsupported!", string(tok.Word), tok.Kind.Name())

	default:
		return throwf("%q (%s) is unsupported!", string(tok.Word), tok.Kind.Name())
	}
}

// setBasic applies the one legal combination table from end-of-word-order
// resolution: k is the incoming basic kind (never LongLong or LongDouble -
// those only ever arise as a transition target, never a lexeme).
func (p *Parser) setBasic(k BasicKind) error {
	cur := p.Type

	if cur.Kind != KindInvalid && cur.Kind != KindBasic {
		return throwf("Cannot assign '%s' to '%s'", BasicType(k).Name, kindName(cur.Kind))
	}

	if cur.Kind == KindInvalid {
		p.Type = BasicType(k)
		return nil
	}

	next := cur.BasicKind
	switch k {
	case BasicBool, BasicVoid:
		return throwf("Cannot assign '%s' to '%s'", BasicType(k).Name, kindName(cur.Kind))

	case BasicShort:
		if cur.BasicKind == BasicInt {
			next = BasicShort
		} else {
			return badCombination(cur, k)
		}

	case BasicInt:
		switch cur.BasicKind {
		case BasicShort, BasicLong, BasicLongLong:
			// Unchanged.
		default:
			return badCombination(cur, k)
		}

	case BasicLong:
		switch {
		case cur.BasicKind == BasicInt:
			next = BasicLong
		case cur.BasicKind == BasicLong:
			next = BasicLongLong
		case cur.BasicKind == BasicDouble:
			next = BasicLongDouble
		case cur.Flags&FlagComplex != 0:
			next = BasicLongDoubleComplex
		default:
			return badCombination(cur, k)
		}

	case BasicLongLong:
		if cur.BasicKind == BasicInt {
			next = BasicLongLong
		}

	case BasicDouble:
		if cur.BasicKind == BasicLong {
			next = BasicLongDouble
		} else {
			return badCombination(cur, k)
		}

	default:
		return badCombination(cur, k)
	}

	p.Type = BasicType(next)
	return nil
}

func badCombination(cur CType, k BasicKind) error {
	return throwf("Cannot combine '%s' with '%s'", cur.Name, BasicType(k).Name)
}

func kindName(k Kind) string {
	switch k {
	case KindInvalid:
		return "<invalid>"
	case KindBasic:
		return "basic"
	case KindPointer:
		return "pointer"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	}
	return "<unknown>"
}

// setModifier enforces the mutually-exclusive {signed, unsigned, complex}
// set: a second modifier of any kind throws.
func (p *Parser) setModifier(flag BasicFlag, name string) error {
	const modifierMask = FlagSigned | FlagUnsigned | FlagComplex
	if p.Flags&modifierMask != 0 {
		prev := "signed"
		switch {
		case p.Flags&FlagUnsigned != 0:
			prev = "unsigned"
		case p.Flags&FlagComplex != 0:
			prev = "complex"
		}
		return throwf("Cannot combine modifiers '%s' and '%s'", prev, name)
	}
	p.Flags |= flag
	return nil
}

// setQualifier enforces the idempotent {const, volatile, restrict} set: a
// duplicate qualifier throws.
func (p *Parser) setQualifier(flag QualifierFlag, name string) error {
	if p.Qualifiers&flag != 0 {
		return throwf("Duplicate qualifier '%s'", name)
	}
	p.Qualifiers |= flag
	return nil
}

// checkSemantics resolves the end-of-input rules from an absent base type,
// signed/unsigned/complex specialization, and restrict-on-non-pointer.
func (p *Parser) checkSemantics() error {
	if p.Type.Kind == KindInvalid {
		switch {
		case p.Flags&FlagSigned != 0:
			p.Type = BasicType(BasicInt)
		case p.Flags&FlagUnsigned != 0:
			p.Type = BasicType(BasicUnsignedInt)
		case p.Flags&FlagComplex != 0:
			p.Type = BasicType(BasicDoubleComplex)
		default:
			return throwf("No base type received.")
		}
	}

	isInteger := p.Type.Flags&FlagInteger != 0
	switch {
	case p.Flags&FlagSigned != 0:
		if !isInteger {
			return p.semanticError("signed")
		}
		if p.Type.BasicKind == BasicChar {
			p.Type = BasicType(BasicSignedChar)
		}

	case p.Flags&FlagUnsigned != 0:
		if !isInteger {
			return p.semanticError("unsigned")
		}
		switch p.Type.BasicKind {
		case BasicChar:
			p.Type = BasicType(BasicUnsignedChar)
		case BasicShort:
			p.Type = BasicType(BasicUnsignedShort)
		case BasicInt:
			p.Type = BasicType(BasicUnsignedInt)
		case BasicLong:
			p.Type = BasicType(BasicUnsignedLong)
		case BasicLongLong:
			p.Type = BasicType(BasicUnsignedLongLong)
		}
	}

	if p.Flags&FlagComplex != 0 {
		isFloat := p.Type.Flags&FlagFloat != 0
		isLong := p.Type.BasicKind == BasicLong
		if !isFloat && !isLong {
			return p.semanticError("complex")
		}
		switch p.Type.BasicKind {
		case BasicFloat:
			p.Type = BasicType(BasicFloatComplex)
		case BasicDouble:
			p.Type = BasicType(BasicDoubleComplex)
		case BasicLong, BasicLongDouble:
			p.Type = BasicType(BasicLongDoubleComplex)
		}
	}

	if p.Qualifiers&QualRestrict != 0 {
		if p.Type.Kind != KindPointer {
			return p.semanticError("restrict")
		}
	}

	return nil
}

func (p *Parser) semanticError(name string) error {
	return throwf("Cannot use %s with '%s'", name, p.Type.Name)
}

// Canonicalize renders the parser's resolved type as the canonical
// spelling: qualifiers in const/volatile/restrict order (each with a
// trailing space when set), then the basic type's name, or a placeholder
// for kinds this parser never actually produces.
func (p *Parser) Canonicalize() string {
	var out string
	if p.Qualifiers&QualConst != 0 {
		out += "const "
	}
	if p.Qualifiers&QualVolatile != 0 {
		out += "volatile "
	}
	if p.Qualifiers&QualRestrict != 0 {
		out += "restrict "
	}

	switch p.Type.Kind {
	case KindInvalid:
		out += "<invalid>"
	case KindBasic:
		out += p.Type.Name
	default:
		out += "<unimplemented>"
	}
	return out
}

// CanonicalizeInto writes the same spelling Canonicalize returns into
// builder and returns its NUL-terminated form, the region-backed path the
// CLI uses so a per-line canonicalization amortizes to zero extra copies
// when builder is the most recent allocation from its region.
func (p *Parser) CanonicalizeInto(builder *strs.Builder) ([]byte, error) {
	if p.Qualifiers&QualConst != 0 {
		if err := builder.AppendString("const "); err != nil {
			return nil, err
		}
	}
	if p.Qualifiers&QualVolatile != 0 {
		if err := builder.AppendString("volatile "); err != nil {
			return nil, err
		}
	}
	if p.Qualifiers&QualRestrict != 0 {
		if err := builder.AppendString("restrict "); err != nil {
			return nil, err
		}
	}

	var tail string
	switch p.Type.Kind {
	case KindInvalid:
		tail = "<invalid>"
	case KindBasic:
		tail = p.Type.Name
	default:
		tail = "<unimplemented>"
	}
	if err := builder.AppendString(tail); err != nil {
		return nil, err
	}
	return builder.CString(), nil
}
