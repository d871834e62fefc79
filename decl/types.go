// Package decl implements a C-style declaration-specifier lexer, parser,
// and deduplicating type table, built on strs and mem. The type table
// compares entries by kind and qualifiers; it does not use the intern
// package.
package decl

// BasicKind identifies one of the built-in numeric/void/bool types after
// modifier resolution. Composite forms like "long long" and "long double"
// are distinct enumerants, not flag combinations, matching how the parser
// actually resolves them.
type BasicKind int

const (
	BasicInvalid BasicKind = iota
	BasicBool

	// Integer types.
	BasicChar
	BasicSignedChar
	BasicShort
	BasicInt
	BasicLong
	BasicLongLong
	BasicUnsignedChar
	BasicUnsignedShort
	BasicUnsignedInt
	BasicUnsignedLong
	BasicUnsignedLongLong

	// Floating-point types.
	BasicFloat
	BasicDouble
	BasicLongDouble
	BasicFloatComplex
	BasicDoubleComplex
	BasicLongDoubleComplex

	BasicVoid

	basicKindCount
)

// BasicFlag is a bit set describing a basic type's category, used to gate
// which modifiers (signed/unsigned/complex) are legal for it.
type BasicFlag uint8

const (
	FlagBool BasicFlag = 1 << iota
	FlagInteger
	FlagFloat
	FlagSigned
	FlagUnsigned
	FlagComplex
)

// QualifierFlag is a bit set over {const, volatile, restrict}.
type QualifierFlag uint8

const (
	QualConst QualifierFlag = 1 << iota
	QualVolatile
	QualRestrict
)

// Kind discriminates CType's payload. Go has no tagged unions, so CType is
// a flat struct gated on this field instead.
type Kind int

const (
	KindInvalid Kind = iota
	KindBasic
	KindPointer
	KindStruct
	KindEnum
	KindUnion
)

// CType describes any type value the parser can produce. Only KindBasic is
// ever actually constructed by the current parser; the remaining payload
// fields exist so pointer/struct/enum/union support can be added later
// without reshaping the table or the parser's accumulator.
type CType struct {
	Kind Kind

	// Basic payload (Kind == KindBasic).
	BasicKind BasicKind
	Flags     BasicFlag
	Name      string

	// Pointer payload (Kind == KindPointer; not yet constructed anywhere).
	Pointee *Entry
}

var basicTypes [basicKindCount]CType

func basic(kind BasicKind, flags BasicFlag, name string) CType {
	return CType{Kind: KindBasic, BasicKind: kind, Flags: flags, Name: name}
}

func init() {
	const (
		integer = FlagInteger
		float   = FlagFloat
	)
	basicTypes[BasicInvalid] = CType{Kind: KindInvalid}
	basicTypes[BasicBool] = basic(BasicBool, FlagBool, "bool")

	basicTypes[BasicChar] = basic(BasicChar, integer, "char")
	basicTypes[BasicSignedChar] = basic(BasicSignedChar, integer|FlagSigned, "signed char")
	basicTypes[BasicShort] = basic(BasicShort, integer|FlagSigned, "short")
	basicTypes[BasicInt] = basic(BasicInt, integer|FlagSigned, "int")
	basicTypes[BasicLong] = basic(BasicLong, integer|FlagSigned, "long")
	basicTypes[BasicLongLong] = basic(BasicLongLong, integer|FlagSigned, "long long")
	basicTypes[BasicUnsignedChar] = basic(BasicUnsignedChar, integer|FlagUnsigned, "unsigned char")
	basicTypes[BasicUnsignedShort] = basic(BasicUnsignedShort, integer|FlagUnsigned, "unsigned short")
	basicTypes[BasicUnsignedInt] = basic(BasicUnsignedInt, integer|FlagUnsigned, "unsigned int")
	basicTypes[BasicUnsignedLong] = basic(BasicUnsignedLong, integer|FlagUnsigned, "unsigned long")
	basicTypes[BasicUnsignedLongLong] = basic(BasicUnsignedLongLong, integer|FlagUnsigned, "unsigned long long")

	basicTypes[BasicFloat] = basic(BasicFloat, float, "float")
	basicTypes[BasicDouble] = basic(BasicDouble, float, "double")
	basicTypes[BasicLongDouble] = basic(BasicLongDouble, float, "long double")
	basicTypes[BasicFloatComplex] = basic(BasicFloatComplex, float|FlagComplex, "float complex")
	basicTypes[BasicDoubleComplex] = basic(BasicDoubleComplex, float|FlagComplex, "double complex")
	basicTypes[BasicLongDoubleComplex] = basic(BasicLongDoubleComplex, float|FlagComplex, "long double complex")

	basicTypes[BasicVoid] = basic(BasicVoid, 0, "void")
}

// BasicType returns the canonical, unqualified CType for kind.
func BasicType(kind BasicKind) CType { return basicTypes[kind] }
