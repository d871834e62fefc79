package decl

import "testing"

func parse(t *testing.T, text string) (*Parser, bool, error) {
	t.Helper()
	p := NewParser()
	ok, err := p.Parse(NewLexer([]byte(text)))
	return p, ok, err
}

func TestParseInt(t *testing.T) {
	p, ok, err := parse(t, "int")
	if !ok || err != nil {
		t.Fatalf("Parse(%q) = %v, %v", "int", ok, err)
	}
	if p.Type.BasicKind != BasicInt {
		t.Fatalf("BasicKind = %v, want BasicInt", p.Type.BasicKind)
	}
	if got := p.Canonicalize(); got != "int" {
		t.Fatalf("Canonicalize() = %q, want %q", got, "int")
	}
}

func TestParseLongLongInt(t *testing.T) {
	p, ok, err := parse(t, "long long int")
	if !ok || err != nil {
		t.Fatalf("Parse = %v, %v", ok, err)
	}
	if p.Type.BasicKind != BasicLongLong {
		t.Fatalf("BasicKind = %v, want BasicLongLong", p.Type.BasicKind)
	}
	if got := p.Canonicalize(); got != "long long" {
		t.Fatalf("Canonicalize() = %q, want %q", got, "long long")
	}
}

func TestParseUnsignedIntWordOrderIndependent(t *testing.T) {
	a, ok, err := parse(t, "unsigned int")
	if !ok || err != nil {
		t.Fatalf("Parse(unsigned int) = %v, %v", ok, err)
	}
	b, ok, err := parse(t, "int unsigned")
	if !ok || err != nil {
		t.Fatalf("Parse(int unsigned) = %v, %v", ok, err)
	}
	if a.Type.BasicKind != b.Type.BasicKind || a.Qualifiers != b.Qualifiers {
		t.Fatalf("word order produced different resolved types: %+v vs %+v", a.Type, b.Type)
	}
	if a.Type.BasicKind != BasicUnsignedInt {
		t.Fatalf("BasicKind = %v, want BasicUnsignedInt", a.Type.BasicKind)
	}
}

func TestParseConstVolatileLongDouble(t *testing.T) {
	p, ok, err := parse(t, "const volatile long double")
	if !ok || err != nil {
		t.Fatalf("Parse = %v, %v", ok, err)
	}
	if p.Type.BasicKind != BasicLongDouble {
		t.Fatalf("BasicKind = %v, want BasicLongDouble", p.Type.BasicKind)
	}
	if p.Qualifiers != QualConst|QualVolatile {
		t.Fatalf("Qualifiers = %v, want const|volatile", p.Qualifiers)
	}
	if got := p.Canonicalize(); got != "const volatile long double" {
		t.Fatalf("Canonicalize() = %q, want %q", got, "const volatile long double")
	}
}

func TestParseDuplicateModifierFails(t *testing.T) {
	_, ok, err := parse(t, "signed signed int")
	if ok || err == nil {
		t.Fatalf("Parse(signed signed int) = %v, %v, want failure", ok, err)
	}
}

func TestParseRestrictOnNonPointerFails(t *testing.T) {
	_, ok, err := parse(t, "restrict int")
	if ok || err == nil {
		t.Fatalf("Parse(restrict int) = %v, %v, want failure", ok, err)
	}
}

func TestParseScrambledLongIntLongAccepted(t *testing.T) {
	p, ok, err := parse(t, "long int long")
	if !ok || err != nil {
		t.Fatalf("Parse(long int long) = %v, %v", ok, err)
	}
	if p.Type.BasicKind != BasicLongLong {
		t.Fatalf("BasicKind = %v, want BasicLongLong", p.Type.BasicKind)
	}
}

func TestParseUnsignedAndComplexAreMutuallyExclusive(t *testing.T) {
	_, ok, err := parse(t, "unsigned long complex")
	if ok || err == nil {
		t.Fatalf("Parse(unsigned long complex) = %v, %v, want failure (signed/unsigned/complex are mutually exclusive)", ok, err)
	}
}

func TestParseLongComplexResolvesToLongDoubleComplex(t *testing.T) {
	p, ok, err := parse(t, "complex long")
	if !ok || err != nil {
		t.Fatalf("Parse(complex long) = %v, %v", ok, err)
	}
	if p.Type.BasicKind != BasicLongDoubleComplex {
		t.Fatalf("BasicKind = %v, want BasicLongDoubleComplex", p.Type.BasicKind)
	}
}

func TestParseMissingBaseTypeFails(t *testing.T) {
	_, ok, err := parse(t, "const")
	if ok || err == nil {
		t.Fatalf("Parse(const) = %v, %v, want failure", ok, err)
	}
}

func TestParseUnsupportedIdentFails(t *testing.T) {
	_, ok, err := parse(t, "MyType")
	if ok || err == nil {
		t.Fatalf("Parse(MyType) = %v, %v, want failure", ok, err)
	}
}

func TestParseUnsupportedAsteriskFails(t *testing.T) {
	_, ok, err := parse(t, "int *")
	if ok || err == nil {
		t.Fatalf("Parse(int *) = %v, %v, want failure", ok, err)
	}
}

func TestParseSignedCharSpecializes(t *testing.T) {
	p, ok, err := parse(t, "signed char")
	if !ok || err != nil {
		t.Fatalf("Parse(signed char) = %v, %v", ok, err)
	}
	if p.Type.BasicKind != BasicSignedChar {
		t.Fatalf("BasicKind = %v, want BasicSignedChar", p.Type.BasicKind)
	}
}
