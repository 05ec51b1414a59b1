package runk

import (
	"fmt"
	"math/big"
	"strconv"
)

// Kind identifies one of the four runk value variants.
type Kind uint8

const (
	KindNatural Kind = iota
	KindInteger
	KindText
	KindLabel
)

// typeKeywords maps the data type keywords of the language onto variants.
var typeKeywords = map[string]Kind{
	"Nat": KindNatural,
	"Int": KindInteger,
	"Txt": KindText,
	"Lab": KindLabel,
}

func (k Kind) String() string {
	switch k {
	case KindNatural:
		return "Nat"
	case KindInteger:
		return "Int"
	case KindText:
		return "Txt"
	case KindLabel:
		return "Lab"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a runk value. The set of implementations is closed: Natural,
// Integer, Text and Label.
type Value interface {
	Kind() Kind
	// String returns the plain textual form used when a value is printed.
	String() string
	value()
}

// Number is implemented by the numeric variants only. Arithmetic is defined
// over Numbers, so it cannot be applied to Text or Label.
type Number interface {
	Value
	// Int returns a copy of the numeric payload.
	Int() *big.Int
	number()
}

// Natural is a non-negative integer of arbitrary size.
type Natural struct {
	n *big.Int
}

// Integer is a signed integer of arbitrary size.
type Integer struct {
	n *big.Int
}

// Text is a string value.
type Text string

// Label names a jump target.
type Label string

// NewNatural returns n as a Natural. Negative numbers are rejected.
func NewNatural(n *big.Int) (Natural, error) {
	if n.Sign() < 0 {
		return Natural{}, fmt.Errorf("%s is not a natural number", n)
	}
	return Natural{new(big.Int).Set(n)}, nil
}

// NewInteger returns n as an Integer.
func NewInteger(n *big.Int) Integer {
	return Integer{new(big.Int).Set(n)}
}

// Nat is a shorthand for small, known non-negative naturals.
func Nat(n uint64) Natural {
	return Natural{new(big.Int).SetUint64(n)}
}

// Int is a shorthand for small integers.
func Int(n int64) Integer {
	return Integer{big.NewInt(n)}
}

// Bool turns a truth value into the numbers 1 and 0.
func Bool(b bool) Natural {
	if b {
		return Nat(1)
	}
	return Nat(0)
}

func (Natural) Kind() Kind { return KindNatural }
func (Integer) Kind() Kind { return KindInteger }
func (Text) Kind() Kind    { return KindText }
func (Label) Kind() Kind   { return KindLabel }

func (v Natural) String() string { return v.big().String() }
func (v Integer) String() string { return v.big().String() }
func (v Text) String() string    { return string(v) }
func (v Label) String() string   { return "!" + string(v) }

func (Natural) value() {}
func (Integer) value() {}
func (Text) value()    {}
func (Label) value()   {}

func (v Natural) Int() *big.Int { return new(big.Int).Set(v.big()) }
func (v Integer) Int() *big.Int { return new(big.Int).Set(v.big()) }

func (Natural) number() {}
func (Integer) number() {}

// big returns the payload, treating the zero struct as zero.
func (v Natural) big() *big.Int {
	if v.n == nil {
		return new(big.Int)
	}
	return v.n
}

func (v Integer) big() *big.Int {
	if v.n == nil {
		return new(big.Int)
	}
	return v.n
}

// Describe formats v together with its variant, e.g. Nat(5) or Txt("a").
func Describe(v Value) string {
	switch v := v.(type) {
	case Text:
		return fmt.Sprintf("%s(%q)", v.Kind(), string(v))
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%s(%s)", v.Kind(), v)
	}
}

// SameKind reports whether a and b are the same variant, ignoring payloads.
func SameKind(a, b Value) bool {
	return a.Kind() == b.Kind()
}

// Coerce converts v into the variant k. Numbers move freely between Natural
// and Integer as long as the value is preserved; Text and Label only coerce
// into themselves.
func Coerce(v Value, k Kind) (Value, error) {
	if v.Kind() == k {
		return v, nil
	}
	num, isNum := v.(Number)
	switch {
	case isNum && k == KindInteger:
		return NewInteger(num.Int()), nil
	case isNum && k == KindNatural:
		n, err := NewNatural(num.Int())
		if err != nil {
			return nil, fmt.Errorf("cannot convert %s to %s", Describe(v), k)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot convert %s to %s", Describe(v), k)
}

// Normalize returns v in its most specific variant: non-negative Integers
// become Naturals.
func Normalize(v Value) Value {
	if i, ok := v.(Integer); ok && i.big().Sign() >= 0 {
		return Natural{i.big()}
	}
	return v
}

// Equal compares two values. Numbers are equal when their values are, no
// matter the variant; Text and Label only equal values of their own variant.
func Equal(a, b Value) bool {
	an, aNum := a.(Number)
	bn, bNum := b.(Number)
	if aNum || bNum {
		return aNum && bNum && Compare(an, bn) == 0
	}
	if !SameKind(a, b) {
		return false
	}
	return a.String() == b.String()
}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal to
// or greater than b.
func Compare(a, b Number) int {
	return a.Int().Cmp(b.Int())
}

// Add returns a + b.
func Add(a, b Number) Number {
	return normalizeNumber(new(big.Int).Add(a.Int(), b.Int()))
}

// Sub returns a - b.
func Sub(a, b Number) Number {
	return normalizeNumber(new(big.Int).Sub(a.Int(), b.Int()))
}

// Mul returns a * b.
func Mul(a, b Number) Number {
	return normalizeNumber(new(big.Int).Mul(a.Int(), b.Int()))
}

// Div returns a / b truncated towards zero.
func Div(a, b Number) (Number, error) {
	d := b.Int()
	if d.Sign() == 0 {
		return nil, errDivisionByZero
	}
	return normalizeNumber(new(big.Int).Quo(a.Int(), d)), nil
}

func normalizeNumber(n *big.Int) Number {
	if n.Sign() >= 0 {
		return Natural{n}
	}
	return Integer{n}
}

// ParseNumber parses a decimal integer literal into its most specific
// variant.
func ParseNumber(s string) (Number, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return normalizeNumber(n), true
}

// Truthy reports whether a number counts as true, i.e. is not zero.
func Truthy(n Number) bool {
	return n.Int().Sign() != 0
}
