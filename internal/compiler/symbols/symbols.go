package symbols

import "fmt"

type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindChar
	KindBool
	KindArray
)

// Type is immutable once built. Scalars are shared singletons, so two
// scalar types are the same type exactly when the pointers are equal.
type Type struct {
	Kind  Kind
	Name  string
	Width int // storage width in bytes

	// --- Array specific info ---
	Count int
	Of    *Type
}

var (
	Int   = &Type{Kind: KindInt, Name: "int", Width: 4}
	Float = &Type{Kind: KindFloat, Name: "float", Width: 8}
	Char  = &Type{Kind: KindChar, Name: "char", Width: 1}
	Bool  = &Type{Kind: KindBool, Name: "bool", Width: 1}
)

var basics = map[string]*Type{
	"int":   Int,
	"float": Float,
	"char":  Char,
	"bool":  Bool,
}

// Basic returns the scalar type spelled by a type keyword.
func Basic(name string) (*Type, bool) {
	t, ok := basics[name]
	return t, ok
}

// NewArray builds Array(count, of); its width is count * of.Width.
func NewArray(count int, of *Type) *Type {
	return &Type{
		Kind:  KindArray,
		Name:  fmt.Sprintf("[%d] %s", count, of),
		Width: count * of.Width,
		Count: count,
		Of:    of,
	}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

func (t *Type) IsArray() bool { return t != nil && t.Kind == KindArray }

// Identical compares scalars by kind and arrays structurally.
func Identical(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != KindArray {
		return true
	}
	return a.Count == b.Count && Identical(a.Of, b.Of)
}

// Numeric reports whether t takes part in arithmetic: char, int or float.
func Numeric(t *Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindChar, KindInt, KindFloat:
		return true
	}
	return false
}

// Max widens two numeric operand types to the type of the result:
// float if either is float, else int. Char operands compute in int.
// It returns nil when either operand is not numeric.
func Max(a, b *Type) *Type {
	if !Numeric(a) || !Numeric(b) {
		return nil
	}
	if a.Kind == KindFloat || b.Kind == KindFloat {
		return Float
	}
	return Int
}

// Binding is an identifier's resolved storage location.
//
// Ref is the name instructions use for the storage. It equals Name unless
// another binding in the unit already uses Name (shadowing) or Name looks
// like a compiler temporary; then a ".N" suffix keeps the storage distinct.
type Binding struct {
	Name   string
	Ref    string
	Type   *Type
	Offset int
}

func (b *Binding) String() string {
	if b.Ref == "" {
		return b.Name
	}
	return b.Ref
}
