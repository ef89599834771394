package symbols

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestBasicWidths(t *testing.T) {
	tests := []struct {
		name  string
		width int
	}{
		{"int", 4},
		{"float", 8},
		{"char", 1},
		{"bool", 1},
	}
	for _, tt := range tests {
		typ, ok := Basic(tt.name)
		be.True(t, ok)
		be.Equal(t, typ.Width, tt.width)
		be.Equal(t, typ.String(), tt.name)
	}
	_, ok := Basic("string")
	be.True(t, !ok)
}

func TestArray(t *testing.T) {
	a := NewArray(5, NewArray(10, Int))
	be.Equal(t, a.Width, 200)
	be.Equal(t, a.Count, 5)
	be.Equal(t, a.Of.Width, 40)
	be.Equal(t, a.String(), "[5] [10] int")
	be.True(t, a.IsArray())
	be.True(t, !Int.IsArray())
}

func TestIdentical(t *testing.T) {
	be.True(t, Identical(Int, Int))
	be.True(t, !Identical(Int, Float))
	be.True(t, Identical(NewArray(3, Char), NewArray(3, Char)))
	be.True(t, !Identical(NewArray(3, Char), NewArray(4, Char)))
	be.True(t, !Identical(NewArray(3, Char), NewArray(3, Bool)))
}

func TestMax(t *testing.T) {
	tests := []struct {
		a, b *Type
		want *Type
	}{
		{Int, Int, Int},
		{Char, Int, Int},
		{Int, Float, Float},
		{Float, Char, Float},
		{Char, Char, Int},
		{Bool, Int, nil},
		{Int, NewArray(2, Int), nil},
	}
	for _, tt := range tests {
		got := Max(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("Max(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBindingString(t *testing.T) {
	be.Equal(t, (&Binding{Name: "x"}).String(), "x")
	be.Equal(t, (&Binding{Name: "x", Ref: "x.1"}).String(), "x.1")
}
