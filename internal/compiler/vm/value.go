package vm

import (
	"fmt"
	"strconv"

	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
)

// Value is a scalar at run time. Int, Char and Bool live in I (bools as
// 0 or 1), Float lives in F.
type Value struct {
	Kind symbols.Kind
	I    int64
	F    float64
}

func IntValue(n int64) Value     { return Value{Kind: symbols.KindInt, I: n} }
func FloatValue(f float64) Value { return Value{Kind: symbols.KindFloat, F: f} }
func CharValue(c byte) Value     { return Value{Kind: symbols.KindChar, I: int64(c)} }

func BoolValue(b bool) Value {
	if b {
		return Value{Kind: symbols.KindBool, I: 1}
	}
	return Value{Kind: symbols.KindBool}
}

func (v Value) Bool() bool { return v.I != 0 }

func (v Value) float() float64 {
	if v.Kind == symbols.KindFloat {
		return v.F
	}
	return float64(v.I)
}

func (v Value) String() string {
	switch v.Kind {
	case symbols.KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case symbols.KindChar:
		return "'" + string(rune(byte(v.I))) + "'"
	case symbols.KindBool:
		return strconv.FormatBool(v.Bool())
	}
	return strconv.FormatInt(v.I, 10)
}

// zero is the initial content of storage of kind k.
func zero(k symbols.Kind) Value { return Value{Kind: k} }

// convert stores v into a slot of kind k. Numeric kinds convert freely
// (float to int truncates, int to char wraps); bools stay bools.
func convert(v Value, k symbols.Kind) (Value, error) {
	if v.Kind == k {
		return v, nil
	}
	if v.Kind == symbols.KindBool || k == symbols.KindBool {
		return Value{}, fmt.Errorf("cannot store %s value in %s slot", kindName(v.Kind), kindName(k))
	}
	switch k {
	case symbols.KindFloat:
		return FloatValue(v.float()), nil
	case symbols.KindInt:
		if v.Kind == symbols.KindFloat {
			return IntValue(int64(v.F)), nil
		}
		return IntValue(v.I), nil
	case symbols.KindChar:
		if v.Kind == symbols.KindFloat {
			return CharValue(byte(int64(v.F))), nil
		}
		return CharValue(byte(v.I)), nil
	}
	return Value{}, fmt.Errorf("cannot store into %s slot", kindName(k))
}

func kindName(k symbols.Kind) string {
	switch k {
	case symbols.KindInt:
		return "int"
	case symbols.KindFloat:
		return "float"
	case symbols.KindChar:
		return "char"
	case symbols.KindBool:
		return "bool"
	}
	return "array"
}

// literal decodes an operand that is not a name.
func literal(s string) (Value, bool) {
	switch {
	case s == "true":
		return BoolValue(true), true
	case s == "false":
		return BoolValue(false), true
	case len(s) == 3 && s[0] == '\'' && s[2] == '\'':
		return CharValue(s[1]), true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(n), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f), true
	}
	return Value{}, false
}

// arith applies + - * / with the same widening the type checker uses:
// float if either side is float, otherwise int.
func arith(op string, a, b Value) (Value, error) {
	if a.Kind == symbols.KindBool || b.Kind == symbols.KindBool {
		return Value{}, fmt.Errorf("operator %s applied to bool", op)
	}
	if a.Kind == symbols.KindFloat || b.Kind == symbols.KindFloat {
		x, y := a.float(), b.float()
		switch op {
		case "+":
			return FloatValue(x + y), nil
		case "-":
			return FloatValue(x - y), nil
		case "*":
			return FloatValue(x * y), nil
		case "/":
			if y == 0 {
				return Value{}, ErrDivideByZero
			}
			return FloatValue(x / y), nil
		}
		return Value{}, fmt.Errorf("unknown operator %s", op)
	}

	var n int64
	switch op {
	case "+":
		n = a.I + b.I
	case "-":
		n = a.I - b.I
	case "*":
		n = a.I * b.I
	case "/":
		if b.I == 0 {
			return Value{}, ErrDivideByZero
		}
		n = a.I / b.I
	default:
		return Value{}, fmt.Errorf("unknown operator %s", op)
	}
	return IntValue(n), nil
}

// compare evaluates a relational operator. Bools only compare with bools.
func compare(op string, a, b Value) (bool, error) {
	if (a.Kind == symbols.KindBool) != (b.Kind == symbols.KindBool) {
		return false, fmt.Errorf("cannot compare %s with %s", kindName(a.Kind), kindName(b.Kind))
	}
	var c int
	if a.Kind == symbols.KindFloat || b.Kind == symbols.KindFloat {
		x, y := a.float(), b.float()
		switch {
		case x < y:
			c = -1
		case x > y:
			c = 1
		}
	} else {
		switch {
		case a.I < b.I:
			c = -1
		case a.I > b.I:
			c = 1
		}
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	case "==":
		return c == 0, nil
	case "!=":
		return c != 0, nil
	}
	return false, fmt.Errorf("unknown relational operator %s", op)
}
