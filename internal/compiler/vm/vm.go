// Package vm executes the instruction listing produced by the code
// generator. It exists to check generated control flow by running it.
package vm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arnavsurve/tacgen/internal/compiler/emitter"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
)

var (
	ErrStepLimit    = errors.New("step limit exceeded")
	ErrDivideByZero = errors.New("division by zero")
)

const DefaultMaxSteps = 1_000_000

type Machine struct {
	code   []emitter.Instr
	labels map[int]int

	decls  []*symbols.Binding
	types  map[string]*symbols.Type
	vars   map[string]Value
	arrays map[string]map[int64]Value

	MaxSteps int
	steps    int
}

// New links code and prepares zeroed storage for every declared binding.
func New(code []emitter.Instr, decls []*symbols.Binding) (*Machine, error) {
	labels, err := emitter.Link(code)
	if err != nil {
		return nil, err
	}
	m := &Machine{
		code:     code,
		labels:   labels,
		decls:    decls,
		types:    make(map[string]*symbols.Type),
		vars:     make(map[string]Value),
		arrays:   make(map[string]map[int64]Value),
		MaxSteps: DefaultMaxSteps,
	}
	for _, b := range decls {
		ref := b.String()
		m.types[ref] = b.Type
		if b.Type.IsArray() {
			m.arrays[ref] = make(map[int64]Value)
			continue
		}
		m.vars[ref] = zero(b.Type.Kind)
	}
	return m, nil
}

// Steps is the number of instructions executed by the last Run.
func (m *Machine) Steps() int { return m.steps }

// Run executes from the first instruction until control falls off the end.
func (m *Machine) Run() error {
	m.steps = 0
	for pc := 0; pc < len(m.code); {
		if m.MaxSteps > 0 && m.steps >= m.MaxSteps {
			return fmt.Errorf("after %d instructions: %w", m.steps, ErrStepLimit)
		}
		m.steps++

		in := m.code[pc]
		next, err := m.step(in, pc)
		if err != nil {
			return fmt.Errorf("instruction %d (%s): %w", pc, in, err)
		}
		pc = next
	}
	return nil
}

func (m *Machine) step(in emitter.Instr, pc int) (int, error) {
	switch in.Op {
	case emitter.OpLabel:
		// marker only

	case emitter.OpCopy:
		v, err := m.operand(in.X)
		if err != nil {
			return 0, err
		}
		return pc + 1, m.store(in.Dst, v)

	case emitter.OpBinary:
		a, b, err := m.operands(in.X, in.Y)
		if err != nil {
			return 0, err
		}
		v, err := arith(in.Oper, a, b)
		if err != nil {
			return 0, err
		}
		return pc + 1, m.store(in.Dst, v)

	case emitter.OpUnary:
		a, err := m.operand(in.X)
		if err != nil {
			return 0, err
		}
		if in.Oper != "-" {
			return 0, fmt.Errorf("unknown unary operator %s", in.Oper)
		}
		v, err := arith("-", negZero(a), a)
		if err != nil {
			return 0, err
		}
		return pc + 1, m.store(in.Dst, v)

	case emitter.OpLoad:
		off, err := m.operand(in.Y)
		if err != nil {
			return 0, err
		}
		v, err := m.load(in.X, off)
		if err != nil {
			return 0, err
		}
		return pc + 1, m.store(in.Dst, v)

	case emitter.OpStore:
		off, v, err := m.operands(in.X, in.Y)
		if err != nil {
			return 0, err
		}
		return pc + 1, m.storeElem(in.Dst, off, v)

	case emitter.OpIf, emitter.OpIfFalse:
		ok, err := m.test(in)
		if err != nil {
			return 0, err
		}
		if ok == (in.Op == emitter.OpIf) {
			return m.labels[in.Target], nil
		}

	case emitter.OpGoto:
		return m.labels[in.Target], nil

	case emitter.OpIncr:
		v, err := m.operand(in.Dst)
		if err != nil {
			return 0, err
		}
		op := "+"
		if in.Oper == "--" {
			op = "-"
		}
		v, err = arith(op, v, Value{Kind: v.Kind, I: 1, F: 1})
		if err != nil {
			return 0, err
		}
		return pc + 1, m.store(in.Dst, v)

	default:
		return 0, fmt.Errorf("unknown op %d", in.Op)
	}
	return pc + 1, nil
}

// negZero is the left operand of a negation: int zero unless x is a float,
// so a negated char computes in int like the checked expression does.
func negZero(x Value) Value {
	if x.Kind == symbols.KindFloat {
		return FloatValue(0)
	}
	return IntValue(0)
}

func (m *Machine) test(in emitter.Instr) (bool, error) {
	a, b, err := m.operands(in.X, in.Y)
	if err != nil {
		return false, err
	}
	return compare(in.Oper, a, b)
}

// --- Storage ---

func (m *Machine) operand(s string) (Value, error) {
	if v, ok := m.vars[s]; ok {
		return v, nil
	}
	if v, ok := literal(s); ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("read of unset name %q", s)
}

func (m *Machine) operands(x, y string) (Value, Value, error) {
	a, err := m.operand(x)
	if err != nil {
		return Value{}, Value{}, err
	}
	b, err := m.operand(y)
	if err != nil {
		return Value{}, Value{}, err
	}
	return a, b, nil
}

// store writes a scalar. Declared names keep their declared kind,
// temporaries take the kind of whatever is stored.
func (m *Machine) store(name string, v Value) error {
	if t, ok := m.types[name]; ok {
		if t.IsArray() {
			return fmt.Errorf("cannot assign to array %s", name)
		}
		cv, err := convert(v, t.Kind)
		if err != nil {
			return err
		}
		v = cv
	}
	m.vars[name] = v
	return nil
}

// element checks a byte offset against the array's bounds and alignment.
func (m *Machine) element(name string, off Value) (*symbols.Type, error) {
	t, ok := m.types[name]
	if !ok || !t.IsArray() {
		return nil, fmt.Errorf("%s is not an array", name)
	}
	if off.Kind != symbols.KindInt && off.Kind != symbols.KindChar {
		return nil, fmt.Errorf("offset into %s is not an integer", name)
	}
	elem := t
	for elem.IsArray() {
		elem = elem.Of
	}
	if off.I < 0 || off.I >= int64(t.Width) || off.I%int64(elem.Width) != 0 {
		return nil, fmt.Errorf("offset %d out of range for %s (%s)", off.I, name, t)
	}
	return elem, nil
}

func (m *Machine) load(name string, off Value) (Value, error) {
	elem, err := m.element(name, off)
	if err != nil {
		return Value{}, err
	}
	if v, ok := m.arrays[name][off.I]; ok {
		return v, nil
	}
	return zero(elem.Kind), nil
}

func (m *Machine) storeElem(name string, off, v Value) error {
	elem, err := m.element(name, off)
	if err != nil {
		return err
	}
	cv, err := convert(v, elem.Kind)
	if err != nil {
		return err
	}
	m.arrays[name][off.I] = cv
	return nil
}

// --- Inspection ---

// Scalar returns the current value of a declared scalar or a temporary.
func (m *Machine) Scalar(name string) (Value, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Element returns the element of array name at byte offset off.
func (m *Machine) Element(name string, off int64) (Value, error) {
	return m.load(name, IntValue(off))
}

// Snapshot renders every declared scalar as ref -> value, where ref is
// the binding's instruction-level name (x, or x.1 for a shadowing x).
func (m *Machine) Snapshot() map[string]string {
	out := make(map[string]string)
	for _, b := range m.decls {
		if b.Type.IsArray() {
			continue
		}
		out[b.String()] = m.vars[b.String()].String()
	}
	return out
}

// Names lists the refs of declared scalars in sorted order.
func (m *Machine) Names() []string {
	var names []string
	for _, b := range m.decls {
		if !b.Type.IsArray() {
			names = append(names, b.String())
		}
	}
	sort.Strings(names)
	return names
}
