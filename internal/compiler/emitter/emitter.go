package emitter

import (
	"fmt"
	"strings"
)

// NOTES:
// - The sink is append-only. Jumps name label numbers; Link resolves them
//   to positions after generation, nothing already emitted is patched.
// - Label and temporary counters belong to one Emitter, so every
//   translation unit starts again from L1 and t1.

type Op int

const (
	OpLabel   Op = iota // L<Target>:
	OpCopy              // Dst = X
	OpBinary            // Dst = X Oper Y
	OpUnary             // Dst = Oper X
	OpLoad              // Dst = X [ Y ]
	OpStore             // Dst [ X ] = Y
	OpIf                // if X Oper Y goto L<Target>
	OpIfFalse           // iffalse X Oper Y goto L<Target>
	OpGoto              // goto L<Target>
	OpIncr              // Oper Dst, Oper is ++ or --
)

// Instr is one line of output. Operands are printed names: identifiers,
// temporaries (t1, t2, ...) or literal constants.
type Instr struct {
	Op     Op
	Dst    string
	X      string
	Y      string
	Oper   string
	Target int
}

func (in Instr) cond() string {
	return in.X + " " + in.Oper + " " + in.Y
}

func (in Instr) String() string {
	switch in.Op {
	case OpLabel:
		return fmt.Sprintf("L%d:", in.Target)
	case OpCopy:
		return in.Dst + " = " + in.X
	case OpBinary:
		return in.Dst + " = " + in.X + " " + in.Oper + " " + in.Y
	case OpUnary:
		return in.Dst + " = " + in.Oper + " " + in.X
	case OpLoad:
		return in.Dst + " = " + in.X + " [ " + in.Y + " ]"
	case OpStore:
		return in.Dst + " [ " + in.X + " ] = " + in.Y
	case OpIf:
		return fmt.Sprintf("if %s goto L%d", in.cond(), in.Target)
	case OpIfFalse:
		return fmt.Sprintf("iffalse %s goto L%d", in.cond(), in.Target)
	case OpGoto:
		return fmt.Sprintf("goto L%d", in.Target)
	case OpIncr:
		return in.Oper + " " + in.Dst
	}
	return fmt.Sprintf("<op %d>", in.Op)
}

// IsJump reports whether the instruction may transfer control to Target.
func (in Instr) IsJump() bool {
	return in.Op == OpIf || in.Op == OpIfFalse || in.Op == OpGoto
}

type Emitter struct {
	labels int
	temps  int
	code   []Instr
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// --- Counters ---

func (e *Emitter) NewLabel() int {
	e.labels++
	return e.labels
}

func (e *Emitter) NewTemp() string {
	e.temps++
	return fmt.Sprintf("t%d", e.temps)
}

func (e *Emitter) Labels() int { return e.labels }
func (e *Emitter) Temps() int  { return e.temps }

// --- Emit Helpers ---

func (e *Emitter) Emit(in Instr) {
	e.code = append(e.code, in)
}

func (e *Emitter) EmitLabel(label int) {
	e.Emit(Instr{Op: OpLabel, Target: label})
}

func (e *Emitter) Goto(label int) {
	e.Emit(Instr{Op: OpGoto, Target: label})
}

func (e *Emitter) Copy(dst, x string) {
	e.Emit(Instr{Op: OpCopy, Dst: dst, X: x})
}

// Code returns the instructions emitted so far.
func (e *Emitter) Code() []Instr {
	return e.code
}

// String renders the listing: a label prefixes the next instruction on the
// same line, operations are tab-indented.
func (e *Emitter) String() string {
	return Render(e.code)
}

func Render(code []Instr) string {
	var b strings.Builder
	pending := false
	for _, in := range code {
		if in.Op == OpLabel {
			b.WriteString(in.String())
			pending = true
			continue
		}
		b.WriteString("\t" + in.String() + "\n")
		pending = false
	}
	if pending {
		b.WriteString("\n")
	}
	return b.String()
}

// Link maps every label to the index of its marker in code and checks that
// each jump names a label that was emitted.
func Link(code []Instr) (map[int]int, error) {
	pos := make(map[int]int)
	for i, in := range code {
		if in.Op != OpLabel {
			continue
		}
		if _, dup := pos[in.Target]; dup {
			return nil, fmt.Errorf("label L%d emitted twice", in.Target)
		}
		pos[in.Target] = i
	}
	for i, in := range code {
		if !in.IsJump() {
			continue
		}
		if _, ok := pos[in.Target]; !ok {
			return nil, fmt.Errorf("instruction %d (%s) jumps to undefined label L%d", i, in, in.Target)
		}
	}
	return pos, nil
}
