package emitter

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestInstrString(t *testing.T) {
	tests := []struct {
		in   Instr
		want string
	}{
		{Instr{Op: OpLabel, Target: 3}, "L3:"},
		{Instr{Op: OpCopy, Dst: "x", X: "t1"}, "x = t1"},
		{Instr{Op: OpBinary, Dst: "t1", X: "a", Oper: "+", Y: "b"}, "t1 = a + b"},
		{Instr{Op: OpUnary, Dst: "t2", Oper: "-", X: "x"}, "t2 = - x"},
		{Instr{Op: OpLoad, Dst: "t3", X: "a", Y: "t2"}, "t3 = a [ t2 ]"},
		{Instr{Op: OpStore, Dst: "a", X: "t2", Y: "7"}, "a [ t2 ] = 7"},
		{Instr{Op: OpIf, X: "x", Oper: "<", Y: "y", Target: 4}, "if x < y goto L4"},
		{Instr{Op: OpIf, X: "b", Oper: "==", Y: "true", Target: 4}, "if b == true goto L4"},
		{Instr{Op: OpIfFalse, X: "x", Oper: "==", Y: "0", Target: 2}, "iffalse x == 0 goto L2"},
		{Instr{Op: OpGoto, Target: 1}, "goto L1"},
		{Instr{Op: OpIncr, Oper: "++", Dst: "i"}, "++ i"},
	}
	for _, tt := range tests {
		be.Equal(t, tt.in.String(), tt.want)
	}
}

func TestCounters(t *testing.T) {
	e := NewEmitter()
	be.Equal(t, e.NewLabel(), 1)
	be.Equal(t, e.NewLabel(), 2)
	be.Equal(t, e.NewTemp(), "t1")
	be.Equal(t, e.NewTemp(), "t2")
	be.Equal(t, e.Labels(), 2)
	be.Equal(t, e.Temps(), 2)

	// a fresh emitter starts over
	f := NewEmitter()
	be.Equal(t, f.NewLabel(), 1)
	be.Equal(t, f.NewTemp(), "t1")
}

func TestRender(t *testing.T) {
	e := NewEmitter()
	e.EmitLabel(1)
	e.EmitLabel(3)
	e.Copy("x", "1")
	e.Goto(1)
	e.EmitLabel(2)

	want := strings.Join([]string{
		"L1:L3:\tx = 1",
		"\tgoto L1",
		"L2:",
		"",
	}, "\n")
	be.Equal(t, e.String(), want)
	be.Equal(t, len(e.Code()), 5)
}

func TestLink(t *testing.T) {
	e := NewEmitter()
	e.EmitLabel(1)
	e.Copy("x", "1")
	e.Goto(2)
	e.EmitLabel(2)

	pos, err := Link(e.Code())
	be.Err(t, err, nil)
	be.Equal(t, pos[1], 0)
	be.Equal(t, pos[2], 3)
}

func TestLinkErrors(t *testing.T) {
	_, err := Link([]Instr{{Op: OpGoto, Target: 9}})
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "undefined label L9"))

	_, err = Link([]Instr{{Op: OpLabel, Target: 1}, {Op: OpLabel, Target: 1}})
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "L1 emitted twice"))
}
