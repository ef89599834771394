package compiler

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/vm"
	"github.com/arnavsurve/tacgen/internal/testcase"
)

// normalize collapses runs of blanks in every line so listings compare
// the same whether a fence kept its tabs or not.
func normalize(s string) string {
	var out []string
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(out, "\n")
}

func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		content, err := os.ReadFile(file)
		be.Err(t, err, nil)
		cases, err := testcase.Extract(string(content))
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		for _, tc := range cases {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				runCase(t, tc)
			})
		}
	}
}

func runCase(t *testing.T, tc testcase.TestCase) {
	u, compileErr := Compile(tc.Input, Options{})

	for _, a := range tc.Assertions {
		switch a.Type {
		case testcase.AssertionError:
			if compileErr == nil {
				t.Fatalf("line %d: expected error containing %q, translation succeeded", a.Line, a.Content)
			}
			if !strings.Contains(compileErr.Error(), strings.TrimSpace(a.Content)) {
				t.Fatalf("line %d: expected error containing %q, got %q", a.Line, a.Content, compileErr.Error())
			}

		case testcase.AssertionTAC:
			if compileErr != nil {
				t.Fatalf("line %d: translation failed: %v", a.Line, compileErr)
			}
			be.Equal(t, normalize(u.Listing()), normalize(a.Content))

		case testcase.AssertionMemory:
			if compileErr != nil {
				t.Fatalf("line %d: translation failed: %v", a.Line, compileErr)
			}
			want, err := a.Memory()
			be.Err(t, err, nil)
			m, err := Run(u, Options{})
			be.Err(t, err, nil)
			snap := m.Snapshot()
			for name, value := range want {
				got, ok := snap[name]
				if !ok {
					t.Errorf("line %d: no variable %s after run", a.Line, name)
					continue
				}
				if got != value {
					t.Errorf("line %d: %s = %s, want %s", a.Line, name, got, value)
				}
			}
		}
	}
}

func TestCompileFailureYieldsNoCode(t *testing.T) {
	u, err := Compile(`{ int x; x = 1; break; }`, Options{})
	be.True(t, u == nil)
	be.True(t, errors.Is(err, diag.ErrIllegalBreak))
}

func TestCheck(t *testing.T) {
	prog, err := Check(`{ int a; float b; }`, Options{})
	be.Err(t, err, nil)
	be.Equal(t, prog.Used, 12)

	_, err = Check(`{ int a; int a; }`, Options{})
	be.True(t, errors.Is(err, diag.ErrRedeclaration))

	_, err = Check(`{ int a; int a; }`, Options{Permissive: true})
	be.Err(t, err, nil)
}

func TestRunStepLimit(t *testing.T) {
	u, err := Compile(`{ while (true) ; }`, Options{})
	be.Err(t, err, nil)
	_, err = Run(u, Options{MaxSteps: 100})
	be.True(t, errors.Is(err, vm.ErrStepLimit))
}

func TestRunDivideByZero(t *testing.T) {
	u, err := Compile(`{ int x; int y; x = 1 / y; }`, Options{})
	be.Err(t, err, nil)
	_, err = Run(u, Options{})
	be.True(t, errors.Is(err, vm.ErrDivideByZero))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Logger: log.New(&buf, "", 0)}
	u, err := Compile(`{ int x; x = 1; }`, opts)
	be.Err(t, err, nil)
	_, err = Run(u, opts)
	be.Err(t, err, nil)

	out := buf.String()
	be.True(t, strings.Contains(out, "parsed 1 declarations, 4 bytes of storage"))
	be.True(t, strings.Contains(out, "emitted 3 instructions, 2 labels, 0 temporaries"))
	be.True(t, strings.Contains(out, "ran 3 instructions"))
}

func TestIncomplete(t *testing.T) {
	be.True(t, Incomplete("{ int x;"))
	be.True(t, Incomplete("{ { }"))
	be.True(t, !Incomplete("{ int x; }"))
	be.True(t, !Incomplete(""))
	be.True(t, !Incomplete("{ } }"))
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()

	_, err := CompileFile(filepath.Join(dir, "main.c"), Options{})
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), ".tg extension"))

	src := filepath.Join(dir, "main.tg")
	be.Err(t, os.WriteFile(src, []byte("{ int x;\n  y = 1; }"), 0o644), nil)
	_, err = CompileFile(src, Options{})
	be.True(t, errors.Is(err, diag.ErrUndeclared))
	be.True(t, strings.HasPrefix(err.Error(), src+":2:3: Undeclared Error"))
}

func TestCompileAndWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.tg")
	be.Err(t, os.WriteFile(src, []byte("{ int i; i = i + 1; }"), 0o644), nil)

	outDir := filepath.Join(dir, "out")
	outFile, err := CompileAndWrite(src, outDir, Options{})
	be.Err(t, err, nil)
	be.Equal(t, outFile, filepath.Join(outDir, "prog.tac"))

	listing, err := os.ReadFile(outFile)
	be.Err(t, err, nil)
	be.Equal(t, string(listing), "L1:\tt1 = i + 1\n\ti = t1\nL2:\n")
}
