package compiler

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/tacgen/internal/compiler/ast"
	"github.com/arnavsurve/tacgen/internal/compiler/codegen"
	"github.com/arnavsurve/tacgen/internal/compiler/emitter"
	"github.com/arnavsurve/tacgen/internal/compiler/lexer"
	"github.com/arnavsurve/tacgen/internal/compiler/parser"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
	"github.com/arnavsurve/tacgen/internal/compiler/vm"
)

const (
	SourceExt = ".tg"
	OutputExt = ".tac"
)

type Options struct {
	// Permissive accepts a name declared twice in the same block.
	Permissive bool
	// MaxSteps bounds Run; 0 means vm.DefaultMaxSteps.
	MaxSteps int
	// Logger receives progress lines; nil discards them.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// Unit is a translated program.
type Unit struct {
	Program *ast.Program
	Code    []emitter.Instr
}

func (u *Unit) Listing() string {
	return emitter.Render(u.Code)
}

// Check parses and type-checks src without generating code.
func Check(src string, opts Options) (*ast.Program, error) {
	p := parser.NewParser(lexer.NewLexer(src))
	p.Permissive = opts.Permissive
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	opts.logger().Printf("parsed %d declarations, %d bytes of storage", len(prog.Decls), prog.Used)
	return prog, nil
}

// Compile translates src. A failed unit yields no code at all.
func Compile(src string, opts Options) (*Unit, error) {
	prog, err := Check(src, opts)
	if err != nil {
		return nil, err
	}
	em := codegen.Translate(prog.Body)
	if _, err := emitter.Link(em.Code()); err != nil {
		return nil, fmt.Errorf("internal error: %w", err)
	}
	opts.logger().Printf("emitted %d instructions, %d labels, %d temporaries", len(em.Code()), em.Labels(), em.Temps())
	return &Unit{Program: prog, Code: em.Code()}, nil
}

// Run executes a translated unit and returns the finished machine.
func Run(u *Unit, opts Options) (*vm.Machine, error) {
	m, err := vm.New(u.Code, u.Program.Decls)
	if err != nil {
		return nil, err
	}
	if opts.MaxSteps > 0 {
		m.MaxSteps = opts.MaxSteps
	}
	if err := m.Run(); err != nil {
		return m, err
	}
	opts.logger().Printf("ran %d instructions", m.Steps())
	return m, nil
}

// Incomplete reports whether src opens more braces than it closes, which
// means an interactive reader should keep asking for input.
func Incomplete(src string) bool {
	l := lexer.NewLexer(src)
	depth := 0
	for tok := l.NextToken(); tok.Type != token.TokenEOF; tok = l.NextToken() {
		switch tok.Type {
		case token.TokenLBrace:
			depth++
		case token.TokenRBrace:
			depth--
		}
	}
	return depth > 0
}

// CompileFile reads and translates a source file.
func CompileFile(srcPath string, opts Options) (*Unit, error) {
	if err := validateExtension(srcPath); err != nil {
		return nil, err
	}
	content, err := readSource(srcPath)
	if err != nil {
		return nil, err
	}
	u, err := Compile(content, opts)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", srcPath, err)
	}
	return u, nil
}

// CompileAndWrite translates srcPath into outDir/<name>.tac.
func CompileAndWrite(srcPath, outDir string, opts Options) (string, error) {
	u, err := CompileFile(srcPath, opts)
	if err != nil {
		return "", err
	}
	outFile, err := WriteListing(u, srcPath, outDir)
	if err != nil {
		return "", err
	}
	opts.logger().Printf("wrote %s", outFile)
	return outFile, nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension", SourceExt)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

// WriteListing writes u's listing to outDir/<name>.tac and returns the path.
func WriteListing(u *Unit, srcPath, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outFile := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(srcPath), SourceExt)+OutputExt)
	return outFile, os.WriteFile(outFile, []byte(u.Listing()), 0o644)
}
