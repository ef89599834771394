package scope

import (
	"fmt"
	"regexp"

	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

// --- Scope ---
type Scope struct {
	Symbols map[string]*symbols.Binding
	Outer   *Scope
}

func NewScope(outer *Scope) *Scope {
	return &Scope{
		Symbols: make(map[string]*symbols.Binding),
		Outer:   outer,
	}
}

// Define adds a binding ONLY to the current scope level.
// It reports false if the name already exists at this level.
func (s *Scope) Define(b *symbols.Binding) bool {
	if _, exists := s.Symbols[b.Name]; exists {
		return false
	}
	s.Symbols[b.Name] = b
	return true
}

// Lookup searches for a binding starting from the current scope and traversing outwards.
func (s *Scope) Lookup(name string) (*symbols.Binding, bool) {
	for scope := s; scope != nil; scope = scope.Outer {
		if b, ok := scope.Symbols[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupCurrentScope checks ONLY the current scope level.
func (s *Scope) LookupCurrentScope(name string) (*symbols.Binding, bool) {
	b, ok := s.Symbols[name]
	return b, ok
}

// --- Env ---

// Env is the symbol table of one translation unit: the live scope chain
// plus the allocation cursor. Offsets are handed out sequentially and
// never reclaimed when a block exits.
type Env struct {
	top  *Scope
	used int

	// refs counts the bindings created per source name.
	refs map[string]int

	// Permissive lets a name be declared twice in one block; the later
	// declaration replaces the earlier one.
	Permissive bool
}

func NewEnv() *Env {
	return &Env{refs: make(map[string]int)}
}

var tempName = regexp.MustCompile(`^t[0-9]+$`)

// ref picks the instruction-level name for a new binding of name.
func (e *Env) ref(name string) string {
	n := e.refs[name]
	e.refs[name] = n + 1
	if n == 0 && !tempName.MatchString(name) {
		return name
	}
	return fmt.Sprintf("%s.%d", name, n)
}

// Enter pushes a fresh block scope.
func (e *Env) Enter() {
	e.top = NewScope(e.top)
}

// Exit pops the innermost block scope.
func (e *Env) Exit() {
	if e.top != nil {
		e.top = e.top.Outer
	}
}

func (e *Env) Top() *Scope { return e.top }

// Used is the number of bytes allocated so far.
func (e *Env) Used() int { return e.used }

// Declare binds name in the innermost scope at the next free offset.
func (e *Env) Declare(tok token.Token, t *symbols.Type) (*symbols.Binding, error) {
	if e.top == nil {
		e.Enter()
	}
	b := &symbols.Binding{Name: tok.Literal, Type: t, Offset: e.used}
	if _, exists := e.top.LookupCurrentScope(b.Name); exists && !e.Permissive {
		return nil, diag.At(tok, diag.KindRedeclaration, "'%s' already declared in this block", tok.Literal)
	}
	b.Ref = e.ref(b.Name)
	if !e.top.Define(b) {
		// permissive: the later declaration wins
		e.top.Symbols[b.Name] = b
	}
	e.used += t.Width
	return b, nil
}

// Resolve finds the binding visible for tok from the innermost scope.
func (e *Env) Resolve(tok token.Token) (*symbols.Binding, error) {
	if e.top != nil {
		if b, ok := e.top.Lookup(tok.Literal); ok {
			return b, nil
		}
	}
	return nil, diag.At(tok, diag.KindUndeclared, "'%s' undeclared", tok.Literal)
}
