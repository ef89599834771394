// Package testcase reads golden tests written as Markdown.
//
// A test starts at a heading "Test: <name>" and holds one ```tg fence with
// the program and at least one assertion fence:
//
//	```tac     the exact listing the translator must produce
//	```error   a substring of the error translation must fail with
//	```memory  "name = value" lines checked after running the program
package testcase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const InputFence = "tg"

// AssertionType is the language tag of an assertion fence.
type AssertionType string

const (
	AssertionTAC    AssertionType = "tac"
	AssertionError  AssertionType = "error"
	AssertionMemory AssertionType = "memory"
)

type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

type TestCase struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// Memory parses a memory assertion into name -> rendered value.
func (a Assertion) Memory() (map[string]string, error) {
	out := make(map[string]string)
	for i, line := range strings.Split(a.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: memory assertion %q is not name = value", a.Line+i+1, line)
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return out, nil
}

// Extract parses a Markdown document and returns its test cases in order.
func Extract(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)
	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *current)
			}
			current = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlock(n, source)
			lineNum := lineNumber(n, source)

			if language == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
			}

			switch {
			case language == InputFence:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, current.Name)
				}
				current.Input = content
			case isAssertion(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: strings.TrimRight(content, "\n"),
					Line:    lineNum,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		testCases = append(testCases, *current)
	}
	return testCases, nil
}

func isAssertion(language string) bool {
	switch AssertionType(language) {
	case AssertionTAC, AssertionError, AssertionMemory:
		return true
	}
	return false
}

func validate(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

// extractText extracts plain text content from a markdown node
func extractText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlock(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineNumber returns the 1-based line of the node's first content line.
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
