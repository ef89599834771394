package cmd

import (
	"errors"
	"io"
	"testing"

	"github.com/nalgeon/be"
	"github.com/peterh/liner"
)

// scripted answers prompts from a fixed list, then fails with err.
type scripted struct {
	lines   []string
	prompts []string
	err     error
}

func (s *scripted) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", s.err
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestReadBlockWaitsForClosingBrace(t *testing.T) {
	in := &scripted{lines: []string{"{ int x;", "  x = 1;", "}"}, err: io.EOF}
	src, err := readBlock(in)
	be.Err(t, err, nil)
	be.Equal(t, src, "{ int x;\n  x = 1;\n}")
	be.Equal(t, in.prompts, []string{promptMain, promptCont, promptCont})
}

func TestReadBlockCommand(t *testing.T) {
	src, err := readBlock(&scripted{lines: []string{":quit"}})
	be.Err(t, err, nil)
	be.Equal(t, src, ":quit")
}

func TestReadBlockEndOfInput(t *testing.T) {
	_, err := readBlock(&scripted{lines: []string{"{ int x;"}, err: io.EOF})
	be.True(t, errors.Is(err, io.EOF))

	_, err = readBlock(&scripted{err: liner.ErrPromptAborted})
	be.True(t, errors.Is(err, io.EOF))
}

func TestReadBlockTerminalError(t *testing.T) {
	broken := errors.New("terminal gone")
	_, err := readBlock(&scripted{err: broken})
	be.True(t, errors.Is(err, broken))
}
