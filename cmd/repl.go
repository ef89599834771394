package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/tacgen/internal/compiler"
)

const (
	promptMain = "tg> "
	promptCont = "... "
)

// repl: translate blocks as they are typed
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Translate programs interactively",
	Args:  cobra.NoArgs,
	RunE:  replRun,
}

var replExec bool

func init() {
	ReplCmd.Flags().BoolVar(&replExec, "exec", false, "also run each program and print its variables")
}

func replRun(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "tacgen repl: enter a { block }, :quit to exit")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(config.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(config.HistoryFile); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()
	go func() {
		select {
		case <-sigc:
			ln.Close()
			os.Exit(130)
		case <-done:
		}
	}()

	opts := config.Options()
	for {
		src, err := readBlock(ln)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ":"):
			if strings.ToLower(trimmed) == ":quit" {
				return nil
			}
			fmt.Fprintln(out, "unknown command. Type :quit to exit.")
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		u, err := compiler.Compile(src, opts)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		fmt.Fprint(out, u.Listing())

		if !replExec {
			continue
		}
		m, err := compiler.Run(u, opts)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		snap := m.Snapshot()
		for _, name := range m.Names() {
			fmt.Fprintf(out, "%s = %s\n", name, snap[name])
		}
	}
}

// prompter is the part of *liner.State that readBlock needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// readBlock keeps prompting until the braces typed so far balance. It
// returns io.EOF when the user ends input and any other prompt error as is.
func readBlock(ln prompter) (string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !compiler.Incomplete(src) {
			return src, nil
		}
	}
}
