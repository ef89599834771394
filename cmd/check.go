package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/tacgen/internal/compiler"
)

// check: parse and type-check only
var CheckCmd = &cobra.Command{
	Use:   "check <source.tg>",
	Short: "Parse and type-check a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  checkRun,
}

var dumpAST bool

func init() {
	CheckCmd.Flags().BoolVar(&dumpAST, "ast", false, "print the checked syntax tree and storage layout")
}

func checkRun(cmd *cobra.Command, args []string) error {
	src := args[0]
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	prog, err := compiler.Check(string(content), config.Options())
	if err != nil {
		return fmt.Errorf("%s:%w", src, err)
	}

	out := cmd.OutOrStdout()
	if dumpAST {
		for _, b := range prog.Decls {
			fmt.Fprintf(out, "%-12s %-20s offset %d\n", b, b.Type, b.Offset)
		}
		fmt.Fprint(out, prog.String())
	}
	fmt.Fprintf(out, "✔︎ %s: %d declarations, %d bytes\n", src, len(prog.Decls), prog.Used)
	return nil
}
