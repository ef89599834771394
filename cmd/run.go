package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/tacgen/internal/compiler"
)

// run: translate, then execute the listing
var RunCmd = &cobra.Command{
	Use:   "run [options] <source.tg>",
	Short: "Translate a source file and execute the resulting listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	RunCmd.Flags().IntVar(&config.MaxSteps, "max-steps", config.MaxSteps, "abort after this many executed instructions")
}

func runRun(cmd *cobra.Command, args []string) error {
	opts := config.Options()
	u, err := compiler.CompileFile(args[0], opts)
	if err != nil {
		return err
	}

	m, err := compiler.Run(u, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	snap := m.Snapshot()
	for _, name := range m.Names() {
		fmt.Fprintf(out, "%s = %s\n", name, snap[name])
	}
	return nil
}
