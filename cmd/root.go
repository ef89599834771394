package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tacgen",
	Short: "tacgen translates block-structured programs into three-address code",
	Long: `tacgen is a one-pass translator from a small imperative language
(int/float/char/bool scalars and arrays, if/else, while, do, for, break)
into labelled three-address code.

Commands:
  init   Scaffold a new program directory
  build  Translate a (.tg) source file into a (.tac) listing
  check  Parse and type-check a (.tg) source file
  run    Translate a (.tg) source file and execute the listing
  repl   Translate programs interactively
`,
	SilenceUsage: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	cfg := &config
	rootCmd.PersistentFlags().StringVarP(&cfg.OutDir, "out", "o", cfg.OutDir, "output directory for build artifacts")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log translation phases to stderr")
	rootCmd.PersistentFlags().BoolVar(&cfg.Permissive, "permissive", cfg.Permissive, "allow redeclaring a name in the same block")

	rootCmd.AddCommand(InitCmd, BuildCmd, CheckCmd, RunCmd, ReplCmd)
}
