package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/tacgen/internal/compiler"
)

// build: translate .tg -> .tac
var BuildCmd = &cobra.Command{
	Use:   "build <source.tg>",
	Short: "Translate a source file into a three-address code listing",
	Args:  cobra.ExactArgs(1),
	RunE:  buildRun,
}

var printListing bool

func init() {
	BuildCmd.Flags().BoolVarP(&printListing, "print", "p", false, "also print the listing to stdout")
}

func buildRun(cmd *cobra.Command, args []string) error {
	src := args[0]

	fmt.Fprintf(cmd.OutOrStdout(), "↪ building %q → %q ...\n", src, config.OutDir+"/")

	if !printListing {
		outFile, err := compiler.CompileAndWrite(src, config.OutDir, config.Options())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✔︎ wrote three-address code to %s\n", outFile)
		return nil
	}

	u, err := compiler.CompileFile(src, config.Options())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), u.Listing())
	outFile, err := compiler.WriteListing(u, src, config.OutDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✔︎ wrote three-address code to %s\n", outFile)
	return nil
}
