package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

const helloTemplate = `// {{.Name}}: sums the first ten squares into an array and a total.
{
	int i;
	int total;
	int[10] squares;

	total = 0;
	for (i = 0; i < 10; i++) {
		squares[i] = i * i;
		total = total + squares[i];
	}
}
`

// init: scaffold a new program directory
var InitCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a new program directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			targetDir string
			name      string
		)

		// targetDir is where files go, name is for templating
		if len(args) == 1 {
			targetDir = args[0]
			name = filepath.Base(args[0])
		} else {
			targetDir = "."
			cwd, err := os.Getwd()
			cobra.CheckErr(err)
			name = filepath.Base(cwd)
		}

		// If we are making a new subdirectory, ensure it doesn't already exist
		if targetDir != "." {
			if _, err := os.Stat(targetDir); err == nil {
				cobra.CheckErr(fmt.Errorf("directory %q already exists", targetDir))
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding %q ...\n", name)

		cobra.CheckErr(os.MkdirAll(filepath.Join(targetDir, "src"), 0o755))
		cobra.CheckErr(os.MkdirAll(filepath.Join(targetDir, config.OutDir), 0o755))

		outPath := filepath.Join(targetDir, "src", "main.tg")
		cobra.CheckErr(writeTpl(helloTemplate, outPath, map[string]string{"Name": name}))

		fmt.Fprintf(cmd.OutOrStdout(), "✓ %q initialized, try: tacgen run %s\n", name, outPath)
	},
}

// writeTpl executes tpl with data and writes it to outPath
func writeTpl(tpl, outPath string, data any) error {
	t, err := template.New(filepath.Base(outPath)).Parse(tpl)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.Execute(f, data)
}
