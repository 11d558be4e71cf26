package cmd

import (
	"fmt"

	"github.com/alttpo/glterm"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var parseFlags struct {
	dump bool
	one  bool
}

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Print the terms read from files or stdin.",
	Long: `Reads every term from each file, or from stdin when no files are
given, and prints one term per line in canonical form.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		g := grammar()
		out := cmd.OutOrStdout()
		for _, in := range inputs {
			var terms []*glterm.Term
			if parseFlags.one {
				var t *glterm.Term
				t, err = g.Parse(in.text)
				terms = []*glterm.Term{t}
			} else {
				terms, err = g.ParseAll(in.text)
			}
			if err != nil {
				log.Errorf("Failed to parse %s: %s", in.name, err)
				return errors.Wrapf(err, "parsing %s", in.name)
			}
			log.Debugf("Read %d terms from %s", len(terms), in.name)

			for _, t := range terms {
				if parseFlags.dump {
					fmt.Fprint(out, spew.Sdump(t))
				} else {
					fmt.Fprintln(out, t)
				}
			}
		}
		return nil
	},
}

func parseInit() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseFlags.dump, "dump", false, "Print the structure of each term instead of its text.")
	parseCmd.Flags().BoolVar(&parseFlags.one, "one", false, "Require each input to hold exactly one term.")
}
