package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var checkFlags struct {
	jobs int
}

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report which files hold well formed terms.",
	Long: `Parses every file concurrently and prints OK or FAIL for each.
Exits with an error listing every failure when any file fails.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		g := grammar()
		failures := make([]error, len(inputs))

		var eg errgroup.Group
		if checkFlags.jobs > 0 {
			eg.SetLimit(checkFlags.jobs)
		}
		for i, in := range inputs {
			i, in := i, in
			eg.Go(func() error {
				terms, err := g.ParseAll(in.text)
				if err != nil {
					failures[i] = errors.Wrapf(err, "parsing %s", in.name)
					return nil
				}
				log.Debugf("Read %d terms from %s", len(terms), in.name)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		ok := color.New(color.FgGreen).SprintFunc()
		bad := color.New(color.FgRed).SprintFunc()
		out := cmd.OutOrStdout()

		var merr *multierror.Error
		for i, in := range inputs {
			if failures[i] != nil {
				fmt.Fprintf(out, "%s %s: %s\n", bad("FAIL"), in.name, errors.Cause(failures[i]))
				merr = multierror.Append(merr, failures[i])
				continue
			}
			fmt.Fprintf(out, "%s %s\n", ok("OK"), in.name)
		}
		if merr != nil {
			log.Errorf("%d of %d inputs failed", merr.Len(), len(inputs))
		}
		return merr.ErrorOrNil()
	},
}

func checkInit() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&checkFlags.jobs, "jobs", 4, "Number of files parsed at once. 0 means no limit.")
}
