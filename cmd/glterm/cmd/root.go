package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alttpo/glterm"
	"github.com/jcgregorio/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const envPrefix = "GLTERM_"

var rootFlags struct {
	lax           bool
	allowTrailing bool
	verbose       bool
	logToStdout   bool
}

var log *logger.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "glterm",
	Short: "Read Lisp-like data terms.",
	Long: `Read nil, booleans, integers, strings and lists from text.

Each sub-command reads files named on the command line, for example
to print the terms in a file in canonical form:

	glterm parse data.term

`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyEnv(cmd.Flags()); err != nil {
			return err
		}

		var w logger.SyncWriter = os.Stderr
		if rootFlags.logToStdout {
			w = os.Stdout
		}
		log = logger.NewFromOptions(&logger.Options{
			SyncWriter:   w,
			IncludeDebug: rootFlags.verbose,
		})

		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			log.Debugf("Flags: --%s=%v", f.Name, f.Value)
		})
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	initSubCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initSubCommands() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&rootFlags.lax, "lax", false, "Do not require a delimiter after nil, booleans and numbers.")
	pf.BoolVar(&rootFlags.allowTrailing, "allow-trailing", false, "With --one, ignore anything after the first term.")
	pf.BoolVar(&rootFlags.verbose, "verbose", false, "Log at debug level.")
	pf.BoolVar(&rootFlags.logToStdout, "logtostdout", false, "Log to stdout instead of stderr.")

	parseInit()
	checkInit()
	luaInit()
}

// applyEnv fills flags that were not given on the command line from
// GLTERM_<FLAG> environment variables.
func applyEnv(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}
		name := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v, ok := os.LookupEnv(name); ok {
			if serr := fs.Set(f.Name, v); serr != nil {
				err = errors.Wrapf(serr, "invalid value for %s", name)
			}
		}
	})
	return err
}

func grammar() *glterm.Grammar {
	return glterm.New(glterm.Options{
		Lax:           rootFlags.lax,
		AllowTrailing: rootFlags.allowTrailing,
	})
}

type input struct {
	name string
	text string
}

// readInputs reads every named file, or stdin when there are none and
// stdin is not nil.
func readInputs(stdin io.Reader, paths []string) ([]input, error) {
	if len(paths) == 0 {
		if stdin == nil {
			return nil, nil
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
		return []input{{name: "<stdin>", text: string(b)}}, nil
	}

	inputs := make([]input, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", p)
		}
		inputs = append(inputs, input{name: p, text: string(b)})
	}
	return inputs, nil
}
