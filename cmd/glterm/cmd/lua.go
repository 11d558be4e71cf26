package cmd

import (
	termlua "github.com/alttpo/glterm/lua"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"
)

var luaCmd = &cobra.Command{
	Use:   "lua script [files...]",
	Short: "Run a Lua script over the named files.",
	Long: `Runs script with the term functions registered as the globals
term_parse, term_parse_all and term_format, and as the module "glterm".
The global inputs is a list of { name = ..., text = ... } tables, one per
file.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(nil, args[1:])
		if err != nil {
			return err
		}

		L := lua.NewState()
		defer L.Close()

		g := grammar()
		termlua.Register(L, g)
		termlua.Preload(L, g)

		tb := L.CreateTable(len(inputs), 0)
		for _, in := range inputs {
			item := L.CreateTable(0, 2)
			item.RawSetString("name", lua.LString(in.name))
			item.RawSetString("text", lua.LString(in.text))
			tb.Append(item)
		}
		L.SetGlobal("inputs", tb)

		log.Infof("Running %s over %d inputs", args[0], len(inputs))
		if err := L.DoFile(args[0]); err != nil {
			return errors.Wrapf(err, "running %s", args[0])
		}
		return nil
	},
}

func luaInit() {
	rootCmd.AddCommand(luaCmd)
}
