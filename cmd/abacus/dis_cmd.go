package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abacus-io/abacus"
	"github.com/abacus-io/abacus/dis"
)

var disCmd = &cobra.Command{
	Use:   "dis [expression | file]",
	Short: "Disassemble compiled instructions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyColorMode()
		source, filename, err := getSource(cmd, args)
		if err != nil {
			return err
		}
		var opts []abacus.Option
		if filename != "" {
			opts = append(opts, abacus.WithFilename(filename))
		}
		code, err := abacus.Compile(source, opts...)
		if err != nil {
			return err
		}
		instructions, err := dis.Disassemble(code)
		if err != nil {
			return err
		}
		fmt.Printf("code id: %s\n", faint(code.ID()))
		return dis.Print(instructions, os.Stdout)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := disCmd.Flags()
	flags.StringP("code", "c", "", "Expression to disassemble")
	flags.Bool("stdin", false, "Read the expression from stdin")
}
