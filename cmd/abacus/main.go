// Command abacus compiles arithmetic expressions to stack-machine
// instructions and runs them.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "abacus [expression | file ...]",
	Short:   "Evaluate arithmetic expressions on a small stack machine",
	Version: version,
	Args:    cobra.ArbitraryArgs,
	RunE:    rootHandler,
	// Errors are rendered by main, with friendly formatting where available
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pflags := rootCmd.PersistentFlags()
	pflags.BoolP("verbose", "v", false, "Enable verbose logging")
	pflags.Bool("no-color", false, "Disable colored output")

	flags := rootCmd.Flags()
	flags.StringP("code", "c", "", "Expression to evaluate")
	flags.Bool("stdin", false, "Read the expression from stdin")
	flags.Bool("instructions", false, "Print the instruction listing before the result")
	flags.Bool("trace", false, "Trace each executed instruction to stderr")
	flags.Bool("validate", false, "Check the instructions statically before running")
	flags.Bool("no-repl", false, "Disable the REPL")
	flags.StringP("output", "o", "", "Output format (json or text)")

	viper.SetEnvPrefix("abacus")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflags); err != nil {
		fatal(err)
	}

	rootCmd.AddCommand(disCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
