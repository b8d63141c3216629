package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func shouldRunRepl(cmd *cobra.Command, args []string) bool {
	if ok, _ := cmd.Flags().GetBool("no-repl"); ok {
		return false
	}
	if ok, _ := cmd.Flags().GetBool("stdin"); ok {
		return false
	}
	if flag := cmd.Flags().Lookup("code"); flag != nil && flag.Changed {
		return false
	}
	if len(args) > 0 {
		return false
	}
	return isTerminalIO()
}

// getSource determines the expression to evaluate. There are four
// possibilities:
//  1. --code <expression>
//  2. --stdin (read from stdin; also the fallback when stdin is not a
//     terminal and no other source was given)
//  3. a path to an existing file as args[0]
//  4. the expression itself as args[0]
func getSource(cmd *cobra.Command, args []string) (source string, filename string, err error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	argSupplied := len(args) > 0
	if argSupplied && (codeFlagSet || stdinFlagSet) {
		return "", "", errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return "", "", errors.New("multiple input sources specified")
	}
	if codeFlagSet {
		value, _ := cmd.Flags().GetString("code")
		return value, "", nil
	}
	if stdinFlagSet || !argSupplied {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}
	// A single argument: a file path if one exists, otherwise the
	// expression itself.
	if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	}
	return args[0], "", nil
}

func applyColorMode() {
	if viper.GetBool("no-color") || !isTerminalIO() {
		disableColor()
	}
}
