package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/abacus-io/abacus/errz"
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func disableColor() {
	color.NoColor = true
}

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case error:
		s = errorText(msg)
	case string:
		s = msg
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", red(errorText(err)))
}

// errorText prefers the friendly multi-line rendering with source context
// when the error provides one.
func errorText(err error) string {
	if friendly, ok := err.(errz.FriendlyError); ok {
		return friendly.FriendlyErrorMessage()
	}
	return err.Error()
}

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}
