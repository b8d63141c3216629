package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abacus-io/abacus"
	"github.com/abacus-io/abacus/bytecode"
	"github.com/abacus-io/abacus/dis"
	"github.com/abacus-io/abacus/vm"
)

func rootHandler(cmd *cobra.Command, args []string) error {
	applyColorMode()
	ctx := cmd.Context()
	logger := newLogger()

	if shouldRunRepl(cmd, args) {
		return runRepl(ctx, logger)
	}

	// Multiple file arguments evaluate independently; every failure is
	// reported and the exit status is non-zero if any failed.
	if len(args) > 1 {
		return evalFiles(ctx, cmd, logger, args)
	}

	source, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	result, err := evaluate(ctx, cmd, logger, source, filename)
	if err != nil {
		if errors.Is(err, abacus.ErrNoResult) {
			return nil
		}
		return err
	}
	format, _ := cmd.Flags().GetString("output")
	output, err := getOutput(result, format)
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

func evalFiles(ctx context.Context, cmd *cobra.Command, logger zerolog.Logger, paths []string) error {
	var failures *multierror.Error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			printError(err)
			failures = multierror.Append(failures, err)
			continue
		}
		result, err := evaluate(ctx, cmd, logger, string(data), path)
		if err != nil {
			if errors.Is(err, abacus.ErrNoResult) {
				continue
			}
			printError(err)
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", path, err))
			continue
		}
		fmt.Printf("%s: %d\n", path, result)
	}
	if failures.ErrorOrNil() != nil {
		return fmt.Errorf("%d of %d files failed", failures.Len(), len(paths))
	}
	return nil
}

// evaluate runs the full pipeline for one expression: compile, optionally
// validate, optionally print the instruction listing, then execute.
func evaluate(ctx context.Context, cmd *cobra.Command, logger zerolog.Logger, source, filename string) (int64, error) {
	var opts []abacus.Option
	if filename != "" {
		opts = append(opts, abacus.WithFilename(filename))
	}

	code, err := abacus.Compile(source, opts...)
	if err != nil {
		return 0, err
	}
	logger.Debug().
		Str("code_id", code.ID()).
		Int("instructions", code.InstructionCount()).
		Msg("compiled")

	if ok, _ := cmd.Flags().GetBool("validate"); ok {
		if err := bytecode.Validate(code); err != nil {
			return 0, err
		}
		logger.Debug().Str("code_id", code.ID()).Msg("validated")
	}
	if ok, _ := cmd.Flags().GetBool("instructions"); ok {
		fmt.Println(dis.Sprint(code))
	}
	if ok, _ := cmd.Flags().GetBool("trace"); ok {
		opts = append(opts, abacus.WithObserver(traceObserver(os.Stderr)))
	}
	return abacus.Run(ctx, code, opts...)
}

// traceObserver prints one line per executed instruction.
func traceObserver(w io.Writer) vm.Observer {
	return vm.ObserverFunc(func(event vm.StepEvent) bool {
		fmt.Fprintln(w, faint(formatStep(event)))
		return true
	})
}

func formatStep(event vm.StepEvent) string {
	name := event.OpcodeName
	if event.Opcode.IsBinaryOp() {
		return fmt.Sprintf("%4d  %-4s  (depth %d)", event.IP, name, event.StackDepth)
	}
	return fmt.Sprintf("%4d  %-4s %d  (depth %d)", event.IP, name, event.Arg, event.StackDepth)
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
