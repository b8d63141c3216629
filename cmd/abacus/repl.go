package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"

	"github.com/abacus-io/abacus"
)

const historyLimit = 1000

type replSession struct {
	ctx         context.Context
	logger      zerolog.Logger
	buffer      []rune
	history     []string
	historyIdx  int
	historyPath string
}

// runRepl starts an interactive read-eval-print loop on the terminal.
func runRepl(ctx context.Context, logger zerolog.Logger) error {
	history, historyPath := loadHistory()
	session := &replSession{
		ctx:         ctx,
		logger:      logger,
		history:     history,
		historyIdx:  len(history),
		historyPath: historyPath,
	}
	fmt.Printf("Abacus %s — arithmetic on a small stack machine\n", version)
	fmt.Println("Press ctrl-c or ctrl-d to exit.")
	session.prompt()
	defer session.saveHistory()
	return keyboard.Listen(session.onKey)
}

func (r *replSession) prompt() {
	fmt.Print(cyan(">>> "))
}

func (r *replSession) onKey(key keys.Key) (bool, error) {
	switch key.Code {
	case keys.CtrlC, keys.CtrlD:
		fmt.Println()
		return true, nil
	case keys.Enter:
		fmt.Println()
		line := strings.TrimSpace(string(r.buffer))
		r.buffer = r.buffer[:0]
		if line != "" {
			r.evalLine(line)
			r.history = append(r.history, line)
		}
		r.historyIdx = len(r.history)
		r.prompt()
	case keys.Backspace:
		if len(r.buffer) > 0 {
			r.buffer = r.buffer[:len(r.buffer)-1]
			fmt.Print("\b \b")
		}
	case keys.Up:
		if r.historyIdx > 0 {
			r.historyIdx--
			r.setLine(r.history[r.historyIdx])
		}
	case keys.Down:
		if r.historyIdx < len(r.history)-1 {
			r.historyIdx++
			r.setLine(r.history[r.historyIdx])
		} else {
			r.historyIdx = len(r.history)
			r.setLine("")
		}
	case keys.Space:
		r.buffer = append(r.buffer, ' ')
		fmt.Print(" ")
	case keys.RuneKey:
		r.buffer = append(r.buffer, key.Runes...)
		fmt.Print(string(key.Runes))
	}
	return false, nil
}

// setLine replaces the visible input line with the given text.
func (r *replSession) setLine(line string) {
	fmt.Print(strings.Repeat("\b \b", len(r.buffer)))
	r.buffer = []rune(line)
	fmt.Print(line)
}

func (r *replSession) evalLine(line string) {
	code, err := abacus.Compile(line)
	if err != nil {
		printError(err)
		return
	}
	r.logger.Debug().
		Str("code_id", code.ID()).
		Int("instructions", code.InstructionCount()).
		Msg("compiled")
	result, err := abacus.Run(r.ctx, code)
	if err != nil {
		if errors.Is(err, abacus.ErrNoResult) {
			return
		}
		printError(err)
		return
	}
	fmt.Println(green(strconv.FormatInt(result, 10)))
}

func loadHistory() ([]string, string) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, ""
	}
	path := filepath.Join(home, ".abacus_history")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path
	}
	var history []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			history = append(history, line)
		}
	}
	return history, path
}

func (r *replSession) saveHistory() {
	if r.historyPath == "" {
		return
	}
	history := r.history
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	contents := strings.Join(history, "\n") + "\n"
	if err := os.WriteFile(r.historyPath, []byte(contents), 0o600); err != nil {
		r.logger.Debug().Err(err).Msg("failed to save repl history")
	}
}
