package main

import (
	"fmt"
	"strings"

	"github.com/hokaccha/go-prettyjson"
)

// getOutput renders an evaluation result in the requested format. The
// default is plain text.
func getOutput(result int64, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return fmt.Sprintf("%d", result), nil
	case "json":
		output, err := prettyjson.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(output), nil
	default:
		return "", fmt.Errorf("unknown output format: %q", format)
	}
}
