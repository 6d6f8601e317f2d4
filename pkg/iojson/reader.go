package iojson

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoInput is returned when no path is given and stdin is a terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); pass a file path or pipe input")

// StdinName is the display name used for piped input.
const StdinName = "<stdin>"

// ReadSource reads the file at path. An empty path or "-" reads stdin,
// which must not be a terminal. The returned name is path or StdinName.
func ReadSource(path string) ([]byte, string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, fmt.Errorf("read %s: %w", path, err)
		}
		return data, path, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, StdinName, ErrNoInput
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, StdinName, fmt.Errorf("read stdin: %w", err)
	}
	return data, StdinName, nil
}
