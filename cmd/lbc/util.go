package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"

	"github.com/deepnoodle-ai/lbc/bytecode"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var outputFormatsCompletion = []string{"json", "text"}

func (a *app) getOutputJSON(result any) ([]byte, error) {
	if color.NoColor {
		return json.MarshalIndent(result, "", "  ")
	}
	return prettyjson.Marshal(result)
}

func (a *app) writeJSON(result any) error {
	data, err := a.getOutputJSON(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}

// readInput reads a file, or stdin when path is "-".
func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(path)
}

// readChunk decodes a chunk without validating its instructions.
func (a *app) readChunk(path string) (*bytecode.Chunk, error) {
	data, err := a.readInput(path)
	if err != nil {
		return nil, err
	}
	chunk, err := bytecode.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Uint8("version", chunk.Version()).
		Msg("decoded chunk")
	return chunk, nil
}

func checkFormat(format string, allowed ...string) (string, error) {
	format = strings.ToLower(format)
	for _, f := range allowed {
		if format == f {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %s (expected %s)", format, strings.Join(allowed, ", "))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
