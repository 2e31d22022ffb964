package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// wantJSON reports whether output should be JSON: when requested, or when
// stdout is not a terminal.
func wantJSON(forced bool, w io.Writer) bool {
	if forced {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
