package main

import (
	"encoding/json"
	"io"
)

// emitJSON writes v as indented JSON, for the --json flag on commands that
// also have a table form.
func emitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
