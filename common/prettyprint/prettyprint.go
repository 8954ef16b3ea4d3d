// Package prettyprint provides helpers for rendering chain objects in
// a human readable form.
package prettyprint

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrinter is an interface for types that know how to pretty
// print themselves (e.g., to be displayed in a CLI).
type PrettyPrinter interface {
	// PrettyPrint writes a pretty-printed representation of the type
	// to the given writer.
	PrettyPrint(prefix string, w io.Writer)
}

// JSON writes the indented JSON form of v to the given writer, with
// every line prefixed. Marshalling failures render as an error note
// instead of failing the print.
func JSON(prefix string, w io.Writer, v interface{}) {
	raw, err := json.MarshalIndent(v, prefix, "  ")
	if err != nil {
		fmt.Fprintf(w, "%s<error: %v>\n", prefix, err)
		return
	}
	fmt.Fprintf(w, "%s%s\n", prefix, raw)
}

// Field writes a single "name: value" line to the given writer.
func Field(prefix string, w io.Writer, name string, value interface{}) {
	fmt.Fprintf(w, "%s%s: %v\n", prefix, name, value)
}
