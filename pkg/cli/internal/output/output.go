// Package output provides common output formatting utilities.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ohler55/ojg/jp"
)

// JSON writes indented JSON to w.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// JSONPath writes the values a JSONPath expression selects from v, one per
// line. Strings are written bare; other values as compact JSON.
func JSONPath(w io.Writer, v interface{}, path string) error {
	expr, err := jp.ParseString(path)
	if err != nil {
		return fmt.Errorf("invalid jsonpath %q: %w", path, err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	for _, result := range expr.Get(data) {
		if s, ok := result.(string); ok {
			fmt.Fprintln(w, s)
			continue
		}
		line, err := json.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(line))
	}
	return nil
}

// Table creates an aligned table writer for w.
// Remember to call Flush() when done writing.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Row writes one tab-separated table row.
func Row(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

// Warn prints a warning message to w.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}
