// internal/jsonutil/json.go
package jsonutil

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DecodeLines decodes one JSON value of type T per line of r and passes it to
// fn. Blank lines are skipped.
func DecodeLines[T any](r io.Reader, fn func(T) error) error {
	dec := json.NewDecoder(bufio.NewReader(r))
	for n := 1; ; n++ {
		var v T
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("json record %d: %w", n, err)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}
