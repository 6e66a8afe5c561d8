package directory

import (
	"errors"
	"fmt"
	"io"

	"github.com/valyala/fasttemplate"
)

var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// expand replaces every {name} in tmpl with values[name]. A placeholder
// without a value is an error, never an empty substitution.
func expand(tmpl string, values map[string]string) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(tmpl, "{", "}", func(w io.Writer, tag string) (int, error) {
		v, ok := values[tag]
		if !ok {
			return 0, fmt.Errorf("%w {%s}", ErrUnknownPlaceholder, tag)
		}
		return w.Write([]byte(v))
	})
}

// render fills tmpl from a normalized record.
func render(tmpl string, rec Record) (string, error) {
	out, err := fasttemplate.ExecuteFuncStringWithErr(tmpl, "{", "}", func(w io.Writer, tag string) (int, error) {
		v, ok := rec[tag]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingField, tag)
		}
		return w.Write([]byte(stringify(v)))
	})
	if err != nil {
		return "", fmt.Errorf("directory: render: %w", err)
	}
	return out, nil
}
