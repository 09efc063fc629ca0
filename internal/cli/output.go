package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/pkg/errors"
)

var (
	errNoFix       = errors.New("no coordinates given, use --lat and --lng")
	errNotSignedIn = errors.New("not signed in")
)

// emit writes v as indented JSON when --json is set, otherwise calls text.
func (a *app) emit(w io.Writer, v any, text func(io.Writer)) error {
	if !a.jsonOutput {
		text(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMessage(w io.Writer, message string) {
	fmt.Fprintln(w, message)
}

// printError prints the user-facing message and any field errors in name order.
func printError(w io.Writer, err error) {
	e := apierr.From(err)
	fmt.Fprintf(w, "Error: %s\n", e.Message)
	for _, field := range slices.Sorted(maps.Keys(e.FieldErrors)) {
		fmt.Fprintf(w, "  %s: %s\n", field, e.FieldErrors[field])
	}
}

// field prints an aligned label/value line, skipping empty values.
func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%-18s %s\n", label+":", value)
}
