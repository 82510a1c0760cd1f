// Package render turns evaluation results into text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/stage"
)

// Format selects the output representation.
type Format string

const (
	// FormatText renders collection literals such as [10, 20] or {3=[Dog, Cat]}.
	FormatText Format = "text"
	// FormatJSON renders {"kind": ..., "value": ...} objects.
	FormatJSON Format = "json"
)

// Absent is the text rendering of a missing scalar.
const Absent = "<absent>"

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.InvalidConfig(fmt.Sprintf("unknown output format %q", s))
}

// Render writes r to w in format f. No trailing newline is written.
func Render(w io.Writer, f Format, r stage.Result) error {
	var out string
	switch f {
	case FormatText:
		out = Text(r)
	case FormatJSON:
		var err error
		if out, err = JSON(r); err != nil {
			return err
		}
	default:
		return errors.InvalidConfig(fmt.Sprintf("unknown output format %q", f))
	}
	_, err := io.WriteString(w, out)
	return err
}

// Text renders r as a collection literal. A ForEach result renders as the
// empty string.
func Text(r stage.Result) string {
	switch r.Kind {
	case stage.ResultSequence, stage.ResultSet:
		return list(r.Items)
	case stage.ResultScalar:
		if !r.Present {
			return Absent
		}
		return value(r.Value)
	case stage.ResultMapping:
		var b strings.Builder
		b.WriteByte('{')
		for i, e := range r.Entries() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(value(e.Key))
			b.WriteByte('=')
			b.WriteString(list(e.Values))
		}
		b.WriteByte('}')
		return b.String()
	}
	return ""
}

func list(items []any) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = value(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// value renders one element. Slices and arrays nest as lists; entries render
// as key=[values].
func value(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case stage.Entry:
		return value(x.Key) + "=" + list(x.Values)
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return list(items)
	}
	return fmt.Sprint(v)
}

type jsonResult struct {
	Kind    string `json:"kind"`
	Value   any    `json:"value,omitempty"`
	Present *bool  `json:"present,omitempty"`
}

type jsonEntry struct {
	Key    any   `json:"key"`
	Values []any `json:"values"`
}

// JSON renders r as a single-line JSON object. Mappings become an ordered
// list of {"key", "values"} objects because keys need not be strings.
func JSON(r stage.Result) (string, error) {
	out := jsonResult{Kind: r.Kind.String()}
	switch r.Kind {
	case stage.ResultSequence, stage.ResultSet:
		out.Value = r.Items
	case stage.ResultScalar:
		present := r.Present
		out.Present = &present
		out.Value = r.Value
	case stage.ResultMapping:
		entries := make([]jsonEntry, 0, len(r.Keys))
		for _, e := range r.Entries() {
			entries = append(entries, jsonEntry{Key: e.Key, Values: e.Values})
		}
		out.Value = entries
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding %s result: %w", r.Kind, err)
	}
	return string(data), nil
}
