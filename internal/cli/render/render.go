// Package render provides output formatting for peekapi-spillctl.
//
// Format selection:
//   - If stdout is a TTY, default to table
//   - If stdout is not a TTY, default to json
//   - --format always overrides the default
//   - An unrecognized --format value is an error
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/peekapi-dev/sdk-go/internal/cli/tui"
)

// Format is a supported output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a --format value. An empty string defers the choice
// to the caller (TTY-dependent default).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	case "yaml":
		return FormatYAML, nil
	case "":
		return "", nil
	default:
		return "", fmt.Errorf("invalid format: %q (must be json, table, or yaml)", s)
	}
}

// Renderer writes command output in the selected format.
type Renderer struct {
	format Format
	out    io.Writer
}

// NewRenderer builds a Renderer from the command's flags, applying the
// TTY-dependent default when --format was not given.
func NewRenderer(c *cli.Context) (*Renderer, error) {
	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}
	if format == "" {
		if isTTY(os.Stdout) {
			format = FormatTable
		} else {
			format = FormatJSON
		}
	}
	return &Renderer{format: format, out: os.Stdout}, nil
}

// NewRendererWithWriter builds a Renderer against an explicit writer, for
// tests.
func NewRendererWithWriter(format Format, out io.Writer) *Renderer {
	return &Renderer{format: format, out: out}
}

// Render writes data in the renderer's configured format.
func (r *Renderer) Render(data any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		return enc.Encode(data)
	case FormatTable:
		return r.renderTable(data)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// RenderTUI launches the interactive pager over data. viewType selects
// which tui model handles it.
func (r *Renderer) RenderTUI(viewType string, data any) error {
	if !tui.IsSupported(viewType) {
		return fmt.Errorf("--tui is not supported for %s", viewType)
	}
	return tui.Run(viewType, data)
}

// column pairs a rendered field name with its formatted value. Both the
// one-row (single struct) and many-row (slice of structs) table layouts
// walk a value's fields exactly once through fieldColumns and differ only
// in whether the pairs go out as a "name:\tvalue" block or get transposed
// into a header row plus one row per element.
type column struct {
	name  string
	value string
}

func (r *Renderer) renderTable(data any) error {
	v := reflect.ValueOf(data)
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if v.Kind() == reflect.Slice {
		return r.renderRows(w, v)
	}
	return r.renderColumns(w, v)
}

func (r *Renderer) renderRows(w *tabwriter.Writer, v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Fprintln(r.out, "(no results)")
		return nil
	}

	cols := r.fieldColumns(v.Index(0))
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.name
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for i := 0; i < v.Len(); i++ {
		cols := r.fieldColumns(v.Index(i))
		values := make([]string, len(cols))
		for j, c := range cols {
			values[j] = c.value
		}
		fmt.Fprintln(w, strings.Join(values, "\t"))
	}
	return nil
}

func (r *Renderer) renderColumns(w *tabwriter.Writer, v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		for _, c := range r.fieldColumns(v) {
			fmt.Fprintf(w, "%s:\t%s\n", c.name, c.value)
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			fmt.Fprintf(w, "%v:\t%s\n", iter.Key().Interface(), r.formatValue(iter.Value()))
		}
	default:
		fmt.Fprintf(w, "%v\n", v.Interface())
	}
	return nil
}

// fieldColumns walks a struct's fields once, pairing each rendered name
// with its formatted value. v may be a pointer to a struct; anything else
// yields no columns.
func (r *Renderer) fieldColumns(v reflect.Value) []column {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	cols := make([]column, v.NumField())
	for i := range cols {
		cols[i] = column{name: fieldName(t.Field(i)), value: r.formatValue(v.Field(i))}
	}
	return cols
}

func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		name := strings.Split(tag, ",")[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func (r *Renderer) formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	case reflect.Struct:
		if v.Type().String() == "time.Time" {
			return fmt.Sprintf("%v", v.Interface())
		}
		return "{...}"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
