package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"json lowercase", "json", FormatJSON, false},
		{"json uppercase", "JSON", FormatJSON, false},
		{"table", "table", FormatTable, false},
		{"yaml", "yaml", FormatYAML, false},
		{"empty defers to caller", "", "", false},
		{"invalid", "xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatJSON, &buf)

	if err := r.Render(map[string]string{"key": "value"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, `"key"`) || !strings.Contains(got, `"value"`) {
		t.Errorf("JSON output missing expected content: %s", got)
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatYAML, &buf)

	if err := r.Render(map[string]string{"key": "value"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "key:") {
		t.Errorf("YAML output missing expected content: %s", got)
	}
}

func TestRenderTableStruct(t *testing.T) {
	type row struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, &buf)

	if err := r.Render(row{Name: "a", Count: 3}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "name:") || !strings.Contains(got, "a") {
		t.Errorf("table output missing expected content: %s", got)
	}
}

func TestRenderTableEmptySlice(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, &buf)

	if err := r.Render([]string{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "no results") {
		t.Errorf("expected a no-results message, got: %s", got)
	}
}

func TestRenderTableSliceOfStructs(t *testing.T) {
	type row struct {
		Path  string `json:"path"`
		Count int    `json:"count"`
	}
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, &buf)

	rows := []row{{Path: "/a", Count: 1}, {Path: "/b", Count: 2}}
	if err := r.Render(rows); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "/a") || !strings.Contains(got, "/b") {
		t.Errorf("table output missing rows: %s", got)
	}
}

func TestRenderUnknownFormatIsError(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(Format("bogus"), &buf)
	if err := r.Render("x"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestRenderTUIUnsupportedViewIsError(t *testing.T) {
	r := NewRendererWithWriter(FormatTable, &bytes.Buffer{})
	if err := r.RenderTUI("bogus_view", nil); err == nil {
		t.Fatal("expected an error for an unsupported tui view")
	}
}
