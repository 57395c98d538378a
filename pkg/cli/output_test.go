package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type summary struct {
	Library string `json:"library" yaml:"library"`
	Files   int    `json:"files" yaml:"files"`
}

func (s summary) Text(styles *Styles) string {
	return styles.Title.Render(s.Library) + ": " + styles.Muted.Render("files")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"string", "test message", "test message\n"},
		{"trailing newline kept", "line\n", "line\n"},
		{"texter", summary{Library: "AxisLib"}, "AxisLib: files\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{}
			output, err := formatter.Format(tt.data)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(output) != tt.want {
				t.Errorf("Format() = %q, want %q", output, tt.want)
			}

			var buf bytes.Buffer
			if err := formatter.FormatTo(&buf, tt.data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	data := summary{Library: "AxisLib", Files: 3}

	for _, indent := range []bool{false, true} {
		formatter := &JSONFormatter{Indent: indent}
		output, err := formatter.Format(data)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if indent != strings.Contains(string(output), "\n") {
			t.Errorf("indent=%v output = %s", indent, output)
		}

		var got summary
		if err := json.Unmarshal(output, &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got != data {
			t.Errorf("decoded %+v, want %+v", got, data)
		}
	}
}

func TestYAMLFormatter(t *testing.T) {
	data := summary{Library: "AxisLib", Files: 3}

	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if !strings.Contains(buf.String(), "library: AxisLib") {
		t.Errorf("output = %q", buf.String())
	}

	var got summary
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if got != data {
		t.Errorf("decoded %+v, want %+v", got, data)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatYAML, "*cli.YAMLFormatter"},
		{"unknown", "*cli.TextFormatter"},
	}
	for _, tt := range tests {
		got := typeName(NewFormatter(tt.format, nil))
		if got != tt.want {
			t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestStyles_PlainOutput(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})
	if got := styles.Severity("error"); got != "error" {
		t.Errorf("Severity(error) = %q, want plain text for a non-terminal writer", got)
	}
	if got := PlainStyles().Severity("warning"); got != "warning" {
		t.Errorf("Severity(warning) = %q", got)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextFormatter:
		return "*cli.TextFormatter"
	case *JSONFormatter:
		return "*cli.JSONFormatter"
	case *YAMLFormatter:
		return "*cli.YAMLFormatter"
	default:
		return "unknown"
	}
}
