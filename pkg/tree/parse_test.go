package tree

import (
	"testing"

	"github.com/matzehuels/treeview/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"ascii", FormatASCII, false},
		{" ASCII ", FormatASCII, false},
		{"json", FormatJSON, false},
		{"Json", FormatJSON, false},
		{"yaml", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	if FormatAuto.String() != "auto" {
		t.Errorf("FormatAuto.String() = %q, want auto", FormatAuto.String())
	}
	if FormatJSON.String() != "json" {
		t.Errorf("FormatJSON.String() = %q, want json", FormatJSON.String())
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Format
	}{
		{"JSONArray", `[{"name":"a"}]`, FormatJSON},
		{"LeadingWhitespace", "\n\t  [ ]", FormatJSON},
		{"JSONObject", `{"name":"a"}`, FormatASCII},
		{"Drawing", sampleTree, FormatASCII},
		{"Empty", "", FormatASCII},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.source); got != tt.want {
				t.Errorf("Detect = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		format    Format
		wantRoots int
		wantCode  errors.Code
	}{
		{"AutoASCII", sampleTree, FormatAuto, 1, ""},
		{"AutoJSON", `[{"name":"a"},{"name":"b"}]`, FormatAuto, 2, ""},
		{"AutoMalformedJSON", `[{"name":`, FormatAuto, 0, errors.ErrCodeInvalidSyntax},
		{"ExplicitJSONNoFallback", sampleTree, FormatJSON, 0, errors.ErrCodeInvalidSyntax},
		{"ExplicitJSONShape", `{"name":"a"}`, FormatJSON, 0, errors.ErrCodeInvalidShape},
		{"ExplicitASCIIOnJSONText", `[{"name":"a"}]`, FormatASCII, 1, ""},
		{"UnknownFormat", sampleTree, Format("xml"), 0, errors.ErrCodeInvalidFormat},
		{"Empty", "", FormatAuto, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest, err := Parse(tt.source, tt.format)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Parse error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(forest) != tt.wantRoots {
				t.Errorf("roots = %d, want %d", len(forest), tt.wantRoots)
			}
		})
	}
}
