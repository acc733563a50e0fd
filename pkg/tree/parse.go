package tree

import (
	"strings"

	"github.com/matzehuels/treeview/pkg/errors"
)

// Format selects the parser used for a source.
type Format string

const (
	// FormatAuto sniffs the source: JSON when it starts with "[", ASCII otherwise.
	FormatAuto  Format = ""
	FormatASCII Format = "ascii"
	FormatJSON  Format = "json"
)

// ParseFormat converts user input into a Format. Matching is case-insensitive
// and surrounding whitespace is ignored; "" and "auto" select FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case string(FormatASCII):
		return FormatASCII, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return FormatAuto, errors.New(errors.ErrCodeInvalidFormat, "invalid tree format: %q (must be 'ascii' or 'json')", s)
	}
}

// String returns the format name, "auto" for FormatAuto.
func (f Format) String() string {
	if f == FormatAuto {
		return "auto"
	}
	return string(f)
}

// Detect returns the format Parse would pick for source under FormatAuto.
// It is a heuristic, not a validator.
func Detect(source string) Format {
	if strings.HasPrefix(strings.TrimSpace(source), "[") {
		return FormatJSON
	}
	return FormatASCII
}

// Parse converts source into a forest using the given format.
//
// An explicit FormatASCII or FormatJSON always runs that parser and surfaces
// its error without falling back. FormatAuto picks a parser with [Detect] and
// leaves malformed input to that parser's own error handling.
func Parse(source string, format Format) ([]*Node, error) {
	if format == FormatAuto {
		format = Detect(source)
	}

	switch format {
	case FormatASCII:
		return ParseASCII(source), nil
	case FormatJSON:
		return ParseJSON(source)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid tree format: %q", string(format))
	}
}
