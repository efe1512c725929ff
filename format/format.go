// Package format renders ticker records through templates such as
// "{symbol}: {price_usd:>12.2}".
//
// A placeholder is {field} or {field:spec}, where spec is
// [[fill]align][width][.precision] and align is one of '<', '>' or '^'.
// Precision rounds values that are decimal numbers and truncates any other
// text. Literal braces are written as {{ and }}.
package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	tracker "github.com/malusev998/cryptocurrency-tracker"
)

type (
	Align rune

	Spec struct {
		Fill      rune
		Align     Align
		Width     int
		Precision int
	}

	segment struct {
		literal string
		field   string
		spec    Spec
	}

	Template struct {
		source   string
		segments []segment
	}
)

const (
	AlignLeft   Align = '<'
	AlignRight  Align = '>'
	AlignCenter Align = '^'

	noPrecision = -1

	// MaxSpecNumber bounds width and precision.
	MaxSpecNumber = 4096
)

var (
	ErrInvalidKey     = errors.New("invalid key")
	ErrUnmatchedOpen  = errors.New("unmatched '{'")
	ErrUnmatchedClose = errors.New("unmatched '}'")
	ErrEmptyField     = errors.New("empty placeholder")
	ErrInvalidSpec    = errors.New("invalid format spec")
)

func Parse(template string) (*Template, error) {
	segments, err := parse(template)

	if err != nil {
		return nil, tracker.NewError(tracker.FormatError, "unable to parse format", err)
	}

	return &Template{source: template, segments: segments}, nil
}

// Format parses template and executes it against record in one step.
func Format(template string, record tracker.Record) (string, error) {
	t, err := Parse(template)

	if err != nil {
		return "", err
	}

	return t.Execute(record)
}

func (t *Template) String() string {
	return t.source
}

// Fields returns the field names referenced by the template, in order.
func (t *Template) Fields() []string {
	fields := make([]string, 0, len(t.segments))

	for _, s := range t.segments {
		if s.field != "" {
			fields = append(fields, s.field)
		}
	}

	return fields
}

func (t *Template) Execute(record tracker.Record) (string, error) {
	var builder strings.Builder

	for _, s := range t.segments {
		if s.field == "" {
			builder.WriteString(s.literal)
			continue
		}

		value, ok := record[s.field]

		if !ok {
			return "", tracker.NewError(
				tracker.FormatError,
				"unable to format value",
				fmt.Errorf("%w: %s", ErrInvalidKey, s.field),
			)
		}

		builder.WriteString(s.spec.Apply(value))
	}

	return builder.String(), nil
}

func parse(template string) ([]segment, error) {
	var literal strings.Builder

	segments := make([]segment, 0, 8)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(template); i++ {
		c := template[i]

		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal.WriteByte('{')
				i++
				continue
			}

			end := strings.IndexAny(template[i+1:], "{}")

			if end == -1 || template[i+1+end] != '}' {
				return nil, fmt.Errorf("%w at position %d", ErrUnmatchedOpen, i)
			}

			placeholder, err := parsePlaceholder(template[i+1 : i+1+end])

			if err != nil {
				return nil, err
			}

			flush()
			segments = append(segments, placeholder)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal.WriteByte('}')
				i++
				continue
			}

			return nil, fmt.Errorf("%w at position %d", ErrUnmatchedClose, i)
		default:
			literal.WriteByte(c)
		}
	}

	flush()

	return segments, nil
}

func parsePlaceholder(content string) (segment, error) {
	field, rawSpec := content, ""

	if idx := strings.IndexByte(content, ':'); idx != -1 {
		field, rawSpec = content[:idx], content[idx+1:]
	}

	if field == "" {
		return segment{}, ErrEmptyField
	}

	spec, err := ParseSpec(rawSpec)

	if err != nil {
		return segment{}, err
	}

	return segment{field: field, spec: spec}, nil
}

func ParseSpec(raw string) (Spec, error) {
	spec := Spec{Fill: ' ', Align: AlignLeft, Precision: noPrecision}
	runes := []rune(raw)
	i := 0

	switch {
	case len(runes) >= 2 && isAlign(runes[1]):
		spec.Fill, spec.Align = runes[0], Align(runes[1])
		i = 2
	case len(runes) >= 1 && isAlign(runes[0]):
		spec.Align = Align(runes[0])
		i = 1
	}

	var ok bool

	if spec.Width, i, ok = readNumber(runes, i); !ok {
		return Spec{}, fmt.Errorf("%w %q: width exceeds %d", ErrInvalidSpec, raw, MaxSpecNumber)
	}

	if i < len(runes) && runes[i] == '.' {
		start := i + 1

		if spec.Precision, i, ok = readNumber(runes, start); !ok {
			return Spec{}, fmt.Errorf("%w %q: precision exceeds %d", ErrInvalidSpec, raw, MaxSpecNumber)
		}

		if i == start {
			return Spec{}, fmt.Errorf("%w %q", ErrInvalidSpec, raw)
		}
	}

	if i != len(runes) {
		return Spec{}, fmt.Errorf("%w %q", ErrInvalidSpec, raw)
	}

	return spec, nil
}

// Apply renders value according to the spec.
func (s Spec) Apply(value string) string {
	if s.Precision != noPrecision {
		value = s.round(value)
	}

	padding := s.Width - utf8.RuneCountInString(value)

	if padding <= 0 {
		return value
	}

	fill := string(s.Fill)

	switch s.Align {
	case AlignRight:
		return strings.Repeat(fill, padding) + value
	case AlignCenter:
		left := padding / 2
		return strings.Repeat(fill, left) + value + strings.Repeat(fill, padding-left)
	}

	return value + strings.Repeat(fill, padding)
}

func (s Spec) round(value string) string {
	if d, err := decimal.NewFromString(value); err == nil {
		return d.StringFixed(int32(s.Precision))
	}

	runes := []rune(value)

	if len(runes) <= s.Precision {
		return value
	}

	return string(runes[:s.Precision])
}

func isAlign(r rune) bool {
	return r == rune(AlignLeft) || r == rune(AlignRight) || r == rune(AlignCenter)
}

func readNumber(runes []rune, i int) (int, int, bool) {
	n := 0

	for ; i < len(runes) && runes[i] >= '0' && runes[i] <= '9'; i++ {
		n = n*10 + int(runes[i]-'0')

		if n > MaxSpecNumber {
			return 0, i, false
		}
	}

	return n, i, true
}
