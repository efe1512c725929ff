// Package records turns the ticker API response into a lookup by symbol.
package records

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	tracker "github.com/malusev998/cryptocurrency-tracker"
)

// Parse decodes body as an array of objects whose values are strings or null.
func Parse(body string) ([]tracker.RawRecord, error) {
	if !utf8.ValidString(body) {
		return nil, parseError(fmt.Errorf("invalid UTF-8"))
	}

	if !gjson.Valid(body) {
		return nil, parseError(fmt.Errorf("invalid JSON"))
	}

	result := gjson.Parse(body)

	if !result.IsArray() {
		return nil, parseError(fmt.Errorf("expected an array, got %s", describe(result)))
	}

	items := result.Array()
	raws := make([]tracker.RawRecord, 0, len(items))

	for i, item := range items {
		if !item.IsObject() {
			return nil, parseError(fmt.Errorf("record %d: expected an object, got %s", i, describe(item)))
		}

		raw, err := parseRecord(item)

		if err != nil {
			return nil, parseError(fmt.Errorf("record %d: %w", i, err))
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

func parseRecord(item gjson.Result) (tracker.RawRecord, error) {
	var err error

	raw := make(tracker.RawRecord, 0, 16)

	item.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
			raw = append(raw, tracker.Field{Name: key.String()})
		case gjson.String:
			str := value.String()
			raw = append(raw, tracker.Field{Name: key.String(), Value: &str})
		default:
			err = fmt.Errorf("field %q: expected a string or null, got %s", key.String(), describe(value))
			return false
		}

		return true
	})

	return raw, err
}

// Normalize fills absent values with tracker.NotFound and indexes the records
// by symbol. Later records replace earlier ones with the same symbol.
func Normalize(raws []tracker.RawRecord) (tracker.RecordIndex, error) {
	index := make(tracker.RecordIndex, len(raws))

	for i, raw := range raws {
		if !raw.Has(tracker.SymbolField) {
			return nil, tracker.NewError(
				tracker.ParseError,
				"unable to index API response",
				fmt.Errorf("record %d has no %q field", i, tracker.SymbolField),
			)
		}

		record := raw.Normalize()
		index[record[tracker.SymbolField]] = record
	}

	return index, nil
}

func Index(body string) (tracker.RecordIndex, error) {
	raws, err := Parse(body)

	if err != nil {
		return nil, err
	}

	return Normalize(raws)
}

func parseError(err error) error {
	return tracker.NewError(tracker.ParseError, "unable to parse API response", err)
}

func describe(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "boolean"
	}

	return strings.ToLower(r.Type.String())
}
