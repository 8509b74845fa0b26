package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/protolab/prototype-portal/internal/domain"
)

type fieldDecodeError struct {
	kind string
	raw  string
}

func (e fieldDecodeError) Error() string {
	return fmt.Sprintf("invalid %s value %s", e.kind, e.raw)
}

var null = []byte("null")

// textID accepts string or integer keys.
type textID string

func (t *textID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = textID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fieldDecodeError{kind: "id", raw: string(b)}
	}
	*t = textID(n.String())
	return nil
}

// number accepts JSON numbers and decimal strings, which is how the Data
// API returns NUMERIC columns.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fieldDecodeError{kind: "number", raw: string(b)}
	}
	*n = number(f)
	return nil
}

func isWhole(f float64) bool {
	return f == math.Trunc(f)
}

// list accepts a comma-joined string, a JSON array of strings or null.
type list []string

func (l *list) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return fieldDecodeError{kind: "list", raw: string(b)}
		}
		*l = compact(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fieldDecodeError{kind: "list", raw: string(b)}
	}
	*l = SplitList(s)
	return nil
}

// SplitList splits a comma-joined column into trimmed, non-empty items.
func SplitList(s string) []string {
	return compact(strings.Split(s, ","))
}

// JoinList is the inverse of SplitList. An empty list joins to "".
func JoinList(items []string) string {
	return strings.Join(compact(items), ",")
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// timestamp accepts RFC 3339 and the SQL timestamp layouts. Values without
// a zone are read as UTC.
type timestamp struct {
	time.Time
	set bool
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*t = timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fieldDecodeError{kind: "timestamp", raw: string(b)}
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = timestamp{Time: parsed, set: true}
	return nil
}

// ParseTime parses s with every supported timestamp layout.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm.UTC(), nil
		}
	}
	return time.Time{}, fieldDecodeError{kind: "timestamp", raw: strconv.Quote(s)}
}

// embedded accepts a JSON object either inline or encoded as a string.
type embedded[T any] struct {
	Value T
	set   bool
}

func (e *embedded[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*e = embedded[T]{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*e = embedded[T]{}
			return nil
		}
		b = []byte(s)
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return fieldDecodeError{kind: "object", raw: string(b)}
	}
	*e = embedded[T]{Value: v, set: true}
	return nil
}

// fields accumulates coercion failures for one row.
type fields []domain.FieldError

func (f *fields) add(field, format string, args ...any) {
	*f = append(*f, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (f *fields) rangeInt(field string, v, lo, hi int) {
	if v < lo || v > hi {
		f.add(field, "must be between %d and %d, got %d", lo, hi, v)
	}
}

func (f *fields) notEmpty(field, v string) {
	if strings.TrimSpace(v) == "" {
		f.add(field, "must not be empty")
	}
}
