package directory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	isoLayout   = "2006-01-02T15:04:05Z"
	shortLayout = "02/01/2006"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidDate  = errors.New("invalid date")
)

var (
	projectDateFields  = []string{"start_date", "invoice_date"}
	employeeDateFields = []string{"contract_start_date"}
)

// Record is a directory entry as returned by TIAMP.
type Record map[string]any

func decodeRecord(body []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("directory: decode response: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("directory: decode response: empty object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("directory: decode response: trailing data after JSON object")
	}
	return rec, nil
}

// normalize replaces null values with "" and reformats the given date fields.
// A date field absent from the record is an error.
func (r Record) normalize(dateFields []string) error {
	for k, v := range r {
		if v == nil {
			r[k] = ""
		}
	}
	for _, field := range dateFields {
		raw, ok := r[field]
		if !ok {
			return fmt.Errorf("directory: %w %q", ErrMissingField, field)
		}
		short, err := ToShortDate(raw)
		if err != nil {
			return fmt.Errorf("directory: field %q: %w", field, err)
		}
		r[field] = short
	}
	return nil
}

// ToShortDate turns "YYYY-MM-DDTHH:MM:SSZ" into "DD/MM/YYYY". nil and the
// empty string give "".
func ToShortDate(value any) (string, error) {
	if value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %v is not a string", ErrInvalidDate, value)
	}
	if s == "" {
		return "", nil
	}
	// time.Parse tolerates fractional seconds the layout does not name.
	t, err := time.Parse(isoLayout, s)
	if err != nil || t.Format(isoLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.Format(shortLayout), nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
