package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Item is one unit of batch work. Input fields are kept verbatim so keys the
// pipeline does not know about survive the round trip; results are written
// to the typed Output fields and merged over the input on marshal.
type Item struct {
	Fields map[string]json.RawMessage
	Output
}

// Output holds every result field a transform may set.
type Output struct {
	Success    *bool             `json:"success,omitempty"`
	Status     string            `json:"status,omitempty"`
	Error      string            `json:"error,omitempty"`
	OutputPath string            `json:"output_path,omitempty"`
	SlideCount *int              `json:"slide_count,omitempty"`
	Data       *ExtractionResult `json:"data,omitempty"`

	AudioOutputStatus string `json:"audio_output_status,omitempty"`
	AudioOutputFile   string `json:"audio_output_file,omitempty"`
	AudioOutputError  string `json:"audio_output_error,omitempty"`
}

// Audio output statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewItem builds an Item from plain Go values, mostly for tests and the CLI.
func NewItem(fields map[string]any) (Item, error) {
	it := Item{Fields: make(map[string]json.RawMessage, len(fields))}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return Item{}, fmt.Errorf("field %s: %w", k, err)
		}
		it.Fields[k] = raw
	}
	return it, nil
}

// Clone returns a copy that shares no mutable state with it.
func (it Item) Clone() Item {
	out := Item{Fields: make(map[string]json.RawMessage, len(it.Fields)), Output: it.Output}
	for k, v := range it.Fields {
		out.Fields[k] = append(json.RawMessage(nil), v...)
	}
	if it.Success != nil {
		b := *it.Success
		out.Success = &b
	}
	if it.SlideCount != nil {
		n := *it.SlideCount
		out.SlideCount = &n
	}
	return out
}

// Has reports whether key is present and not null.
func (it Item) Has(key string) bool {
	raw, ok := it.Fields[key]
	return ok && !isNull(raw)
}

// String returns the field as text. Numbers and booleans are rendered the
// way they appear in the input; a missing or null field yields def.
func (it Item) String(key, def string) (string, error) {
	raw, ok := it.Fields[key]
	if !ok || isNull(raw) {
		return def, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return "", fmt.Errorf("%w: %s must be a scalar", ErrInvalidRequest, key)
	}
	return string(trimmed), nil
}

// Float returns the field as a number. Numeric strings are accepted.
func (it Item) Float(key string, def float64) (float64, error) {
	raw, ok := it.Fields[key]
	if !ok || isNull(raw) {
		return def, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be a number, got %s", ErrInvalidRequest, key, raw)
}

// Int returns the field as a whole number.
func (it Item) Int(key string, def int) (int, error) {
	f, err := it.Float(key, float64(def))
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidRequest, key, f)
	}
	return int(f), nil
}

func (it *Item) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: item must be a JSON object: %v", ErrInvalidRequest, err)
	}
	it.Fields = fields
	it.Output = Output{}
	return nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	merged := make(map[string]json.RawMessage, len(it.Fields)+4)
	for k, v := range it.Fields {
		merged[k] = v
	}

	out, err := encodeNoEscape(it.Output)
	if err != nil {
		return nil, err
	}
	results := map[string]json.RawMessage{}
	if err := json.Unmarshal(out, &results); err != nil {
		return nil, err
	}
	for k, v := range results {
		merged[k] = v
	}

	return encodeNoEscape(merged)
}

// encodeNoEscape marshals v without HTML escaping so text taken from
// documents is written back as it was read.
func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return UnescapeLineSeparators(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
