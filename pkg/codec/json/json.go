// Package json provides the JSON serializer.
//
// JSON is the default wire format for structured artifacts: human readable,
// universally consumable, and good enough for metadata-sized payloads.
package json

import (
	"encoding/json"
	"fmt"
	"io"
)

// Serializer implements codec.Serializer using encoding/json.
type Serializer struct{}

// NewSerializer returns the JSON serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// ContentType returns "json".
func (s *Serializer) ContentType() string {
	return "json"
}

// Encode writes v to w as a single JSON document followed by a newline.
func (s *Serializer) Encode(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Decode reads a JSON document from r into the pointer v.
func (s *Serializer) Decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
