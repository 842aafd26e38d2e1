// Package yaml provides the YAML serializer.
//
// YAML suits configuration-like artifacts that humans edit or review. For
// machine-to-machine payloads prefer JSON.
package yaml

import (
	"fmt"
	"io"

	goyaml "gopkg.in/yaml.v3"
)

// Serializer implements codec.Serializer using gopkg.in/yaml.v3.
type Serializer struct{}

// NewSerializer returns the YAML serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// ContentType returns "yaml".
func (s *Serializer) ContentType() string {
	return "yaml"
}

// Encode writes v to w as a YAML document.
func (s *Serializer) Encode(w io.Writer, v any) error {
	enc := goyaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML encoder: %w", err)
	}
	return nil
}

// Decode reads a YAML document from r into the pointer v.
func (s *Serializer) Decode(r io.Reader, v any) error {
	if err := goyaml.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode YAML: %w", err)
	}
	return nil
}
