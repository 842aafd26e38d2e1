// Package xdr provides the XDR serializer (RFC 4506).
//
// XDR is a compact fixed-layout binary format. It fits artifacts exchanged
// with systems that already speak XDR; it does not support maps or
// arbitrary interface values.
package xdr

import (
	"fmt"
	"io"

	goxdr "github.com/rasky/go-xdr/xdr2"
)

// Serializer implements codec.Serializer using XDR encoding.
type Serializer struct{}

// NewSerializer returns the XDR serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// ContentType returns "xdr".
func (s *Serializer) ContentType() string {
	return "xdr"
}

// Encode writes the XDR form of v to w.
func (s *Serializer) Encode(w io.Writer, v any) error {
	if _, err := goxdr.Marshal(w, v); err != nil {
		return fmt.Errorf("failed to encode XDR: %w", err)
	}
	return nil
}

// Decode reads an XDR value from r into the pointer v.
func (s *Serializer) Decode(r io.Reader, v any) error {
	if _, err := goxdr.Unmarshal(r, v); err != nil {
		return fmt.Errorf("failed to decode XDR: %w", err)
	}
	return nil
}
