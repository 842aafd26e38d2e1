// Package codec defines the serializer capability carried by a store
// configuration.
//
// A serializer is an opaque value↔byte-stream codec. The core file-store
// contract does not depend on it beyond carrying the reference; higher
// layers use it to persist structured values through the streaming
// read/write contract.
package codec

import "io"

// Serializer encodes values to and decodes values from byte streams.
//
// Implementations must be safe for concurrent use. The zero-context
// signatures are deliberate: serialization is pure CPU work over an already
// open stream, and cancellation belongs to the operation that owns the
// stream.
type Serializer interface {
	// ContentType returns a short identifier for the wire format, e.g.
	// "json", "yaml", "xdr". Used for diagnostics and artifact tagging.
	ContentType() string

	// Encode writes the serialized form of v to w.
	Encode(w io.Writer, v any) error

	// Decode reads a serialized value from r into the pointer v.
	Decode(r io.Reader, v any) error
}
