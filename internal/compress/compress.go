package compress

import "fmt"

// Compress encodes and decodes stored document snapshots. Name reports the
// algorithm so it can be recorded next to each snapshot and the matching
// decoder picked at read time, whatever is configured by then.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
	Name() string
}

// New creates a Compress for the configured algorithm.
func New(algorithm string) (Compress, error) {
	switch algorithm {
	case "gzip", "":
		return NewGZip(), nil
	case "lz4":
		return NewLZ4(), nil
	case "brotli":
		return NewBrotli(), nil
	case "nop":
		return NewNop(), nil
	default:
		return nil, fmt.Errorf("unknown compression algorithm: %q", algorithm)
	}
}
