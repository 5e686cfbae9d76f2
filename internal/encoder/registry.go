package encoder

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps output format names to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry holding every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{&PNGEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns the encoder for format. Matching is exact: "PNG" and "jpg"
// are both rejected with ErrUnsupportedFormat.
func (r *Registry) Get(format string) (Encoder, error) {
	enc, ok := r.encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, format, strings.Join(r.Available(), ", "))
	}
	return enc, nil
}

// Available returns all registered format names, sorted.
func (r *Registry) Available() []string {
	result := make([]string, 0, len(r.encoders))
	for f := range r.encoders {
		result = append(result, f)
	}
	sort.Strings(result)
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Available(), ", "))
}
