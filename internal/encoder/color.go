package encoder

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseColor parses "rrggbb" or "#rrggbb" (either case) into an RGB value.
func ParseColor(s string) (RGB, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(cleaned) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	b, err := hex.DecodeString(cleaned)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}
