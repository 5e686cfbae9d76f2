package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"000000", RGB{0, 0, 0}, false},
		{"ff0000", RGB{255, 0, 0}, false},
		{"#1e88e5", RGB{0x1e, 0x88, 0xe5}, false},
		{"1E88E5", RGB{0x1e, 0x88, 0xe5}, false},
		{"  #abcdef ", RGB{0xab, 0xcd, 0xef}, false},
		{"12345", RGB{}, true},
		{"1234567", RGB{}, true},
		{"", RGB{}, true},
		{"#", RGB{}, true},
		{"##123456", RGB{}, true},
		{"12345z", RGB{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColorFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "1e88e5", RGB{0x1e, 0x88, 0xe5}.Hex())
	assert.Equal(t, "000000", RGB{}.Hex())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"png"}, r.Available())
	assert.Equal(t, "encoders: png", r.String())

	enc, err := r.Get("png")
	require.NoError(t, err)
	assert.Equal(t, "png", enc.Format())
	assert.Equal(t, "png", enc.Extension())

	for _, f := range []string{"jpg", "jpeg", "webp", "PNG", ""} {
		_, err := r.Get(f)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "format %q", f)
	}
}
