package fixture

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/pngfixture/internal/encoder"
	"github.com/AnyUserName/pngfixture/internal/hasher"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RedTwoByTwo(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	res, err := Generate(encoder.NewRegistry(), Request{
		Out: "out.png", Width: 2, Height: 2, Color: "ff0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, "ff0000", res.Color)

	data, err := os.ReadFile(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), res.Size)
	assert.Equal(t, hasher.ContentHash(data, hasher.FixtureHexLen), res.Hash)

	// IHDR payload starts after signature (8) + length (4) + type (4).
	assert.Equal(t, byte(8), data[24], "bit depth")
	assert.Equal(t, byte(2), data[25], "color type")

	img, err := imaging.Open(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())
	nrgba := imaging.Clone(img)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, color.NRGBA{255, 0, 0, 255}, nrgba.NRGBAAt(x, y))
		}
	}
}

func TestGenerate_CreatesParentDirsAndOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "c", "fixture.png")
	reg := encoder.NewRegistry()

	first, err := Generate(reg, Request{Out: out, Width: 64, Height: 64})
	require.NoError(t, err)
	assert.Equal(t, "000000", first.Color)

	second, err := Generate(reg, Request{Out: out, Width: 1, Height: 1, Color: "#FFFFFF"})
	require.NoError(t, err)
	assert.Equal(t, "ffffff", second.Color)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, second.Size, info.Size())
	assert.NotEqual(t, first.Hash, second.Hash)
}

func TestGenerate_ValidationLeavesNoFiles(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"bad color", Request{Width: 1, Height: 1, Color: "12345"}, encoder.ErrInvalidColorFormat},
		{"zero width", Request{Width: 0, Height: 1}, encoder.ErrInvalidDimensions},
		{"negative height", Request{Width: 1, Height: -4}, encoder.ErrInvalidDimensions},
		{"jpg", Request{Width: 1, Height: 1, Format: "jpg"}, encoder.ErrUnsupportedFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested")
			tc.req.Out = filepath.Join(dir, "x.png")

			_, err := Generate(encoder.NewRegistry(), tc.req)
			assert.ErrorIs(t, err, tc.want)

			_, statErr := os.Stat(dir)
			assert.True(t, os.IsNotExist(statErr), "directory should not be created")
		})
	}
}

func TestGenerate_MissingOut(t *testing.T) {
	_, err := Generate(encoder.NewRegistry(), Request{Width: 1, Height: 1})
	assert.Error(t, err)
}

func TestGenerate_IOError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// Parent path is a regular file, so directory creation must fail.
	_, err := Generate(encoder.NewRegistry(), Request{
		Out: filepath.Join(blocker, "out.png"), Width: 1, Height: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create dir")
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
