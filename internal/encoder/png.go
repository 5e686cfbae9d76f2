package encoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

// IHDR field values. Only 8-bit truecolor without interlacing is produced.
const (
	bitDepth        = 8
	ctTrueColor     = 2
	compressionZlib = 0
	filterAdaptive  = 0
	interlaceNone   = 0

	ftNone = 0
)

// PNGEncoder writes solid-color truecolor PNGs with a single IDAT chunk.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(img Image) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	idat, err := scanlines(img)
	if err != nil {
		return nil, fmt.Errorf("deflate scanlines: %w", err)
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(img.Width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(img.Height))
	ihdr[8] = bitDepth
	ihdr[9] = ctTrueColor
	ihdr[10] = compressionZlib
	ihdr[11] = filterAdaptive
	ihdr[12] = interlaceNone

	var buf bytes.Buffer
	buf.Grow(len(pngSignature) + 3*12 + len(ihdr) + len(idat))
	buf.WriteString(pngSignature)
	writeChunk(&buf, "IHDR", ihdr[:])
	writeChunk(&buf, "IDAT", idat)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes(), nil
}

// EncodePNG parses color and encodes a width x height solid PNG.
func EncodePNG(width, height int, color string) ([]byte, error) {
	fill, err := ParseColor(color)
	if err != nil {
		return nil, err
	}
	return (&PNGEncoder{}).Encode(Image{Width: width, Height: height, Fill: fill})
}

// scanlines deflates height rows of filter byte 0 followed by width RGB triples.
// Rows are identical, so one row is built and fed to the compressor repeatedly.
func scanlines(img Image) ([]byte, error) {
	row := make([]byte, 1+3*img.Width)
	row[0] = ftNone
	for i := 1; i < len(row); i += 3 {
		row[i] = img.Fill.R
		row[i+1] = img.Fill.G
		row[i+2] = img.Fill.B
	}

	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	for y := 0; y < img.Height; y++ {
		if _, err := zw.Write(row); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeChunk appends length, type, payload and CRC-32 of type+payload.
func writeChunk(buf *bytes.Buffer, name string, data []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], name)

	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(data)

	buf.Write(header[:])
	buf.Write(data)
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())
	buf.Write(footer[:])
}
