package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"aa-triangle-renderer/internal/raster"
)

// ErrFormat reports input that is not a supported P6 stream.
var ErrFormat = errors.New("ppm: invalid format")

// MaxRasterBytes bounds the raster a header may declare (W*H*3).
const MaxRasterBytes = 1 << 28

func init() {
	image.RegisterFormat("ppm", Magic, Decode, DecodeConfig)
}

type header struct {
	width, height, maxval int
}

// readHeader parses the magic number and three decimal fields, skipping
// whitespace and '#' comments, and consumes the single whitespace byte
// that precedes the raster.
func readHeader(br *bufio.Reader) (header, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return header{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if string(magic) != Magic {
		return header{}, fmt.Errorf("%w: magic %q", ErrFormat, magic)
	}

	var fields [3]int
	for i := range fields {
		n, err := readInt(br)
		if err != nil {
			return header{}, err
		}
		fields[i] = n
	}
	h := header{width: fields[0], height: fields[1], maxval: fields[2]}
	if h.width <= 0 || h.height <= 0 {
		return header{}, fmt.Errorf("%w: size %dx%d", ErrFormat, h.width, h.height)
	}
	if h.width > MaxRasterBytes/3/h.height {
		return header{}, fmt.Errorf("%w: size %dx%d exceeds %d bytes", ErrFormat, h.width, h.height, MaxRasterBytes)
	}
	if h.maxval <= 0 || h.maxval > 255 {
		return header{}, fmt.Errorf("%w: maxval %d", ErrFormat, h.maxval)
	}

	sep, err := br.ReadByte()
	if err != nil || !isSpace(sep) {
		return header{}, fmt.Errorf("%w: missing raster separator", ErrFormat)
	}
	return h, nil
}

func readInt(br *bufio.Reader) (int, error) {
	var digits []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(digits) > 0 {
				break
			}
			return 0, fmt.Errorf("%w: truncated header", ErrFormat)
		}
		switch {
		case b == '#' && len(digits) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return 0, fmt.Errorf("%w: truncated comment", ErrFormat)
			}
		case isSpace(b):
			if len(digits) > 0 {
				if err := br.UnreadByte(); err != nil {
					return 0, err
				}
				return parseField(digits)
			}
		case b >= '0' && b <= '9':
			digits = append(digits, b)
		default:
			return 0, fmt.Errorf("%w: unexpected byte %q in header", ErrFormat, b)
		}
	}
	return parseField(digits)
}

func parseField(digits []byte) (int, error) {
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, fmt.Errorf("%w: header field %s: %w", ErrFormat, digits, err)
	}
	return n, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// DecodeBuffer reads a P6 stream into a FrameBuffer. Samples with a maxval
// below 255 are rescaled to the full 8-bit range.
func DecodeBuffer(r io.Reader) (*raster.FrameBuffer, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	fb := raster.NewFrameBuffer(h.width, h.height)
	if _, err := io.ReadFull(br, fb.Pix); err != nil {
		return nil, fmt.Errorf("%w: raster: %w", ErrFormat, err)
	}
	if h.maxval != 255 {
		for i, v := range fb.Pix {
			if int(v) > h.maxval {
				return nil, fmt.Errorf("%w: sample %d exceeds maxval %d", ErrFormat, v, h.maxval)
			}
			fb.Pix[i] = uint8((int(v)*255 + h.maxval/2) / h.maxval)
		}
	}
	return fb, nil
}

// Decode reads a P6 stream as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	fb, err := DecodeBuffer(r)
	if err != nil {
		return nil, err
	}
	return fb.ToNRGBA(), nil
}

// DecodeConfig returns the dimensions of a P6 stream without reading the raster.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}
