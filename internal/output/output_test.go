package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"aa-triangle-renderer/internal/ppm"
	"aa-triangle-renderer/internal/raster"
)

func sampleBuffer() *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(8, 6)
	fb.Set(3, 2, raster.RGB{255, 128, 0})
	fb.Set(7, 5, raster.RGB{10, 20, 30})
	return fb
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"output", PPM},
		{"out/image.ppm", PPM},
		{"image.PNG", PNG},
		{"image.webp", WebP},
		{"image.tga", TGA},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFor("image.gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeDecodable(t *testing.T) {
	fb := sampleBuffer()
	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PPM:  func(r *bytes.Reader) (image.Image, error) { return ppm.Decode(r) },
		PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		WebP: func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) },
		TGA:  func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) },
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, fb))

			img, err := decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, 8, img.Bounds().Dx())
			assert.Equal(t, 6, img.Bounds().Dy())

			c := color.NRGBAModel.Convert(img.At(img.Bounds().Min.X+3, img.Bounds().Min.Y+2)).(color.NRGBA)
			assert.Equal(t, color.NRGBA{255, 128, 0, 255}, c)
		})
	}
}

func TestEncodeUnknown(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, Format("bmp"), sampleBuffer()), ErrUnknownFormat)
}

func TestWriteCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a/output", "b/c/image.png", "image.webp", "image.tga"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Write(path, sampleBuffer()), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	data, err := os.ReadFile(filepath.Join(dir, "a/output"))
	require.NoError(t, err)
	assert.Equal(t, ppm.Size(8, 6), len(data))
}

func TestWriteErrorNamesPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	for _, path := range []string{
		filepath.Join(blocker, "image.png"),
		filepath.Join(blocker, "sub", "output"),
	} {
		err := Write(path, sampleBuffer())
		require.Error(t, err, path)
		assert.Contains(t, err.Error(), path)
	}
}
