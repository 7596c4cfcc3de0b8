package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	assert.NoError(t, p.ValidateImage(encodeJPEG(t, 10, 10)))
	assert.NoError(t, p.ValidateImage(encodePNG(t, 10, 10)))
	assert.Error(t, p.ValidateImage([]byte("not an image")))
}

func TestValidateImage_SizeLimit(t *testing.T) {
	p := NewImageProcessor()
	p.MaxSize = 16

	assert.Error(t, p.ValidateImage(encodeJPEG(t, 10, 10)))
}

func TestProcessCover_Variants(t *testing.T) {
	p := NewImageProcessor()

	variants, err := p.ProcessCover(encodeJPEG(t, 1600, 1200))
	require.NoError(t, err)

	require.Contains(t, variants, "original")
	require.Contains(t, variants, "thumbnail")

	original, _, err := image.Decode(bytes.NewReader(variants["original"]))
	require.NoError(t, err)
	assert.LessOrEqual(t, original.Bounds().Dx(), 800)
	assert.LessOrEqual(t, original.Bounds().Dy(), 800)

	thumb, _, err := image.Decode(bytes.NewReader(variants["thumbnail"]))
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), 200)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), 200)
}

func TestProcessCover_RejectsGarbage(t *testing.T) {
	p := NewImageProcessor()

	_, err := p.ProcessCover([]byte("garbage"))
	assert.Error(t, err)
}
