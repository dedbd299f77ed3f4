package render

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCaptionFigure(t *testing.T) {
	img := solid(40, 30, color.RGBA{R: 255, A: 255})
	fig := CaptionFigure(img, "a red square")

	b := fig.Bounds()
	assert.Equal(t, 30+titleHeight+2*margin, b.Dy())
	assert.GreaterOrEqual(t, b.Dx(), 40+2*margin)

	// image is drawn below title, centered
	x0 := (b.Dx() - 40) / 2
	assert.Equal(t, color.RGBA{R: 255, A: 255}, fig.RGBAAt(x0+20, margin+titleHeight+15))

	// long title widens figure
	wide := CaptionFigure(img, "a very long caption that does not fit into forty pixels")
	assert.Greater(t, wide.Bounds().Dx(), b.Dx())
}

func TestAttentionFigure(t *testing.T) {
	tests := []struct {
		n    int
		rows int
	}{
		{n: 1, rows: 1},
		{n: 3, rows: 1},
		{n: 4, rows: 2},
		{n: 9, rows: 3},
		{n: 10, rows: 4},
	}
	for _, tc := range tests {
		tiles := make([]image.Image, tc.n)
		words := make([]string, tc.n)
		for i := range tiles {
			tiles[i] = image.NewGray(image.Rect(0, 0, 64, 48))
			words[i] = "word"
		}

		fig, err := AttentionFigure(tiles, words)
		require.NoError(t, err)
		assert.Equal(t, 3*(TileSize+2*margin), fig.Bounds().Dx())
		assert.Equal(t, tc.rows*(TileSize+titleHeight+2*margin), fig.Bounds().Dy())
	}
}

func TestAttentionFigureErrors(t *testing.T) {
	_, err := AttentionFigure(nil, nil)
	assert.Error(t, err)

	_, err = AttentionFigure([]image.Image{image.NewGray(image.Rect(0, 0, 1, 1))}, []string{"a", "b"})
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	assert.Equal(t, image.Rect(0, 25, 100, 75), fit(image.Rect(0, 0, 640, 320), 100))
	assert.Equal(t, image.Rect(25, 0, 75, 100), fit(image.Rect(10, 10, 60, 110), 100))
	assert.Equal(t, image.Rect(0, 0, 100, 100), fit(image.Rect(0, 0, 8, 8), 100))
	assert.Equal(t, image.Rect(0, 49, 100, 50), fit(image.Rect(0, 0, 1000, 1), 100))
}

func TestWriteAndLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "fig.png")
	img := solid(5, 4, color.RGBA{G: 200, A: 255})

	require.NoError(t, WritePNG(path, img))

	got, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())
	r, g, b, a := got.At(2, 2).RGBA()
	assert.Equal(t, [4]uint32{0, 200 * 0x101, 0, 0xffff}, [4]uint32{r, g, b, a})

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
