// Package render draws captioned image and attention figures.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nikolaydubina/caption.go/overlay"
)

const (
	TileSize    = 224 // longer side of image in attention figure tile
	titleHeight = 18
	margin      = 6
)

var face = basicfont.Face7x13

// CaptionFigure is img with title above it.
func CaptionFigure(img image.Image, title string) *image.RGBA {
	b := img.Bounds()
	width := max(b.Dx(), font.MeasureString(face, title).Ceil()) + 2*margin
	fig := image.NewRGBA(image.Rect(0, 0, width, b.Dy()+titleHeight+2*margin))
	draw.Draw(fig, fig.Bounds(), image.White, image.Point{}, draw.Src)

	drawTitle(fig, title, 0, width, margin)

	x0 := (width - b.Dx()) / 2
	draw.Draw(fig, image.Rect(x0, margin+titleHeight, x0+b.Dx(), margin+titleHeight+b.Dy()), img, b.Min, draw.Src)
	return fig
}

// AttentionFigure puts tiles titled by words into grid of overlay.GridColumns columns.
func AttentionFigure(tiles []image.Image, words []string) (*image.RGBA, error) {
	if len(tiles) != len(words) {
		return nil, fmt.Errorf("%d tiles for %d words", len(tiles), len(words))
	}
	if len(tiles) == 0 {
		return nil, errors.New("no tiles")
	}

	var (
		rows  = overlay.GridRows(len(tiles))
		cellW = TileSize + 2*margin
		cellH = TileSize + titleHeight + 2*margin
	)
	fig := image.NewRGBA(image.Rect(0, 0, overlay.GridColumns*cellW, rows*cellH))
	draw.Draw(fig, fig.Bounds(), image.White, image.Point{}, draw.Src)

	for i, tile := range tiles {
		x0, y0 := (i%overlay.GridColumns)*cellW, (i/overlay.GridColumns)*cellH
		drawTitle(fig, words[i], x0, cellW, y0+margin)

		// blocks stay sharp
		dst := fit(tile.Bounds(), TileSize).Add(image.Pt(x0+margin, y0+margin+titleHeight))
		xdraw.NearestNeighbor.Scale(fig, dst, tile, tile.Bounds(), draw.Src, nil)
	}
	return fig, nil
}

// fit scales r to have longer side size, centered in size x size square at origin.
func fit(r image.Rectangle, size int) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	x0, y0 := (size-w)/2, (size-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// drawTitle centers s horizontally in [x0, x0+width) with top at y.
func drawTitle(dst draw.Image, s string, x0, width, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
	}
	x := x0 + (width-d.MeasureString(s).Ceil())/2
	d.Dot = fixed.P(max(x, x0), y+face.Ascent)
	d.DrawString(s)
}

func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
