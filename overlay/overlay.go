// Package overlay turns coarse attention grids into images aligned with source image.
//
// Image is split into caption.GridSize x caption.GridSize equal blocks using
// integer division, remainder rows and columns at bottom and right get zero
// attention. Each block is filled with its probability without interpolation,
// then blended with grayscale copy of image.
package overlay

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"

	"github.com/nikolaydubina/caption.go/caption"
)

const (
	AttentionWeight = 0.97
	GrayWeight      = 0.03
	GridColumns     = 3 // tiles per row in attention figure
)

// GridRows is number of rows of GridColumns wide figure with n tiles.
func GridRows(n int) int { return (n + GridColumns - 1) / GridColumns }

// Grayscale is luminance of img in [0,1] as (height, width) matrix.
func Grayscale(img image.Image) *mat.Dense {
	b := img.Bounds()
	g := mat.NewDense(b.Dy(), b.Dx(), nil)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, gr, bl, _ := img.At(x, y).RGBA()
			v := 0.2125*float64(r) + 0.7154*float64(gr) + 0.0721*float64(bl)
			g.Set(y-b.Min.Y, x-b.Min.X, v/0xffff)
		}
	}
	return g
}

// Attention broadcasts probabilities of grid over (height, width) matrix.
func Attention(probs caption.AttentionMap, height, width int) *mat.Dense {
	att := mat.NewDense(height, width, nil)
	bh, bw := height/caption.GridSize, width/caption.GridSize
	if bh == 0 || bw == 0 {
		return att
	}
	for i := 0; i < caption.GridSize; i++ {
		for j := 0; j < caption.GridSize; j++ {
			for y := i * bh; y < (i+1)*bh; y++ {
				row := att.RawRowView(y)
				for x := j * bw; x < (j+1)*bw; x++ {
					row[x] = probs[i][j]
				}
			}
		}
	}
	return att
}

// Blend mixes attention of probs with gray image, same shape as gray.
func Blend(probs caption.AttentionMap, gray *mat.Dense) *mat.Dense {
	h, w := gray.Dims()

	var out, g mat.Dense
	out.Scale(AttentionWeight, Attention(probs, h, w))
	g.Scale(GrayWeight, gray)
	out.Add(&out, &g)
	return &out
}

// Image renders m with intensity stretched from its min to its max value.
func Image(m *mat.Dense) *image.Gray {
	h, w := m.Dims()
	img := image.NewGray(image.Rect(0, 0, w, h))

	lo, hi := mat.Min(m), mat.Max(m)
	if hi == lo {
		return img
	}

	for y := 0; y < h; y++ {
		for x, v := range m.RawRowView(y) {
			img.SetGray(x, y, color.Gray{Y: uint8((v-lo)/(hi-lo)*255 + 0.5)})
		}
	}
	return img
}
