package caption

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var Endian = binary.LittleEndian

// binary reader expects exact binary size for int
type header struct {
	VocabSize        int32
	EmbedDim         int32
	HiddenDim        int32
	FeatureDim       int32
	NumRegions       int32
	MaxCaptionLength int32
}

func NewConfigFromCheckpoint(r io.Reader) (Config, error) {
	var h header
	if err := binary.Read(r, Endian, &h); err != nil {
		return Config{}, errors.Wrap(err, "read header")
	}
	return Config{
		VocabSize:        int(h.VocabSize),
		EmbedDim:         int(h.EmbedDim),
		HiddenDim:        int(h.HiddenDim),
		FeatureDim:       int(h.FeatureDim),
		NumRegions:       int(h.NumRegions),
		MaxCaptionLength: int(h.MaxCaptionLength),
	}, nil
}

// NewWeightsFromCheckpoint reads weights that follow the header.
// Values are stored as float32 in the order given by Weights.layout.
func NewWeightsFromCheckpoint(config Config, cell CellType, r io.Reader) (Weights, error) {
	var w Weights
	for _, t := range w.layout(config, cell) {
		buf := make([]float32, t.rows*t.cols)
		if err := binary.Read(r, Endian, buf); err != nil {
			return Weights{}, errors.Wrapf(err, "read %s (%d, %d)", t.name, t.rows, t.cols)
		}
		data := make([]float64, len(buf))
		for i, v := range buf {
			data[i] = float64(v)
		}
		if t.vec != nil {
			*t.vec = data
		} else {
			*t.dense = mat.NewDense(t.rows, t.cols, data)
		}
	}
	return w, nil
}

// WriteCheckpoint writes header and weights in the layout NewConfigFromCheckpoint
// and NewWeightsFromCheckpoint read.
func WriteCheckpoint(out io.Writer, config Config, cell CellType, w Weights) error {
	h := header{
		VocabSize:        int32(config.VocabSize),
		EmbedDim:         int32(config.EmbedDim),
		HiddenDim:        int32(config.HiddenDim),
		FeatureDim:       int32(config.FeatureDim),
		NumRegions:       int32(config.NumRegions),
		MaxCaptionLength: int32(config.MaxCaptionLength),
	}
	if err := binary.Write(out, Endian, h); err != nil {
		return errors.Wrap(err, "write header")
	}

	for _, t := range w.layout(config, cell) {
		buf := make([]float32, 0, t.rows*t.cols)
		if t.vec != nil {
			if len(*t.vec) != t.rows*t.cols {
				return errors.Errorf("%s has %d values, expected %d", t.name, len(*t.vec), t.rows*t.cols)
			}
			for _, v := range *t.vec {
				buf = append(buf, float32(v))
			}
		} else {
			d := *t.dense
			if d == nil {
				return errors.Errorf("%s is missing", t.name)
			}
			if r, c := d.Dims(); r != t.rows || c != t.cols {
				return errors.Errorf("%s has shape (%d, %d), expected (%d, %d)", t.name, r, c, t.rows, t.cols)
			}
			for i := 0; i < t.rows; i++ {
				for _, v := range d.RawRowView(i) {
					buf = append(buf, float32(v))
				}
			}
		}
		if err := binary.Write(out, Endian, buf); err != nil {
			return errors.Wrapf(err, "write %s", t.name)
		}
	}
	return nil
}
