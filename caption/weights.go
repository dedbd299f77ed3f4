package caption

import "gonum.org/v1/gonum/mat"

type Weights struct {
	Embedding *mat.Dense // (vocab_size, embed_dim)

	// plain models: image is projected into first decoder input

	ImgProj     *mat.Dense // (embed_dim, feature_dim)
	ImgProjBias []float64  // (embed_dim,)

	// attention models: initial state from mean region feature

	InitH     *mat.Dense // (hidden_dim, feature_dim)
	InitHBias []float64  // (hidden_dim,)
	InitC     *mat.Dense // (hidden_dim, feature_dim) LSTM only
	InitCBias []float64  // (hidden_dim,) LSTM only

	// attention models: additive attention over regions

	AttFeat   *mat.Dense // (hidden_dim, feature_dim)
	AttHidden *mat.Dense // (hidden_dim, hidden_dim)
	AttBias   []float64  // (hidden_dim,)
	AttScore  []float64  // (hidden_dim,)

	// recurrent cell, gate blocks stacked along rows

	W *mat.Dense // (gates * hidden_dim, input_dim)
	U *mat.Dense // (gates * hidden_dim, hidden_dim)
	B []float64  // (gates * hidden_dim,)

	// classifier into logits

	Out     *mat.Dense // (vocab_size, hidden_dim)
	OutBias []float64  // (vocab_size,)
}

// NewWeights allocates every tensor of model, filling values with init.
// Values are zero if init is nil.
func NewWeights(config Config, cell CellType, init func() float64) Weights {
	var w Weights
	for _, t := range w.layout(config, cell) {
		data := make([]float64, t.rows*t.cols)
		if init != nil {
			for i := range data {
				data[i] = init()
			}
		}
		if t.vec != nil {
			*t.vec = data
		} else {
			*t.dense = mat.NewDense(t.rows, t.cols, data)
		}
	}
	return w
}

type tensor struct {
	name       string
	dense      **mat.Dense
	vec        *[]float64
	rows, cols int
}

// layout is order of tensors in checkpoint file
func (w *Weights) layout(config Config, cell CellType) []tensor {
	var (
		v = config.VocabSize
		e = config.EmbedDim
		h = config.HiddenDim
		f = config.FeatureDim
		g = cell.Gates()
	)

	mtx := func(name string, d **mat.Dense, rows, cols int) tensor {
		return tensor{name: name, dense: d, rows: rows, cols: cols}
	}
	vec := func(name string, x *[]float64, n int) tensor {
		return tensor{name: name, vec: x, rows: 1, cols: n}
	}

	ts := []tensor{mtx("embedding", &w.Embedding, v, e)}

	if config.IsAttention() {
		ts = append(ts,
			mtx("init_h", &w.InitH, h, f),
			vec("init_h_bias", &w.InitHBias, h),
		)
		if cell == CellLSTM {
			ts = append(ts,
				mtx("init_c", &w.InitC, h, f),
				vec("init_c_bias", &w.InitCBias, h),
			)
		}
		ts = append(ts,
			mtx("att_feat", &w.AttFeat, h, f),
			mtx("att_hidden", &w.AttHidden, h, h),
			vec("att_bias", &w.AttBias, h),
			vec("att_score", &w.AttScore, h),
		)
	} else {
		ts = append(ts,
			mtx("img_proj", &w.ImgProj, e, f),
			vec("img_proj_bias", &w.ImgProjBias, e),
		)
	}

	return append(ts,
		mtx("cell_w", &w.W, g*h, config.InputDim()),
		mtx("cell_u", &w.U, g*h, h),
		vec("cell_b", &w.B, g*h),
		mtx("out", &w.Out, v, h),
		vec("out_bias", &w.OutBias, v),
	)
}
