package caption

import (
	"gonum.org/v1/gonum/floats"

	"github.com/nikolaydubina/caption.go/nn"
)

// AttentionMap is probability over image regions, indexed [row][column].
type AttentionMap [GridSize][GridSize]float64

// NewAttentionMap reshapes row major region probabilities into grid.
func NewAttentionMap(probs []float64) AttentionMap {
	var a AttentionMap
	for i, p := range probs[:NumRegions] {
		a[i/GridSize][i%GridSize] = p
	}
	return a
}

func (a AttentionMap) Sum() (sum float64) {
	for _, row := range a {
		sum += floats.Sum(row[:])
	}
	return sum
}

func (m *Model) generateAttention(regions [][]float64) Caption {
	var (
		w    = m.Weights
		h    = m.Config.HiddenDim
		e    = m.Config.EmbedDim
		s    = NewRunState(m.Config, m.Type.Cell())
		mean = make([]float64, m.Config.FeatureDim)
	)

	// initial state from mean region feature
	for _, r := range regions {
		floats.Add(mean, r)
	}
	floats.Scale(1/float64(len(regions)), mean)

	nn.Linear(s.H, w.InitH, mean, w.InitHBias)
	nn.Tanh(s.H)
	if m.Type.Cell() == CellLSTM {
		nn.Linear(s.C, w.InitC, mean, w.InitCBias)
		nn.Tanh(s.C)
	}

	// region projections do not depend on step
	for i, r := range regions {
		nn.Linear(s.Proj[i*h:(i+1)*h], w.AttFeat, r, nil)
	}

	return m.decode(s, func() AttentionMap {
		Attend(m.Config, s, w, regions)
		copy(s.X[e:], s.Context)
		return NewAttentionMap(s.Att)
	})
}

// Attend computes attention probabilities over regions for current hidden state
// into s.Att and their weighted sum of region features into s.Context.
// score_i = v · tanh(W_f f_i + W_h h + b)
func Attend(config Config, s RunState, w Weights, regions [][]float64) {
	h := config.HiddenDim

	nn.Linear(s.AttH, w.AttHidden, s.H, w.AttBias)
	for i := range regions {
		copy(s.Tmp, s.Proj[i*h:(i+1)*h])
		nn.Acc(s.Tmp, s.AttH)
		nn.Tanh(s.Tmp)
		s.Att[i] = floats.Dot(w.AttScore, s.Tmp)
	}
	nn.SoftMax(s.Att)

	clear(s.Context)
	for i, r := range regions {
		floats.AddScaled(s.Context, s.Att[i], r)
	}
}
