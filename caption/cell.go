package caption

import (
	"math"

	"github.com/nikolaydubina/caption.go/nn"
)

// Step advances recurrent state s by one step with input s.X.
func Step(cell CellType, config Config, s RunState, w Weights) {
	if cell == CellGRU {
		stepGRU(config.HiddenDim, s, w)
		return
	}
	stepLSTM(config.HiddenDim, s, w)
}

// LSTM: gates stacked as input, forget, output, candidate
func stepLSTM(h int, s RunState, w Weights) {
	nn.Linear(s.Z, w.W, s.X, w.B)
	nn.Linear(s.ZH, w.U, s.H, nil)
	nn.Acc(s.Z, s.ZH)

	i, f, o, g := s.Z[:h], s.Z[h:2*h], s.Z[2*h:3*h], s.Z[3*h:4*h]
	nn.Sigmoid(i)
	nn.Sigmoid(f)
	nn.Sigmoid(o)
	nn.Tanh(g)

	for k := 0; k < h; k++ {
		s.C[k] = f[k]*s.C[k] + i[k]*g[k]
		s.H[k] = o[k] * math.Tanh(s.C[k])
	}
}

// GRU: gates stacked as reset, update, candidate.
// Reset gate is applied to hidden contribution of candidate after matmul.
func stepGRU(h int, s RunState, w Weights) {
	nn.Linear(s.Z, w.W, s.X, w.B)
	nn.Linear(s.ZH, w.U, s.H, nil)

	r, z, n := s.Z[:h], s.Z[h:2*h], s.Z[2*h:3*h]
	rh, zh, nh := s.ZH[:h], s.ZH[h:2*h], s.ZH[2*h:3*h]

	nn.Acc(r, rh)
	nn.Acc(z, zh)
	nn.Sigmoid(r)
	nn.Sigmoid(z)

	for k := 0; k < h; k++ {
		n[k] = math.Tanh(n[k] + r[k]*nh[k])
		s.H[k] = (1-z[k])*n[k] + z[k]*s.H[k]
	}
}
