package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func Acc(a, b []float64) { floats.Add(a, b) }

// SoftMax normalizes x in place into probabilities
func SoftMax(x []float64) {
	// find max for numerical stability
	max := floats.Max(x)
	// exp and sum
	var sum float64
	for i := range x {
		x[i] = math.Exp(x[i] - max)
		sum += x[i]
	}
	// normalize
	floats.Scale(1/sum, x)
}

func Sigmoid(x []float64) {
	for i, v := range x {
		x[i] = 1 / (1 + math.Exp(-v))
	}
}

func Tanh(x []float64) {
	for i, v := range x {
		x[i] = math.Tanh(v)
	}
}

// Linear: W (d,n) @ x (n,) + b (d,) -> xout (d,)
// b may be nil.
func Linear(xout []float64, w *mat.Dense, x []float64, b []float64) {
	out := mat.NewVecDense(len(xout), xout)
	out.MulVec(w, mat.NewVecDense(len(x), x))
	if b != nil {
		floats.Add(xout, b)
	}
}

// ArgMax returns the first index of the maximum value
func ArgMax(v []float64) int { return floats.MaxIdx(v) }
