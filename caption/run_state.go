package caption

type RunState struct {
	// current wave of activations
	H      []float64 // (hidden_dim,) hidden state
	C      []float64 // (hidden_dim,) LSTM memory cell
	X      []float64 // (input_dim,) cell input at current step
	Z      []float64 // (gates * hidden_dim,) gate pre-activations from input
	ZH     []float64 // (gates * hidden_dim,) gate pre-activations from hidden state
	Logits []float64 // (vocab_size,) output logits

	// attention buffers, nil for plain models
	Proj    []float64 // (num_regions, hidden_dim) region features projected once per image
	AttH    []float64 // (hidden_dim,) hidden state projected at current step
	Tmp     []float64 // (hidden_dim,) an additional buffer just for convenience
	Att     []float64 // (num_regions,) scores/attention probabilities
	Context []float64 // (feature_dim,) attention weighted sum of region features
}

func NewRunState(config Config, cell CellType) RunState {
	g := cell.Gates()
	s := RunState{
		H:      make([]float64, config.HiddenDim),
		C:      make([]float64, config.HiddenDim),
		X:      make([]float64, config.InputDim()),
		Z:      make([]float64, g*config.HiddenDim),
		ZH:     make([]float64, g*config.HiddenDim),
		Logits: make([]float64, config.VocabSize),
	}
	if config.IsAttention() {
		s.Proj = make([]float64, config.NumRegions*config.HiddenDim)
		s.AttH = make([]float64, config.HiddenDim)
		s.Tmp = make([]float64, config.HiddenDim)
		s.Att = make([]float64, config.NumRegions)
		s.Context = make([]float64, config.FeatureDim)
	}
	return s
}
