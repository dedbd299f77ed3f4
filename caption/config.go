package caption

import (
	"errors"
	"fmt"
	"path/filepath"
)

const (
	GridSize   = 8                   // attention grid is GridSize x GridSize image regions
	NumRegions = GridSize * GridSize // regions per image for attention models
)

var ErrInvalidModelType = errors.New("invalid model type")

type ModelType string

const (
	LSTM          ModelType = "LSTM"
	LSTMAttention ModelType = "LSTM_attention"
	GRU           ModelType = "GRU"
	GRUAttention  ModelType = "GRU_attention"
)

// ModelTypes in the order they are listed in usage messages.
var ModelTypes = []ModelType{LSTM, LSTMAttention, GRU, GRUAttention}

func ParseModelType(s string) (ModelType, error) {
	for _, t := range ModelTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidModelType, s)
}

func (t ModelType) IsAttention() bool { return t == LSTMAttention || t == GRUAttention }

func (t ModelType) Cell() CellType {
	if t == GRU || t == GRUAttention {
		return CellGRU
	}
	return CellLSTM
}

// CheckpointPath is where the best model of this type is stored under root.
func (t ModelType) CheckpointPath(root string) string {
	dir := map[ModelType]string{
		LSTM:          "LSTMs",
		GRU:           "GRUs",
		LSTMAttention: "LSTMs_attention",
		GRUAttention:  "GRUs_attention",
	}[t]
	return filepath.Join(root, "models", dir, "best_model", "model")
}

type CellType int

const (
	CellLSTM CellType = iota
	CellGRU
)

// Gates is number of stacked gate blocks in cell weight matrices.
func (c CellType) Gates() int {
	if c == CellGRU {
		return 3 // reset, update, candidate
	}
	return 4 // input, forget, output, candidate
}

func (c CellType) String() string {
	if c == CellGRU {
		return "GRU"
	}
	return "LSTM"
}

type Config struct {
	VocabSize        int
	EmbedDim         int // word embedding dimension
	HiddenDim        int // recurrent state dimension
	FeatureDim       int // image feature vector, or per region feature for attention models
	NumRegions       int // 0 for plain models, NumRegions for attention models
	MaxCaptionLength int // max number of generated words
}

func (c Config) IsAttention() bool { return c.NumRegions > 0 }

// InputDim is size of recurrent cell input at every step.
// Attention models feed word embedding concatenated with attended context.
func (c Config) InputDim() int {
	if c.IsAttention() {
		return c.EmbedDim + c.FeatureDim
	}
	return c.EmbedDim
}

// Validate checks config is usable for model type t.
func (c Config) Validate(t ModelType) error {
	if c.VocabSize <= 0 || c.EmbedDim <= 0 || c.HiddenDim <= 0 || c.FeatureDim <= 0 || c.MaxCaptionLength <= 0 {
		return fmt.Errorf("non positive dimension in config %+v", c)
	}
	if t.IsAttention() && c.NumRegions != NumRegions {
		return fmt.Errorf("model %s expects %d regions, checkpoint has %d", t, NumRegions, c.NumRegions)
	}
	if !t.IsAttention() && c.NumRegions != 0 {
		return fmt.Errorf("model %s expects no regions, checkpoint has %d", t, c.NumRegions)
	}
	return nil
}
