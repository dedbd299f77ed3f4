package caption

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/nikolaydubina/caption.go/nn"
)

// Features is image input of a model.
type Features struct {
	Vector  []float64   // (feature_dim,) plain models
	Regions [][]float64 // (num_regions, feature_dim) attention models, row major over grid
}

// Caption is generated sequence of words.
// Attention has one map per word and is empty for plain models.
type Caption struct {
	Words     []string
	Attention []AttentionMap
}

func (c Caption) String() string { return strings.Join(c.Words, " ") }

type Model struct {
	Type    ModelType
	Config  Config
	Weights Weights
	Vocab   *Vocabulary
}

func NewModelFromCheckpoint(t ModelType, r io.Reader, vocab *Vocabulary) (*Model, error) {
	config, err := NewConfigFromCheckpoint(r)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(t); err != nil {
		return nil, err
	}
	if vocab.Len() != config.VocabSize {
		return nil, fmt.Errorf("vocabulary has %d words, model expects %d", vocab.Len(), config.VocabSize)
	}

	w, err := NewWeightsFromCheckpoint(config, t.Cell(), r)
	if err != nil {
		return nil, err
	}

	return &Model{
		Type:    t,
		Config:  config,
		Weights: w,
		Vocab:   vocab,
	}, nil
}

// LoadModel restores model of type t from checkpoint file at path.
func LoadModel(t ModelType, path string, vocab *Vocabulary) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := NewModelFromCheckpoint(t, bufio.NewReader(f), vocab)
	if err != nil {
		return nil, errors.Wrapf(err, "restore %s", path)
	}
	return m, nil
}

// Generate greedily decodes caption for image features.
func (m *Model) Generate(f Features) (Caption, error) {
	if m.Config.IsAttention() {
		if len(f.Regions) != m.Config.NumRegions {
			return Caption{}, fmt.Errorf("got %d regions, expected %d", len(f.Regions), m.Config.NumRegions)
		}
		for i, r := range f.Regions {
			if len(r) != m.Config.FeatureDim {
				return Caption{}, fmt.Errorf("region %d has %d features, expected %d", i, len(r), m.Config.FeatureDim)
			}
		}
		return m.generateAttention(f.Regions), nil
	}

	if len(f.Vector) != m.Config.FeatureDim {
		return Caption{}, fmt.Errorf("got %d features, expected %d", len(f.Vector), m.Config.FeatureDim)
	}
	return m.generate(f.Vector), nil
}

func (m *Model) generate(feature []float64) Caption {
	s := NewRunState(m.Config, m.Type.Cell())

	// image is fed once before SOS
	nn.Linear(s.X, m.Weights.ImgProj, feature, m.Weights.ImgProjBias)
	Step(m.Type.Cell(), m.Config, s, m.Weights)

	return m.decode(s, nil)
}

// decode runs from SOS until EOS or max caption length.
// attend, if set, fills attention part of input before every step.
func (m *Model) decode(s RunState, attend func() AttentionMap) Caption {
	sos, _ := m.Vocab.ID(SOS)
	eos, _ := m.Vocab.ID(EOS)
	e := m.Config.EmbedDim

	var c Caption
	token := sos
	for len(c.Words) < m.Config.MaxCaptionLength {
		copy(s.X[:e], m.Weights.Embedding.RawRowView(token))

		var att AttentionMap
		if attend != nil {
			att = attend()
		}

		Step(m.Type.Cell(), m.Config, s, m.Weights)

		// classifier into logits, greedy argmax
		nn.Linear(s.Logits, m.Weights.Out, s.H, m.Weights.OutBias)
		next := nn.ArgMax(s.Logits)
		if next == eos {
			break
		}

		c.Words = append(c.Words, m.Vocab.Word(next))
		if attend != nil {
			c.Attention = append(c.Attention, att)
		}
		token = next
	}
	return c
}
