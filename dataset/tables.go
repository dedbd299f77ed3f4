package dataset

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"github.com/nikolaydubina/caption.go/caption"
)

func loadGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

func saveGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return f.Close()
}

func LoadTestImageIDs(path string) (ids []int, err error) {
	err = loadGob(path, &ids)
	return ids, err
}

func SaveTestImageIDs(path string, ids []int) error { return saveGob(path, ids) }

// LoadFeatureVectors loads image id to feature vector mapping.
func LoadFeatureVectors(path string) (features map[int][]float32, err error) {
	err = loadGob(path, &features)
	return features, err
}

func SaveFeatureVectors(path string, features map[int][]float32) error {
	return saveGob(path, features)
}

func LoadVocabulary(path string) (*caption.Vocabulary, error) {
	var words []string
	if err := loadGob(path, &words); err != nil {
		return nil, err
	}
	vocab, err := caption.NewVocabulary(words)
	if err != nil {
		return nil, errors.Wrapf(err, "vocabulary %s", path)
	}
	return vocab, nil
}

func SaveVocabulary(path string, words []string) error { return saveGob(path, words) }

// Float64s converts stored features into model input precision.
func Float64s(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
