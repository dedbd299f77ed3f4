package dataset

import (
	"fmt"

	"github.com/nikolaydubina/caption.go/caption"
)

// Features picks model input of image: feature vector for plain models,
// region features for attention models.
func Features(t caption.ModelType, imgID int, vectors map[int][]float32, regions RegionFeatureStore) (caption.Features, error) {
	if t.IsAttention() {
		rs, err := regions.Load(imgID)
		if err != nil {
			return caption.Features{}, err
		}
		f := caption.Features{Regions: make([][]float64, len(rs))}
		for i, r := range rs {
			f.Regions[i] = Float64s(r)
		}
		return f, nil
	}

	v, ok := vectors[imgID]
	if !ok {
		return caption.Features{}, fmt.Errorf("no feature vector for image %d", imgID)
	}
	return caption.Features{Vector: Float64s(v)}, nil
}
