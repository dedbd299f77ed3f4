package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/nikolaydubina/caption.go/caption"
)

// RegionFeatureStore holds per region features for attention models,
// one gob file named by image id.
type RegionFeatureStore struct {
	Dir string
}

func (s RegionFeatureStore) path(imgID int) string {
	return filepath.Join(s.Dir, strconv.Itoa(imgID))
}

func (s RegionFeatureStore) Load(imgID int) ([][]float32, error) {
	var regions [][]float32
	if err := loadGob(s.path(imgID), &regions); err != nil {
		return nil, err
	}
	if len(regions) != caption.NumRegions {
		return nil, fmt.Errorf("image %d has %d regions, expected %d", imgID, len(regions), caption.NumRegions)
	}
	return regions, nil
}

func (s RegionFeatureStore) Save(imgID int, regions [][]float32) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrap(err, "region features dir")
	}
	return saveGob(s.path(imgID), regions)
}
