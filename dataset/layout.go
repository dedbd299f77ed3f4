// Package dataset loads lookup tables, annotations and image features
// prepared by preprocessing and feature extraction.
package dataset

import "path/filepath"

// Layout is location of every file the captioning driver reads or writes.
type Layout struct {
	Root           string
	TestImageIDs   string // gob []int
	FeatureVectors string // gob map[int][]float32
	Vocabulary     string // gob []string
	Annotations    string // COCO captions json
	Images         string // directory of test images
	RegionFeatures string // directory of gob [][]float32 files, one per image id
	Output         string // directory for rendered figures
}

func DefaultLayout() Layout {
	return Layout{
		Root:           ".",
		TestImageIDs:   filepath.Join("coco", "data", "test_img_ids"),
		FeatureVectors: filepath.Join("coco", "data", "test_img_id_2_feature_vector"),
		Vocabulary:     filepath.Join("coco", "data", "vocabulary"),
		Annotations:    filepath.Join("coco", "annotations", "captions_val2014.json"),
		Images:         filepath.Join("coco", "images", "test"),
		RegionFeatures: filepath.Join("coco", "data", "img_features_attention"),
		Output:         "out",
	}
}

// Path resolves p relative to Root.
func (l Layout) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Root, p)
}

func (l Layout) ImagePath(fileName string) string {
	return filepath.Join(l.Path(l.Images), fileName)
}
