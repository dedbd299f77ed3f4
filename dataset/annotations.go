package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

type Image struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

type Annotation struct {
	ID      int    `json:"id"`
	ImageID int    `json:"image_id"`
	Caption string `json:"caption"`
}

// AnnotationIndex is COCO captions annotation file indexed by image id.
type AnnotationIndex struct {
	images   map[int]Image
	captions map[int][]string
}

func NewAnnotationIndex(r io.Reader) (*AnnotationIndex, error) {
	var file struct {
		Images      []Image      `json:"images"`
		Annotations []Annotation `json:"annotations"`
	}
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, err
	}

	idx := AnnotationIndex{
		images:   make(map[int]Image, len(file.Images)),
		captions: make(map[int][]string, len(file.Images)),
	}
	for _, img := range file.Images {
		idx.images[img.ID] = img
	}
	for _, a := range file.Annotations {
		idx.captions[a.ImageID] = append(idx.captions[a.ImageID], a.Caption)
	}
	return &idx, nil
}

func LoadAnnotationIndex(path string) (*AnnotationIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := NewAnnotationIndex(f)
	if err != nil {
		return nil, errors.Wrapf(err, "annotations %s", path)
	}
	return idx, nil
}

func (idx *AnnotationIndex) Image(id int) (Image, error) {
	img, ok := idx.images[id]
	if !ok {
		return Image{}, fmt.Errorf("no image with id %d in annotations", id)
	}
	return img, nil
}

func (idx *AnnotationIndex) FileName(id int) (string, error) {
	img, err := idx.Image(id)
	return img.FileName, err
}

// Captions are human reference captions of image.
func (idx *AnnotationIndex) Captions(id int) []string { return idx.captions[id] }

func (idx *AnnotationIndex) Len() int { return len(idx.images) }
