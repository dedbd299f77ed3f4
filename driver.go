package main

import (
	"fmt"
	"image"
	"io"
	"math/rand"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nikolaydubina/caption.go/caption"
	"github.com/nikolaydubina/caption.go/dataset"
	"github.com/nikolaydubina/caption.go/overlay"
	"github.com/nikolaydubina/caption.go/render"
)

type driver struct {
	log    logrus.FieldLogger
	layout dataset.Layout
	rng    *rand.Rand
	out    io.Writer
}

func (d driver) run(req request) error {
	l := d.layout
	log := d.log.WithField("model", req.ModelType)

	testImageIDs, err := dataset.LoadTestImageIDs(l.Path(l.TestImageIDs))
	if err != nil {
		return errors.Wrap(err, "test image ids")
	}
	vectors, err := dataset.LoadFeatureVectors(l.Path(l.FeatureVectors))
	if err != nil {
		return errors.Wrap(err, "feature vectors")
	}
	vocab, err := dataset.LoadVocabulary(l.Path(l.Vocabulary))
	if err != nil {
		return errors.Wrap(err, "vocabulary")
	}

	imgID := req.ImageID
	if !req.HasImageID {
		if imgID, err = dataset.PickRandom(testImageIDs, d.rng); err != nil {
			return err
		}
	}
	log = log.WithField("img_id", imgID)

	annotations, err := dataset.LoadAnnotationIndex(l.Path(l.Annotations))
	if err != nil {
		return err
	}
	fileName, err := annotations.FileName(imgID)
	if err != nil {
		return err
	}
	for _, ref := range annotations.Captions(imgID) {
		log.WithField("caption", ref).Debug("reference")
	}

	features, err := dataset.Features(req.ModelType, imgID, vectors, dataset.RegionFeatureStore{Dir: l.Path(l.RegionFeatures)})
	if err != nil {
		return err
	}

	model, err := caption.LoadModel(req.ModelType, req.ModelType.CheckpointPath(l.Root), vocab)
	if err != nil {
		return err
	}
	log.WithField("config", fmt.Sprintf("%+v", model.Config)).Info("restored model")

	c, err := model.Generate(features)
	if err != nil {
		return err
	}
	log.WithField("caption", c.String()).Info("generated")

	img, err := render.LoadImage(l.ImagePath(fileName))
	if err != nil {
		return err
	}

	captionPath := filepath.Join(l.Path(l.Output), fmt.Sprintf("caption_%d.png", imgID))
	if err := render.WritePNG(captionPath, render.CaptionFigure(img, c.String())); err != nil {
		return err
	}
	log.WithField("path", captionPath).Info("wrote caption figure")
	fmt.Fprintf(d.out, "img id: %d\n", imgID)

	if !req.ModelType.IsAttention() {
		return nil
	}
	if len(c.Words) == 0 {
		log.Warn("empty caption, no attention to render")
		return nil
	}

	gray := overlay.Grayscale(img)
	tiles := make([]image.Image, len(c.Words))
	for step, probs := range c.Attention {
		tiles[step] = overlay.Image(overlay.Blend(probs, gray))
	}
	fig, err := render.AttentionFigure(tiles, c.Words)
	if err != nil {
		return err
	}

	attentionPath := filepath.Join(l.Path(l.Output), fmt.Sprintf("attention_%d.png", imgID))
	if err := render.WritePNG(attentionPath, fig); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": attentionPath, "rows": overlay.GridRows(len(tiles))}).Info("wrote attention figure")
	return nil
}
