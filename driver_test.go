package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolaydubina/caption.go/caption"
	"github.com/nikolaydubina/caption.go/dataset"
	"github.com/nikolaydubina/caption.go/render"
)

var (
	fixtureWords = []string{caption.SOS, caption.EOS, caption.UNK, "a", "cat", "sits"}
	fixtureIDs   = []int{101, 202, 303}
)

const fixtureAnnotations = `{
  "images": [
    {"id": 101, "file_name": "COCO_val2014_000000000101.jpg", "height": 48, "width": 64},
    {"id": 202, "file_name": "COCO_val2014_000000000202.jpg", "height": 48, "width": 64},
    {"id": 303, "file_name": "COCO_val2014_000000000303.jpg", "height": 48, "width": 64}
  ],
  "annotations": [
    {"id": 1, "image_id": 101, "caption": "A cat sitting on a mat."}
  ]
}`

// writeFixture lays out lookup tables, annotations, images, features and
// checkpoints of every model type under root.
func writeFixture(t *testing.T, root string, word string) {
	t.Helper()
	l := dataset.DefaultLayout()
	l.Root = root
	rng := rand.New(rand.NewSource(99))

	for _, dir := range []string{l.TestImageIDs, l.Annotations} {
		require.NoError(t, os.MkdirAll(filepath.Dir(l.Path(dir)), 0o755))
	}
	require.NoError(t, dataset.SaveTestImageIDs(l.Path(l.TestImageIDs), fixtureIDs))
	require.NoError(t, dataset.SaveVocabulary(l.Path(l.Vocabulary), fixtureWords))
	require.NoError(t, os.WriteFile(l.Path(l.Annotations), []byte(fixtureAnnotations), 0o644))

	const featureDim = 3
	vectors := make(map[int][]float32)
	store := dataset.RegionFeatureStore{Dir: l.Path(l.RegionFeatures)}
	for _, id := range fixtureIDs {
		vectors[id] = []float32{rng.Float32(), rng.Float32(), rng.Float32()}

		regions := make([][]float32, caption.NumRegions)
		for i := range regions {
			regions[i] = []float32{rng.Float32(), rng.Float32(), rng.Float32()}
		}
		require.NoError(t, store.Save(id, regions))

		img := image.NewRGBA(image.Rect(0, 0, 64, 48))
		for y := 0; y < 48; y++ {
			for x := 0; x < 64; x++ {
				img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 100, A: 255})
			}
		}
		require.NoError(t, render.WritePNG(l.ImagePath(fmt.Sprintf("COCO_val2014_%012d.jpg", id)), img))
	}
	require.NoError(t, dataset.SaveFeatureVectors(l.Path(l.FeatureVectors), vectors))

	wordID := -1
	for i, w := range fixtureWords {
		if w == word {
			wordID = i
		}
	}

	for _, modelType := range caption.ModelTypes {
		config := caption.Config{
			VocabSize:        len(fixtureWords),
			EmbedDim:         4,
			HiddenDim:        5,
			FeatureDim:       featureDim,
			MaxCaptionLength: 4,
		}
		if modelType.IsAttention() {
			config.NumRegions = caption.NumRegions
		}
		w := caption.NewWeights(config, modelType.Cell(), func() float64 { return rng.NormFloat64() * 0.3 })
		w.OutBias[wordID] = 1e6

		path := modelType.CheckpointPath(root)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, caption.WriteCheckpoint(f, config, modelType.Cell(), w))
		require.NoError(t, f.Close())
	}
}

func newTestDriver(t *testing.T, root string, seed int64) driver {
	logger, _ := logtest.NewNullLogger()
	l := dataset.DefaultLayout()
	l.Root = root
	return driver{
		log:    logger,
		layout: l,
		rng:    rand.New(rand.NewSource(seed)),
		out:    &bytes.Buffer{},
	}
}

func TestDriverRun(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "cat")

	for _, modelType := range caption.ModelTypes {
		t.Run(string(modelType), func(t *testing.T) {
			logger, hook := logtest.NewNullLogger()
			var out bytes.Buffer
			d := newTestDriver(t, root, 1)
			d.log, d.out = logger, &out

			require.NoError(t, d.run(request{ModelType: modelType, ImageID: 202, HasImageID: true}))
			assert.Equal(t, "img id: 202\n", out.String())

			var generated []string
			for _, e := range hook.AllEntries() {
				if e.Message == "generated" {
					generated = append(generated, e.Data["caption"].(string))
				}
			}
			assert.Equal(t, []string{"cat cat cat cat"}, generated)

			fig, err := render.LoadImage(filepath.Join(root, "out", "caption_202.png"))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, fig.Bounds().Dy(), 48)

			attentionPath := filepath.Join(root, "out", "attention_202.png")
			if !modelType.IsAttention() {
				assert.NoFileExists(t, attentionPath)
				return
			}
			att, err := render.LoadImage(attentionPath)
			require.NoError(t, err)
			// 4 words in 3 columns is 2 rows
			assert.Greater(t, att.Bounds().Dx(), 3*render.TileSize)
			assert.Greater(t, att.Bounds().Dy(), 2*render.TileSize)
			require.NoError(t, os.Remove(attentionPath))
		})
	}
}

func TestDriverRandomImageDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "sits")

	pick := func(seed int64) string {
		var out bytes.Buffer
		d := newTestDriver(t, root, seed)
		d.out = &out
		require.NoError(t, d.run(request{ModelType: caption.GRU}))
		return out.String()
	}

	for seed := int64(0); seed < 5; seed++ {
		assert.Equal(t, pick(seed), pick(seed))
	}
}

func TestDriverEmptyCaption(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, caption.EOS)

	logger, hook := logtest.NewNullLogger()
	d := newTestDriver(t, root, 1)
	d.log = logger

	require.NoError(t, d.run(request{ModelType: caption.LSTMAttention, ImageID: 101, HasImageID: true}))
	assert.NoFileExists(t, filepath.Join(root, "out", "attention_101.png"))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestDriverUnknownImage(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a")

	d := newTestDriver(t, root, 1)
	assert.Error(t, d.run(request{ModelType: caption.LSTM, ImageID: 999, HasImageID: true}))
}
