package cmd

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuberwastaken/meow/pkg/carrier"
	"github.com/Kuberwastaken/meow/pkg/meta"
	"github.com/Kuberwastaken/meow/pkg/stego"
)

func writeTestCarrier(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7), G: uint8(y * 13), B: uint8(x + y), A: 255,
			})
		}
	}
	require.NoError(t, carrier.SavePNG(path, img))
}

func TestEmbedFileRoundtrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "meow_embed_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	carrierPath := filepath.Join(tmpDir, "carrier.png")
	outPath := filepath.Join(tmpDir, "carrier.meow")
	writeTestCarrier(t, carrierPath, 64, 64)

	payload := []byte("the quick brown fox jumps over the lazy dog")
	require.NoError(t, embedFile(carrierPath, outPath, payload))

	img, err := carrier.Load(outPath)
	require.NoError(t, err)

	res, err := stego.Extract(carrier.Samples(img), codec)
	require.NoError(t, err)
	assert.Equal(t, stego.StatusSuccess, res.Status)
	assert.Equal(t, payload, res.Payload)
}

func TestEmbedFileCapacityError(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "meow_embed_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	carrierPath := filepath.Join(tmpDir, "tiny.png")
	writeTestCarrier(t, carrierPath, 4, 4)

	err = embedFile(carrierPath, filepath.Join(tmpDir, "out.meow"), make([]byte, 1024))
	require.Error(t, err)
	assert.ErrorIs(t, err, stego.ErrInsufficientCapacity)
}

func TestAnnotateDocumentRoundtrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "meow_annotate_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	carrierPath := filepath.Join(tmpDir, "carrier.png")
	outPath := filepath.Join(tmpDir, "carrier.meow")
	writeTestCarrier(t, carrierPath, 64, 64)

	img, err := carrier.Load(carrierPath)
	require.NoError(t, err)

	doc := meta.Build(img, map[string]string{"author": "jane"})
	data, err := doc.Marshal()
	require.NoError(t, err)
	require.NoError(t, embedFile(carrierPath, outPath, data))

	stegoImg, err := carrier.Load(outPath)
	require.NoError(t, err)
	res, err := stego.Extract(carrier.Samples(stegoImg), codec)
	require.NoError(t, err)
	require.Equal(t, stego.StatusSuccess, res.Status)

	recovered, err := meta.Unmarshal(res.Payload)
	require.NoError(t, err)
	assert.Equal(t, "jane", recovered.Annotations["author"])
	assert.Equal(t, 64, recovered.Stats.Width)
}
