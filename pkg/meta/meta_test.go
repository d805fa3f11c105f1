package meta

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDocument_MarshalUnmarshalRoundTrip(t *testing.T) {
	img := flatImage(8, 8, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
	doc := Build(img, map[string]string{
		"object_classes": "cat,dog",
		"source":         "unit test",
	})

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.True(t, Compressed(data), "marshaled document must carry a zstd frame")

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestUnmarshal_AcceptsUncompressedJSON(t *testing.T) {
	raw := []byte(`{"format":"meow-meta/v1","image_stats":{"width":1,"height":1,"mode":"rgba"},"features":{"brightness":0,"contrast":0,"complexity":0,"edge_density":0}}`)

	doc, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, FormatTag, doc.Format)
	assert.Equal(t, 1, doc.Stats.Width)
}

func TestUnmarshal_RejectsForeignPayload(t *testing.T) {
	_, err := Unmarshal([]byte(`{"format":"something-else"}`))
	assert.Error(t, err)

	_, err = Unmarshal([]byte("not json at all"))
	assert.Error(t, err)
}

func TestCompressDecompress_RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("meow "), 1000)

	compressed, err := Compress(payload)
	require.NoError(t, err)
	assert.True(t, Compressed(compressed))
	assert.Less(t, len(compressed), len(payload), "repetitive payload must shrink")

	out, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestComputeFeatures_FlatImage(t *testing.T) {
	// A uniform image has zero contrast, complexity and edge density.
	img := flatImage(16, 16, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	f := computeFeatures(img)

	assert.InDelta(t, 100, f.Brightness, 1.0)
	assert.InDelta(t, 0, f.Contrast, 0.01)
	assert.InDelta(t, 0, f.Complexity, 0.01)
	assert.InDelta(t, 0, f.EdgeDensity, 0.01)
}

func TestComputeFeatures_CheckerboardHasEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	f := computeFeatures(img)
	assert.InDelta(t, 127.5, f.Brightness, 1.0)
	assert.Greater(t, f.Contrast, 100.0)
	assert.Greater(t, f.EdgeDensity, 200.0)
}

func TestBuild_RecordsImageStats(t *testing.T) {
	img := flatImage(12, 5, color.NRGBA{A: 255})
	doc := Build(img, nil)

	assert.Equal(t, FormatTag, doc.Format)
	assert.Equal(t, 12, doc.Stats.Width)
	assert.Equal(t, 5, doc.Stats.Height)
	assert.Nil(t, doc.Annotations)
}
