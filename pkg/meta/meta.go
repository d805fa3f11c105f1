// Package meta builds and serializes the MEOW metadata document that
// annotate-style embeds carry: image statistics, computed visual
// features and free-form annotations. Documents are JSON, compressed
// with zstd before embedding.
package meta

import (
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/klauspost/compress/zstd"
)

// FormatTag identifies a metadata document payload.
const FormatTag = "meow-meta/v1"

// Stats describes the carrier image the document was computed from.
type Stats struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

// Features are grayscale statistics computed over the carrier.
type Features struct {
	Brightness  float64 `json:"brightness"`   // mean luminance
	Contrast    float64 `json:"contrast"`     // luminance standard deviation
	Complexity  float64 `json:"complexity"`   // luminance variance
	EdgeDensity float64 `json:"edge_density"` // mean absolute gradient
}

// Document is the embeddable metadata record.
type Document struct {
	Format      string            `json:"format"`
	Stats       Stats             `json:"image_stats"`
	Features    Features          `json:"features"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// Build computes a document for the given carrier image.
func Build(img image.Image, annotations map[string]string) *Document {
	b := img.Bounds()
	return &Document{
		Format: FormatTag,
		Stats: Stats{
			Width:  b.Dx(),
			Height: b.Dy(),
			Mode:   "rgba",
		},
		Features:    computeFeatures(img),
		Annotations: annotations,
	}
}

// Marshal serializes the document as zstd-compressed JSON.
func (d *Document) Marshal() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// Unmarshal parses a document from an extracted payload, decompressing
// when the payload carries a zstd frame.
func Unmarshal(data []byte) (*Document, error) {
	if Compressed(data) {
		var err error
		if data, err = Decompress(data); err != nil {
			return nil, err
		}
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if d.Format != FormatTag {
		return nil, fmt.Errorf("not a metadata document: format %q", d.Format)
	}
	return &d, nil
}

// Compressed reports whether data starts with a zstd frame magic.
func Compressed(data []byte) bool {
	return len(data) >= 4 &&
		data[0] == 0x28 && data[1] == 0xB5 && data[2] == 0x2F && data[3] == 0xFD
}

// Decompress expands a zstd frame.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	return out, nil
}

// Compress wraps arbitrary payload bytes in a zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// computeFeatures derives grayscale statistics: mean brightness,
// standard-deviation contrast, variance complexity and mean absolute
// horizontal+vertical gradient as edge density.
func computeFeatures(img image.Image) Features {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Features{}
	}

	gray := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// ITU-R BT.601 luma, scaled back to 0..255.
			gray[y*w+x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 257.0
		}
	}

	var sum float64
	for _, v := range gray {
		sum += v
	}
	mean := sum / float64(len(gray))

	var variance float64
	for _, v := range gray {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(gray))

	var edgeSum float64
	var edgeCount int
	for y := 0; y < h; y++ {
		for x := 0; x < w-1; x++ {
			edgeSum += math.Abs(gray[y*w+x+1] - gray[y*w+x])
			edgeCount++
		}
	}
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			edgeSum += math.Abs(gray[(y+1)*w+x] - gray[y*w+x])
			edgeCount++
		}
	}
	var edgeDensity float64
	if edgeCount > 0 {
		edgeDensity = edgeSum / float64(edgeCount)
	}

	return Features{
		Brightness:  mean,
		Contrast:    math.Sqrt(variance),
		Complexity:  variance,
		EdgeDensity: edgeDensity,
	}
}
