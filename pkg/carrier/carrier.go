// Package carrier handles the image side of the container: decoding
// carriers, flattening their RGB channels into the sample buffer the
// core operates on, and writing modified pixels back out as PNG.
//
// MEOW files are ordinary PNGs; only the lossless PNG container
// preserves the LSB plane, so output is always PNG regardless of the
// input format. Sample order is row-major R, G, B per pixel with the
// alpha channel skipped, and is identical between the write and read
// passes.
package carrier

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
)

// Accept JPEG and GIF carriers on input too.
import (
	_ "image/gif"
	_ "image/jpeg"
)

const samplesPerPixel = 3 // R, G, B; alpha is never touched

// Load reads and decodes a carrier image from disk.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open carrier: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode carrier: %w", err)
	}
	return img, nil
}

// Decode decodes a carrier image from a stream.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode carrier: %w", err)
	}
	return img, nil
}

// SampleCount returns the number of LSB storage slots the image offers.
func SampleCount(img image.Image) int {
	b := img.Bounds()
	return b.Dx() * b.Dy() * samplesPerPixel
}

// Samples flattens the image's RGB channels into a linear sample
// buffer, one byte per channel value.
func Samples(img image.Image) []byte {
	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	out := make([]byte, b.Dx()*b.Dy()*samplesPerPixel)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := nrgba.Pix[(y-b.Min.Y)*nrgba.Stride:]
		for x := 0; x < b.Dx(); x++ {
			out[i] = row[x*4]
			out[i+1] = row[x*4+1]
			out[i+2] = row[x*4+2]
			i += samplesPerPixel
		}
	}
	return out
}

// Apply writes a modified sample buffer back over the image's RGB
// channels and returns the resulting pixels. The alpha channel is
// carried over unchanged.
func Apply(img image.Image, samples []byte) (*image.NRGBA, error) {
	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	if want := b.Dx() * b.Dy() * samplesPerPixel; len(samples) != want {
		return nil, fmt.Errorf("sample buffer size mismatch: got %d, want %d", len(samples), want)
	}

	i := 0
	for y := 0; y < b.Dy(); y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < b.Dx(); x++ {
			row[x*4] = samples[i]
			row[x*4+1] = samples[i+1]
			row[x*4+2] = samples[i+2]
			i += samplesPerPixel
		}
	}
	return nrgba, nil
}

// SavePNG writes the image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// EncodePNG writes the image to a stream as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// toNRGBA normalizes any decoded image to non-premultiplied RGBA with a
// fresh pixel buffer, so Apply never aliases the caller's image.
// Premultiplied formats would round channel values on translucent
// pixels and destroy embedded LSBs.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return nrgba
}
