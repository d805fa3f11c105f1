package api

import (
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Kuberwastaken/meow/pkg/carrier"
	"github.com/Kuberwastaken/meow/pkg/ecc"
	"github.com/Kuberwastaken/meow/pkg/stego"
)

// Server holds the API server state
type Server struct {
	codec   ecc.Codec
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(codec ecc.Codec, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		codec:   codec,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports liveness plus the resolved codec capability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]interface{}{
		"status":        "healthy",
		"ecc_available": s.codec.Available(),
	})
}

// handleEmbed accepts a multipart form with a "carrier" image file and
// a "payload" file, and responds with the stego image as PNG. The
// optional "ecc" form value ("true"/"false", default true) selects the
// encoding mode.
func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	maxBytes := s.config.MaxUploadBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		sendError(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	img, err := s.formImage(r, "carrier")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := s.formBytes(r, "payload")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	codec := s.codec
	if v := r.FormValue("ecc"); v != "" {
		useECC, err := strconv.ParseBool(v)
		if err != nil {
			sendError(w, fmt.Sprintf("invalid ecc value %q", v), http.StatusBadRequest)
			return
		}
		if !useECC {
			codec = ecc.Nop{}
		}
	}

	samples := carrier.Samples(img)
	if err := stego.Embed(samples, data, codec); err != nil {
		s.metrics.RecordEmbed(false, len(data), time.Since(start))
		sendError(w, fmt.Sprintf("embed failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	out, err := carrier.Apply(img, samples)
	if err != nil {
		s.metrics.RecordEmbed(false, len(data), time.Since(start))
		sendError(w, fmt.Sprintf("applying samples: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordEmbed(true, len(data), time.Since(start))
	w.Header().Set("Content-Type", "image/png")
	if err := carrier.EncodePNG(w, out); err != nil {
		// Headers are gone; nothing left to do but log via middleware.
		return
	}
}

// handleExtract accepts a multipart form with a "carrier" image file
// and responds with the recovered payload and its recovery status.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	maxBytes := s.config.MaxUploadBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		sendError(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	img, err := s.formImage(r, "carrier")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := stego.Extract(carrier.Samples(img), s.codec)

	corrected := 0
	for _, b := range res.Blocks {
		corrected += b.Corrected
	}
	s.metrics.RecordExtract(res.Status.String(), corrected, len(res.FailedBlocks), time.Since(start))

	if err != nil {
		sendError(w, fmt.Sprintf("extract failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	sendSuccess(w, ExtractResponse{
		Status:              res.Status.String(),
		Payload:             res.Payload,
		PayloadLength:       res.Header.PayloadLength,
		ECC:                 res.Header.ECC,
		ChecksumOK:          res.ChecksumOK,
		HeaderFromSecondary: res.HeaderFromSecondary,
		FailedBlocks:        res.FailedBlocks,
	})
}

// handleCapacity reports how many payload bytes a carrier can hold.
func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.config.MaxUploadBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		sendError(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	img, err := s.formImage(r, "carrier")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	count := carrier.SampleCount(img)
	sendSuccess(w, map[string]interface{}{
		"samples":       count,
		"max_ecc_bytes": stego.MaxPayload(count, s.codec),
		"max_raw_bytes": stego.MaxPayload(count, ecc.Nop{}),
	})
}

func (s *Server) formImage(r *http.Request, field string) (image.Image, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %q file field: %w", field, err)
	}
	defer f.Close()

	img, err := carrier.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", field, err)
	}
	return img, nil
}

func (s *Server) formBytes(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %q file field: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", field, err)
	}
	return data, nil
}
