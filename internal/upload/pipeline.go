// Package upload owns the staged image and the submit/response cycle.
package upload

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/verte-zerg/agroscan/internal/api"
	"github.com/verte-zerg/agroscan/internal/model"
)

// Validation failures caught before any network call.
var (
	ErrNotImage       = errors.New("file is not an image")
	ErrNoStagedFile   = errors.New("no image staged for analysis")
	ErrSubmitInFlight = errors.New("an analysis is already in progress")
)

// Pipeline stages at most one image at a time and submits it for
// classification. Concurrent submissions are rejected by the pipeline itself,
// not just by a disabled control.
type Pipeline struct {
	client *api.Client

	mu       sync.Mutex
	staged   *model.StagedUpload
	inFlight bool
}

// NewPipeline builds an empty pipeline.
func NewPipeline(client *api.Client) *Pipeline {
	return &Pipeline{client: client}
}

// Staged returns the currently staged upload, or nil.
func (p *Pipeline) Staged() *model.StagedUpload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.staged
}

// StageFile reads a file from disk and stages it. A non-image file is
// rejected and any previously staged file stays untouched.
func (p *Pipeline) StageFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	return p.Stage(path, filepath.Base(path), data, "")
}

// Stage replaces the staged file with the given one. The declared media type
// wins when present; otherwise the type is taken from content sniffing with
// an extension fallback. Only image types are accepted.
func (p *Pipeline) Stage(path, name string, data []byte, declaredType string) error {
	mediaType := declaredType
	if mediaType == "" {
		mediaType = detectMediaType(name, data)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return ErrNotImage
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.staged = &model.StagedUpload{
		Path:           path,
		Name:           name,
		MediaType:      mediaType,
		Data:           data,
		PreviewDataURL: dataURL(mediaType, data),
	}
	return nil
}

// Reset clears the staged file unconditionally.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.staged = nil
}

// Submit sends the staged file for classification. It requires a staged file
// and rejects a second submission while one is in flight. On failure the
// staged file is left intact so the preview survives. Missing response
// fields degrade to placeholder values.
func (p *Pipeline) Submit(ctx context.Context) (model.AnalysisResult, error) {
	p.mu.Lock()
	if p.staged == nil {
		p.mu.Unlock()
		return model.AnalysisResult{}, ErrNoStagedFile
	}
	if p.inFlight {
		p.mu.Unlock()
		return model.AnalysisResult{}, ErrSubmitInFlight
	}
	p.inFlight = true
	name := p.staged.Name
	data := p.staged.Data
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	resp, err := p.client.Upload(ctx, name, data)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = "analysis failed"
		}
		return model.AnalysisResult{}, errors.New(message)
	}

	result := model.AnalysisResult{Prediction: "Unknown"}
	if resp.Prediction != "" {
		result.Prediction = resp.Prediction
	}
	if resp.Confidence != nil {
		result.Confidence = *resp.Confidence
	}
	return result, nil
}

// IsHealthy reports whether a prediction counts as healthy. Any prediction
// containing "healthy", case-insensitive, does; everything else is an
// attention state.
func IsHealthy(prediction string) bool {
	return strings.Contains(strings.ToLower(prediction), "healthy")
}

func detectMediaType(name string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	return sniffed
}

func dataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
