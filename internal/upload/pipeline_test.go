package upload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/verte-zerg/agroscan/internal/api"
	"github.com/verte-zerg/agroscan/internal/model"
)

// Minimal valid PNG header so content sniffing sees an image.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func newPipeline(t *testing.T, handler http.HandlerFunc) *Pipeline {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := api.NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewPipeline(client)
}

func uploadHandler(t *testing.T, response map[string]any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("missing image field: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}

func TestStageRejectsNonImage(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, nil))
	if err := p.Stage("", "leaf.png", pngBytes, ""); err != nil {
		t.Fatalf("stage image: %v", err)
	}
	err := p.Stage("", "notes.txt", []byte("plain text, nothing more"), "text/plain")
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	staged := p.Staged()
	if staged == nil || staged.Name != "leaf.png" {
		t.Fatalf("previous staged file must stay untouched, got %+v", staged)
	}
}

func TestStageBuildsPreviewDataURL(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, nil))
	if err := p.Stage("", "leaf.png", pngBytes, ""); err != nil {
		t.Fatalf("stage image: %v", err)
	}
	preview := p.Staged().PreviewDataURL
	if !strings.HasPrefix(preview, "data:image/png;base64,") {
		t.Fatalf("unexpected preview prefix: %q", preview)
	}
}

func TestStageReplacesPrevious(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, nil))
	if err := p.Stage("", "first.png", pngBytes, ""); err != nil {
		t.Fatalf("stage first: %v", err)
	}
	if err := p.Stage("", "second.png", pngBytes, ""); err != nil {
		t.Fatalf("stage second: %v", err)
	}
	if got := p.Staged().Name; got != "second.png" {
		t.Fatalf("expected replacement, got %q", got)
	}
}

func TestSubmitRequiresStagedFile(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, nil))
	if _, err := p.Submit(context.Background()); !errors.Is(err, ErrNoStagedFile) {
		t.Fatalf("expected ErrNoStagedFile, got %v", err)
	}
}

func TestSubmitSuccess(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, map[string]any{
		"success": true, "prediction": "Healthy Leaf", "confidence": 97,
	}))
	if err := p.Stage("", "leaf.png", pngBytes, ""); err != nil {
		t.Fatalf("stage: %v", err)
	}
	result, err := p.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Prediction != "Healthy Leaf" || result.Confidence != 97 {
		t.Fatalf("unexpected result %+v", result)
	}
	if !IsHealthy(result.Prediction) {
		t.Fatalf("expected healthy verdict for %q", result.Prediction)
	}
}

func TestSubmitMissingFieldsDegradeToPlaceholders(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, map[string]any{"success": true}))
	if err := p.Stage("", "leaf.png", pngBytes, ""); err != nil {
		t.Fatalf("stage: %v", err)
	}
	result, err := p.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Prediction != "Unknown" || result.Confidence != 0 {
		t.Fatalf("expected placeholders, got %+v", result)
	}
}

func TestSubmitFailureKeepsStagedFile(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, map[string]any{
		"success": false, "message": "model unavailable",
	}))
	if err := p.Stage("", "leaf.png", pngBytes, ""); err != nil {
		t.Fatalf("stage: %v", err)
	}
	_, err := p.Submit(context.Background())
	if err == nil || err.Error() != "model unavailable" {
		t.Fatalf("expected server message, got %v", err)
	}
	if p.Staged() == nil {
		t.Fatalf("failure must leave the staged file intact")
	}
}

func TestSubmitRejectsConcurrent(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	p := newPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "prediction": "Healthy", "confidence": 90})
	})
	if err := p.Stage("", "leaf.png", pngBytes, ""); err != nil {
		t.Fatalf("stage: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := p.Submit(context.Background()); err != nil {
			t.Errorf("first submit: %v", err)
		}
	}()

	<-started
	if _, err := p.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	wg.Wait()
}

func TestResetClearsUnconditionally(t *testing.T) {
	p := newPipeline(t, uploadHandler(t, nil))
	p.Reset()
	if err := p.Stage("", "leaf.png", pngBytes, ""); err != nil {
		t.Fatalf("stage: %v", err)
	}
	p.Reset()
	if p.Staged() != nil {
		t.Fatalf("expected no staged file after reset")
	}
}

func TestIsHealthy(t *testing.T) {
	cases := []struct {
		prediction string
		healthy    bool
	}{
		{"Healthy Leaf", true},
		{"healthy", true},
		{"Tomato___HEALTHY", true},
		{"Leaf Blight", false},
		{"Unknown", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsHealthy(tc.prediction); got != tc.healthy {
			t.Fatalf("IsHealthy(%q) = %v, want %v", tc.prediction, got, tc.healthy)
		}
	}
}

func TestQRPayloadContents(t *testing.T) {
	result := model.AnalysisResult{Prediction: "Healthy Leaf", Confidence: 97}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	payload := NewQRPayload(result, now, "https://agrovision.example/#analyze")
	if payload.Prediction != "Healthy Leaf" || payload.Confidence != 97 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Timestamp != "2026-03-14T09:30:00Z" {
		t.Fatalf("unexpected timestamp %q", payload.Timestamp)
	}
	art, err := EncodeQR(payload)
	if err != nil {
		t.Fatalf("encode qr: %v", err)
	}
	if art == "" {
		t.Fatalf("expected rendered qr art")
	}
	png, err := EncodeQRPNG(payload, 200)
	if err != nil {
		t.Fatalf("encode qr png: %v", err)
	}
	if len(png) == 0 {
		t.Fatalf("expected png bytes")
	}
}
