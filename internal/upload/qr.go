package upload

import (
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/verte-zerg/agroscan/internal/model"
)

// QRPayload is the JSON document encoded into the result QR code.
type QRPayload struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
	URL        string  `json:"url"`
}

// NewQRPayload builds the payload for an analysis result shown at pageURL.
func NewQRPayload(result model.AnalysisResult, now time.Time, pageURL string) QRPayload {
	return QRPayload{
		Prediction: result.Prediction,
		Confidence: result.Confidence,
		Timestamp:  now.UTC().Format(time.RFC3339),
		URL:        pageURL,
	}
}

// EncodeQR renders the payload as terminal block art.
func EncodeQR(payload QRPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr payload: %w", err)
	}
	code, err := qrcode.New(string(raw), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to generate qr code: %w", err)
	}
	return code.ToSmallString(false), nil
}

// EncodeQRPNG renders the payload as a PNG for export.
func EncodeQRPNG(payload QRPayload, size int) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr payload: %w", err)
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr png: %w", err)
	}
	return png, nil
}
