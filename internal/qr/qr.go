package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const imageSize = 256

// Generate renders content as a QR PNG and returns both the raw image bytes
// and a data URL suitable for embedding directly in a pass record.
func Generate(content string) (dataURL string, raw []byte, err error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", nil, fmt.Errorf("qr encode failed: %w", err)
	}

	scaled, err := barcode.Scale(code, imageSize, imageSize)
	if err != nil {
		return "", nil, fmt.Errorf("qr scale failed: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", nil, fmt.Errorf("qr png encode failed: %w", err)
	}

	raw = buf.Bytes()
	dataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	return dataURL, raw, nil
}
