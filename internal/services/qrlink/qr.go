package qrlink

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the side length in pixels of the generated image
const qrSize = 256

// EncodePNG renders the deep link for a table into a scannable PNG
func EncodePNG(baseURL string, tenantID int64, tableID string) ([]byte, error) {
	link, err := TableURL(baseURL, tenantID, tableID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
