package infra

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// labelSize is the pixel edge of the square label image.
const labelSize = 256

// EncodeLabel renders a barcode string into a PNG QR image. Deterministic for
// a given input; encoding failures (oversized or unencodable input) are
// returned, never swallowed.
func EncodeLabel(barcode string) ([]byte, error) {
	png, err := qrcode.Encode(barcode, qrcode.Medium, labelSize)
	if err != nil {
		return nil, fmt.Errorf("qr: encode %q: %w", barcode, err)
	}
	return png, nil
}
