// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package share

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

var ErrEmptyContent = errors.New("nothing to encode")

// ClampSize bounds a requested image size. Non-positive sizes use DefaultSize.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// QRCode renders text as a square PNG QR code of roughly size pixels.
func QRCode(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyContent
	}
	png, err := qrcode.Encode(text, qrcode.Medium, ClampSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
