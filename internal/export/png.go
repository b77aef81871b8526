package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmpty
	}
	return png.Encode(w, img)
}

// WritePNG writes img to path, creating or truncating it.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
