package renderer

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// WritePNG encodes the canvas to a PNG file, creating parent
// directories as needed.
func WritePNG(path string, c *Canvas) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return f.Close()
}
