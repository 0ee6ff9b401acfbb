package debug

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-chip8/chip8/video"
)

// TakeSnapshot handles F12 snapshot logic: the display is rendered at the
// given scale and saved as a PNG in directory, or the current directory if empty.
func TakeSnapshot(d *video.Display, scale int, directory string) {
	if d == nil {
		slog.Warn("No display data available for snapshot")
		return
	}

	if _, err := SaveDisplayPNGToDir(d, scale, "chip8_snapshot", directory); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// SaveDisplayPNGToDir renders the display off-screen and saves it as a PNG.
func SaveDisplayPNGToDir(d *video.Display, scale int, baseName, directory string) (string, error) {
	renderer := video.NewRenderer(scale)
	surface := video.NewImageSurface(d.Width()*renderer.Scale, d.Height()*renderer.Scale)
	renderer.Draw(surface, d)

	return SavePNGToDir(surface.Image(), baseName, directory)
}

// SavePNGToDir saves an image as PNG with timestamp to a specific directory
func SavePNGToDir(img image.Image, baseName, directory string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	// Determine output directory
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	bounds := img.Bounds()
	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()), "format", "PNG")
	return filePath, nil
}
