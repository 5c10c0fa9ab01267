package loaders

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage builds a 2x2 image with white, red, green and blue pixels
func createTestImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func TestEncoderFor(t *testing.T) {
	tests := []struct {
		path     string
		format   string
		lossless bool
	}{
		{"out.png", "png", true},
		{"OUT.PNG", "png", true},
		{"out.jpg", "jpeg", false},
		{"out.jpeg", "jpeg", false},
		{"out.gif", "gif", false},
		{"out.bmp", "bmp", true},
		{"out.tif", "tiff", true},
		{"dir.v2/out.tiff", "tiff", true},
	}

	src := createTestImage()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			enc, err := EncoderFor(tt.path)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			var buf bytes.Buffer
			if err := enc(&buf, src); err != nil {
				t.Fatalf("Encoding failed: %v", err)
			}

			decoded, format, err := image.Decode(&buf)
			if err != nil {
				t.Fatalf("Decoding failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("Expected format %s, got %s", tt.format, format)
			}
			if decoded.Bounds() != src.Bounds() {
				t.Errorf("Expected bounds %v, got %v", src.Bounds(), decoded.Bounds())
			}

			if !tt.lossless {
				return
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					r1, g1, b1, a1 := src.At(x, y).RGBA()
					r2, g2, b2, a2 := decoded.At(x, y).RGBA()
					if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
						t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, src.At(x, y), decoded.At(x, y))
					}
				}
			}
		})
	}
}

func TestEncoderFor_Unsupported(t *testing.T) {
	for _, path := range []string{"out.exr", "out", "out.png.txt"} {
		if _, err := EncoderFor(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("EncoderFor(%q): expected ErrUnsupportedFormat, got %v", path, err)
		}
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "renders", "out.png")

	if err := SaveImage(path, createTestImage()); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open saved image: %v", err)
	}
	defer f.Close()

	decoded, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode saved image: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected png, got %s", format)
	}
	if r, g, b, _ := decoded.At(1, 0).RGBA(); r != 0xffff || g != 0 || b != 0 {
		t.Errorf("Expected red pixel at (1,0), got %v", decoded.At(1, 0))
	}
}

func TestSaveImage_UnsupportedWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")

	err := SaveImage(path, createTestImage())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("Expected no file to be written, stat returned %v", statErr)
	}
}
