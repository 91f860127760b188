package pixpaint

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/pixpaint/utils"
	"golang.org/x/image/bmp"
)

// DefaultExportName is the file name proposed when saving the canvas.
const DefaultExportName = "paint.png"

// ErrUnsupportedFormat is returned when encoding to an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedExtensions lists the file extensions accepted for input and output.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// Decode reads an image in any registered format and returns it as a
// non-premultiplied buffer with its origin at (0, 0).
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return imaging.Clone(img), nil
}

// LoadImage opens and decodes the image file at path. Non image files are rejected.
func LoadImage(path string) (*image.NRGBA, error) {
	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	if !strings.HasPrefix(ctype, "image/") {
		return nil, fmt.Errorf("%s is not an image file (%s)", path, ctype)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes img to w in the format given by the file extension ext
// (".png", ".jpg", ".jpeg" or ".bmp"). An empty extension encodes PNG.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case "", ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// SaveImage encodes img into the file at path, picking the format from the extension.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := Encode(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string) bool {
	return hasExtension(ext, SupportedExtensions)
}
