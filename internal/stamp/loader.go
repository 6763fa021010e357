package stamp

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Source produces encoded image bytes on demand, such as a download. Its
// error surfaces as a decode failure of that one item.
type Source func() ([]byte, error)

// Load converts an image source into an NRGBA bitmap with its origin at
// (0,0). Accepted sources are an image.Image, encoded image bytes, a file
// path or a Source. The result never aliases the caller's pixels.
func Load(src any) (*image.NRGBA, error) {
	switch v := src.(type) {
	case image.Image:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedInput, src)
		}
		return imaging.Clone(v), nil
	case Source:
		if v == nil {
			return nil, fmt.Errorf("%w: nil source", ErrUnsupportedInput)
		}
		data, err := v()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return Load(data)
	case []byte:
		img, err := imaging.Decode(bytes.NewReader(v), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return imaging.Clone(img), nil
	case string:
		return loadFile(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, src)
	}
}

func loadFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return imaging.Clone(img), nil
}

// IsImageFile reports whether name is a visible file in a format Load can
// decode
func IsImageFile(name string) bool {
	base := filepath.Base(name)
	if base == "" || base[0] == '.' {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}
