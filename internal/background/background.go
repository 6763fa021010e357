// Package background removes image backgrounds, leaving transparent pixels.
//
// The capability is optional: deployments without a usable implementation
// get Unavailable, which reports ErrCapabilityUnavailable on every call so
// callers decide whether to continue without background removal.
package background

import (
	"errors"
	"fmt"
	"image"

	"github.com/lehigh-university-libraries/stickerkit/internal/config"
)

var ErrCapabilityUnavailable = errors.New("background removal is not available")

// Stripper returns a copy of img with the same bounds and background
// pixels set to zero alpha.
type Stripper interface {
	Strip(img *image.NRGBA) (*image.NRGBA, error)
}

// Unavailable is the stripper for deployments without background removal
type Unavailable struct {
	Reason string
}

func (u Unavailable) Strip(*image.NRGBA) (*image.NRGBA, error) {
	if u.Reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrCapabilityUnavailable, u.Reason)
	}
	return nil, ErrCapabilityUnavailable
}

// Usable reports whether s can be expected to strip backgrounds
func Usable(s Stripper) bool {
	switch v := s.(type) {
	case nil, Unavailable:
		return false
	case *Command:
		return v.Available()
	}
	return true
}

// New selects the stripper configured for this deployment
func New(cfg config.BackgroundConfig) (Stripper, error) {
	switch cfg.Mode {
	case config.BackgroundNone, "":
		return Unavailable{Reason: "background.mode is none"}, nil
	case config.BackgroundColorKey:
		return &ColorKey{Tolerance: cfg.Tolerance, Key: cfg.Key}, nil
	case config.BackgroundCommand:
		if len(cfg.Command) == 0 {
			return nil, fmt.Errorf("background command is empty")
		}
		return &Command{Name: cfg.Command[0], Args: cfg.Command[1:]}, nil
	default:
		return nil, fmt.Errorf("unsupported background mode: %s", cfg.Mode)
	}
}
