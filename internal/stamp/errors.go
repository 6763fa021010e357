package stamp

import (
	"errors"

	"github.com/lehigh-university-libraries/stickerkit/internal/background"
)

var (
	ErrDecode           = errors.New("image could not be decoded")
	ErrUnsupportedInput = errors.New("unsupported image input")
	ErrInvalidGrid      = errors.New("invalid grid")
	ErrStorage          = errors.New("storage failure")

	ErrCapabilityUnavailable = background.ErrCapabilityUnavailable
)
