package providers

import (
	"context"
)

// Config represents the configuration for an image generation request
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Generator produces a source image from a prompt. The returned bytes are an
// encoded image that the sticker loader can decode.
type Generator interface {
	GenerateImage(ctx context.Context, config Config) ([]byte, error)
}
