package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lehigh-university-libraries/stickerkit/internal/providers"
)

// ErrNoImage is returned when a response carries no inline image part
var ErrNoImage = errors.New("no image returned from Gemini")

// Gemini generates source images with Google Gemini
type Gemini struct{}

// New returns a new Gemini generator
func New() *Gemini {
	return &Gemini{}
}

var _ providers.Generator = (*Gemini)(nil)

// GenerateImage sends the prompt unchanged and returns the first image part
func (g *Gemini) GenerateImage(ctx context.Context, config providers.Config) ([]byte, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if strings.TrimSpace(config.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)
	model.SetTemperature(float32(config.Temperature))

	resp, err := model.GenerateContent(ctx, genai.Text(config.Prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}

	return firstImage(candidate.Content.Parts)
}

// firstImage returns the data of the first inline image part
func firstImage(parts []genai.Part) ([]byte, error) {
	var text []string
	for _, part := range parts {
		switch p := part.(type) {
		case genai.Blob:
			if strings.HasPrefix(p.MIMEType, "image/") && len(p.Data) > 0 {
				return p.Data, nil
			}
		case genai.Text:
			text = append(text, string(p))
		}
	}

	if len(text) > 0 {
		return nil, fmt.Errorf("%w: model replied with text: %s", ErrNoImage, strings.Join(text, " "))
	}
	return nil, ErrNoImage
}
