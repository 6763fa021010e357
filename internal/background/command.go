package background

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"

	"github.com/disintegration/imaging"
)

// Command pipes a PNG through an external matting tool such as rembg,
// reading the result from stdout.
type Command struct {
	Name string
	Args []string
}

// Available reports whether the tool can be found on PATH
func (c *Command) Available() bool {
	_, err := exec.LookPath(c.Name)
	return err == nil
}

func (c *Command) Strip(img *image.NRGBA) (*image.NRGBA, error) {
	if !c.Available() {
		return nil, fmt.Errorf("%w: %s not found in PATH", ErrCapabilityUnavailable, c.Name)
	}

	var input bytes.Buffer
	if err := imaging.Encode(&input, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return nil, fmt.Errorf("failed to encode image for %s: %w", c.Name, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdin = &input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", c.Name, err, strings.TrimSpace(stderr.String()))
	}

	decoded, err := imaging.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s output: %w", c.Name, err)
	}
	out := imaging.Clone(decoded)

	if out.Bounds().Size() != img.Bounds().Size() {
		return nil, fmt.Errorf("%s changed image size from %v to %v", c.Name, img.Bounds().Size(), out.Bounds().Size())
	}

	return out, nil
}
