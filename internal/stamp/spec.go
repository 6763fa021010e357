package stamp

import "fmt"

// LINE Creators Market sticker geometry, see
// https://creator.line.me/en/guideline/sticker/
const (
	StickerWidth  = 370
	StickerHeight = 320
	MainWidth     = 240
	MainHeight    = 240
	TabWidth      = 96
	TabHeight     = 74

	// Padding is the transparent margin kept around sticker content
	Padding = 10

	MinItems    = 8
	MaxItems    = 40
	CommonItems = 16

	MainFilename = "main.png"
	TabFilename  = "tab.png"
)

// Target is a canvas size plus the box the content must fit inside
type Target struct {
	Width            int
	Height           int
	MaxContentWidth  int
	MaxContentHeight int
}

// Spec is the fixed sticker contract every output satisfies
type Spec struct {
	Sticker  Target
	Main     Target
	Tab      Target
	Padding  int
	MinItems int
	MaxItems int
}

// DefaultSpec returns the LINE sticker specification
func DefaultSpec() Spec {
	return Spec{
		Sticker: Target{
			Width:            StickerWidth,
			Height:           StickerHeight,
			MaxContentWidth:  StickerWidth - 2*Padding,
			MaxContentHeight: StickerHeight - 2*Padding,
		},
		Main:     Target{Width: MainWidth, Height: MainHeight, MaxContentWidth: MainWidth, MaxContentHeight: MainHeight},
		Tab:      Target{Width: TabWidth, Height: TabHeight, MaxContentWidth: TabWidth, MaxContentHeight: TabHeight},
		Padding:  Padding,
		MinItems: MinItems,
		MaxItems: MaxItems,
	}
}

// Filename returns the canonical sticker file name for a 1-based index
func Filename(index int) string {
	return fmt.Sprintf("%02d.png", index)
}
