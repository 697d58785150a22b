// Package selection tracks the shopper's choices on a product detail view:
// displayed image, color, size, and quantity. Color and image correspond
// positionally (the color at index i belongs to the image at index i); both
// lookups degrade to index 0 when the chosen value is missing, and never
// panic on mismatched arrays.
package selection

import "redseam/internal/types"

// Selection is the ephemeral per-view state. It enforces no stock bound on
// quantity; the caller clamps against live stock.
type Selection struct {
	Image    string
	Color    string
	Size     string
	Quantity int

	colors []string
	images []string
}

// New seeds a selection from a product: first image, first color, first
// size, quantity 1.
func New(p *types.ProductDetail) *Selection {
	s := &Selection{
		Quantity: 1,
		colors:   p.AvailableColors,
		images:   p.Images,
	}
	if len(p.Images) > 0 {
		s.Image = p.Images[0]
	}
	if len(p.AvailableColors) > 0 {
		s.Color = p.AvailableColors[0]
	}
	if len(p.AvailableSizes) > 0 {
		s.Size = p.AvailableSizes[0]
	}
	return s
}

// SelectColor sets the color and swaps the displayed image to the
// positionally corresponding one.
func (s *Selection) SelectColor(color string) {
	s.Color = color
	if img := ImageForColor(color, s.colors, s.images); img != "" {
		s.Image = img
	}
}

// SelectImage sets the displayed image and swaps the color to the
// positionally corresponding one.
func (s *Selection) SelectImage(image string) {
	s.Image = image
	if c := ColorForImage(image, s.colors, s.images); c != "" {
		s.Color = c
	}
}

// SelectSize stores the chosen size.
func (s *Selection) SelectSize(size string) {
	s.Size = size
}

// SelectQuantity stores the chosen quantity as-is.
func (s *Selection) SelectQuantity(n int) {
	s.Quantity = n
}

// ImageForColor resolves the image shown for a color by index
// correspondence, falling back to the first image.
func ImageForColor(color string, colors, images []string) string {
	if len(colors) == 0 || len(images) == 0 {
		return ""
	}
	for i, c := range colors {
		if c == color && i < len(images) {
			return images[i]
		}
	}
	return images[0]
}

// ColorForImage is the inverse lookup, falling back to the first color.
func ColorForImage(image string, colors, images []string) string {
	if len(colors) == 0 || len(images) == 0 {
		return ""
	}
	for i, img := range images {
		if img == image && i < len(colors) {
			return colors[i]
		}
	}
	return colors[0]
}
