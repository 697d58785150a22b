package selection

import (
	"testing"

	"redseam/internal/types"
)

func sampleProduct() *types.ProductDetail {
	return &types.ProductDetail{
		ID:              7,
		Name:            "Hooded Jacket",
		Images:          []string{"black.jpg", "navy.jpg", "red.jpg"},
		AvailableColors: []string{"Black", "Navy", "Red"},
		AvailableSizes:  []string{"S", "M", "L"},
		Quantity:        10,
	}
}

func TestNew_SeedsFirstValues(t *testing.T) {
	s := New(sampleProduct())

	if s.Image != "black.jpg" {
		t.Errorf("Image = %q, want black.jpg", s.Image)
	}
	if s.Color != "Black" {
		t.Errorf("Color = %q, want Black", s.Color)
	}
	if s.Size != "S" {
		t.Errorf("Size = %q, want S", s.Size)
	}
	if s.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", s.Quantity)
	}
}

func TestNew_EmptyProduct(t *testing.T) {
	s := New(&types.ProductDetail{})

	if s.Image != "" || s.Color != "" || s.Size != "" {
		t.Errorf("empty product should seed empty selection, got %+v", s)
	}
	if s.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", s.Quantity)
	}
}

func TestSelectColor_SwapsImage(t *testing.T) {
	s := New(sampleProduct())

	s.SelectColor("Navy")

	if s.Color != "Navy" {
		t.Errorf("Color = %q, want Navy", s.Color)
	}
	if s.Image != "navy.jpg" {
		t.Errorf("Image = %q, want navy.jpg", s.Image)
	}
}

func TestSelectImage_SwapsColor(t *testing.T) {
	s := New(sampleProduct())

	s.SelectImage("red.jpg")

	if s.Image != "red.jpg" {
		t.Errorf("Image = %q, want red.jpg", s.Image)
	}
	if s.Color != "Red" {
		t.Errorf("Color = %q, want Red", s.Color)
	}
}

func TestSelectColor_UnknownFallsBackToFirstImage(t *testing.T) {
	s := New(sampleProduct())
	s.SelectImage("red.jpg")

	s.SelectColor("Chartreuse")

	if s.Color != "Chartreuse" {
		t.Errorf("Color = %q, want Chartreuse", s.Color)
	}
	if s.Image != "black.jpg" {
		t.Errorf("Image = %q, want fallback black.jpg", s.Image)
	}
}

func TestImageForColor(t *testing.T) {
	colors := []string{"Black", "Navy", "Red"}
	images := []string{"black.jpg", "navy.jpg", "red.jpg"}

	tests := []struct {
		name   string
		color  string
		colors []string
		images []string
		want   string
	}{
		{"exact match", "Navy", colors, images, "navy.jpg"},
		{"unknown color falls back", "Green", colors, images, "black.jpg"},
		{"more colors than images", "Red", colors, images[:2], "black.jpg"},
		{"no images", "Black", colors, nil, ""},
		{"no colors", "Black", nil, images, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageForColor(tt.color, tt.colors, tt.images); got != tt.want {
				t.Errorf("ImageForColor(%q) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestColorForImage(t *testing.T) {
	colors := []string{"Black", "Navy", "Red"}
	images := []string{"black.jpg", "navy.jpg", "red.jpg"}

	tests := []struct {
		name   string
		image  string
		colors []string
		images []string
		want   string
	}{
		{"exact match", "red.jpg", colors, images, "Red"},
		{"unknown image falls back", "green.jpg", colors, images, "Black"},
		{"more images than colors", "red.jpg", colors[:2], images, "Black"},
		{"no colors", "red.jpg", nil, images, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorForImage(tt.image, tt.colors, tt.images); got != tt.want {
				t.Errorf("ColorForImage(%q) = %q, want %q", tt.image, got, tt.want)
			}
		})
	}
}

// Cycling color then image and back lands on a consistent pair; mismatched
// array lengths never panic.
func TestPositionalRoundTrip(t *testing.T) {
	s := New(sampleProduct())

	for _, c := range []string{"Navy", "Red", "Black"} {
		s.SelectColor(c)
		if got := ColorForImage(s.Image, []string{"Black", "Navy", "Red"}, []string{"black.jpg", "navy.jpg", "red.jpg"}); got != c {
			t.Errorf("round trip for %q landed on %q", c, got)
		}
	}
}

func TestSelectQuantity_StoredAsIs(t *testing.T) {
	s := New(sampleProduct())

	s.SelectQuantity(99)
	if s.Quantity != 99 {
		t.Errorf("Quantity = %d, want 99", s.Quantity)
	}
	s.SelectQuantity(-3)
	if s.Quantity != -3 {
		t.Errorf("Quantity = %d, want -3 (no clamping at this layer)", s.Quantity)
	}
}

func TestColorHex(t *testing.T) {
	if got := ColorHex("Black"); got != "#000000" {
		t.Errorf("ColorHex(Black) = %q", got)
	}
	if got := ColorHex("NoSuchColor"); got != "#6b7280" {
		t.Errorf("ColorHex fallback = %q, want #6b7280", got)
	}
}
