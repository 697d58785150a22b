package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"redseam/internal/selection"
	"redseam/internal/types"
)

// detailPage shows one product and tracks the shopper's variant selection.
// Color and image cycling stay in lockstep through the positional
// correspondence in the selection package.
type detailPage struct {
	styles  Styles
	product *types.ProductDetail
	sel     *selection.Selection

	width  int
	height int
}

func newDetailPage(styles Styles) detailPage {
	return detailPage{styles: styles}
}

func (d *detailPage) setSize(w, h int) {
	d.width, d.height = w, h
}

func (d *detailPage) setProduct(p *types.ProductDetail) {
	d.product = p
	d.sel = selection.New(p)
}

func (d detailPage) update(msg tea.Msg, root *Model) (detailPage, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || d.product == nil {
		return d, nil
	}

	switch key.String() {
	case "c":
		if next := cycle(d.product.AvailableColors, d.sel.Color); next != "" {
			d.sel.SelectColor(next)
		}
	case "i":
		if next := cycle(d.product.Images, d.sel.Image); next != "" {
			d.sel.SelectImage(next)
		}
	case "z":
		if next := cycle(d.product.AvailableSizes, d.sel.Size); next != "" {
			d.sel.SelectSize(next)
		}
	case "+", "=":
		// The page owns the stock bound; the selection type just stores
		// the integer.
		if d.sel.Quantity < d.product.Quantity {
			d.sel.SelectQuantity(d.sel.Quantity + 1)
		}
	case "-":
		if d.sel.Quantity > 1 {
			d.sel.SelectQuantity(d.sel.Quantity - 1)
		}
	case "a":
		if !root.deps.Sessions.Authenticated() {
			root.setBanner("Please log in to add items to your cart", true)
			return d, nil
		}
		if d.product.Quantity == 0 {
			root.setBanner("This product is out of stock", true)
			return d, nil
		}
		if root.deps.Cart.Busy(d.product.ID) {
			root.setBanner("Still adding this product, one moment...", true)
			return d, nil
		}
		root.setBanner("Adding to cart...", false)
		return d, root.addToCart(d.product.ID, d.sel.Color, d.sel.Size, d.sel.Quantity)
	}
	return d, nil
}

func (d detailPage) view() string {
	if d.product == nil {
		return d.styles.Muted.Render("Loading...")
	}
	p := d.product

	var sb strings.Builder
	sb.WriteString(d.styles.Title.Render(fmt.Sprintf("%s  #%d", p.Name, p.ID)))
	sb.WriteString("\n")
	sb.WriteString(d.styles.Accent.Render(fmt.Sprintf("$ %.2f", p.Price)))
	sb.WriteString(d.styles.Muted.Render(fmt.Sprintf("   %s  -  %d in stock", p.Brand.Name, p.Quantity)))
	sb.WriteString("\n\n")

	if len(p.AvailableColors) > 0 {
		sb.WriteString("Color: ")
		for _, color := range p.AvailableColors {
			swatch := lipgloss.NewStyle().
				Foreground(lipgloss.Color(selection.ColorHex(color))).
				Render("■")
			if color == d.sel.Color {
				sb.WriteString(d.styles.Selected.Render("["+color+"] ") + swatch + " ")
			} else {
				sb.WriteString(color + " " + swatch + "  ")
			}
		}
		sb.WriteString("\n")
	}

	if len(p.Images) > 0 {
		idx := indexOf(p.Images, d.sel.Image)
		sb.WriteString(fmt.Sprintf("Image: %d/%d  %s\n", idx+1, len(p.Images), d.styles.Muted.Render(d.sel.Image)))
	}

	if len(p.AvailableSizes) > 0 {
		sb.WriteString("Size:  ")
		for _, size := range p.AvailableSizes {
			if size == d.sel.Size {
				sb.WriteString(d.styles.Selected.Render("[" + size + "] "))
			} else {
				sb.WriteString(size + " ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Qty:   %d\n", d.sel.Quantity))

	if p.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(renderDescription(p.Description, d.width))
	}

	sb.WriteString("\n")
	sb.WriteString(d.styles.Muted.Render("c color  i image  z size  +/- qty  a add to cart"))
	return sb.String()
}

// renderDescription runs the description through glamour; plain text passes
// through markdown rendering unharmed.
func renderDescription(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-4, 76)),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// cycle returns the element after current, wrapping; "" for empty lists.
func cycle(values []string, current string) string {
	if len(values) == 0 {
		return ""
	}
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func indexOf(values []string, v string) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}
