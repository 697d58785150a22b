package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"redseam/internal/api"
	"redseam/internal/cart"
)

// cartPage shows the mirror held by the cart manager and drives per-line
// mutations. A line whose busy marker is set has its controls disabled; the
// rest of the cart stays interactive.
type cartPage struct {
	styles Styles
	cart   *cart.Manager

	cursor int

	// checkout form
	checkingOut bool
	inputs      []textinput.Model
	focused     int

	width  int
	height int
}

var checkoutFields = []string{"Name", "Surname", "Email", "Zip code", "Address"}

func newCartPage(styles Styles, carts *cart.Manager) cartPage {
	inputs := make([]textinput.Model, len(checkoutFields))
	for i, label := range checkoutFields {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 64
		in.Width = 28
		inputs[i] = in
	}
	return cartPage{styles: styles, cart: carts, inputs: inputs}
}

func (c *cartPage) setSize(w, h int) {
	c.width, c.height = w, h
}

func (c cartPage) capturing() bool { return c.checkingOut }

func (c cartPage) update(msg tea.Msg, root *Model) (cartPage, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	if c.checkingOut {
		return c.updateCheckoutForm(key, root)
	}

	lines := c.cart.Lines()
	if c.cursor >= len(lines) && c.cursor > 0 {
		c.cursor = len(lines) - 1
	}

	switch key.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(lines)-1 {
			c.cursor++
		}
	case "+", "=":
		if c.cursor < len(lines) {
			line := lines[c.cursor]
			if c.cart.Busy(line.ID) {
				return c, nil // controls disabled for this line only
			}
			return c, root.updateQuantity(line.ID, line.Quantity+1)
		}
	case "-":
		if c.cursor < len(lines) {
			line := lines[c.cursor]
			if c.cart.Busy(line.ID) {
				return c, nil
			}
			// Quantity 0 routes to removal inside the manager.
			return c, root.updateQuantity(line.ID, line.Quantity-1)
		}
	case "d":
		if c.cursor < len(lines) {
			line := lines[c.cursor]
			if c.cart.Busy(line.ID) {
				return c, nil
			}
			return c, root.removeLine(line.ID)
		}
	case "r":
		return c, root.fetchCart()
	case "C":
		if len(lines) == 0 {
			root.setBanner("You've got nothing in your cart just yet...", true)
			return c, nil
		}
		c.checkingOut = true
		c.focused = 0
		c.inputs[0].Focus()
		return c, textinput.Blink
	}
	return c, nil
}

func (c cartPage) updateCheckoutForm(key tea.KeyMsg, root *Model) (cartPage, tea.Cmd) {
	switch key.String() {
	case "esc":
		c.checkingOut = false
		c.inputs[c.focused].Blur()
		return c, nil
	case "tab", "down":
		c.inputs[c.focused].Blur()
		c.focused = (c.focused + 1) % len(c.inputs)
		c.inputs[c.focused].Focus()
		return c, nil
	case "shift+tab", "up":
		c.inputs[c.focused].Blur()
		c.focused = (c.focused - 1 + len(c.inputs)) % len(c.inputs)
		c.inputs[c.focused].Focus()
		return c, nil
	case "enter":
		c.checkingOut = false
		c.inputs[c.focused].Blur()
		return c, root.checkout(c.checkoutParams())
	}

	var cmd tea.Cmd
	c.inputs[c.focused], cmd = c.inputs[c.focused].Update(key)
	return c, cmd
}

// checkoutParams collects the optional shipping fields; an untouched form
// sends no body at all.
func (c cartPage) checkoutParams() *api.CheckoutParams {
	values := make([]string, len(c.inputs))
	empty := true
	for i := range c.inputs {
		values[i] = strings.TrimSpace(c.inputs[i].Value())
		if values[i] != "" {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return &api.CheckoutParams{
		Name:    values[0],
		Surname: values[1],
		Email:   values[2],
		ZipCode: values[3],
		Address: values[4],
	}
}

func (c cartPage) view() string {
	var sb strings.Builder
	sb.WriteString(c.styles.Title.Render(fmt.Sprintf("Shopping Cart (%d)", c.cart.UniqueCount())))
	sb.WriteString("\n\n")

	lines := c.cart.Lines()
	if len(lines) == 0 {
		sb.WriteString("Ooops!\n")
		sb.WriteString(c.styles.Muted.Render("You've got nothing in your cart just yet..."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, line := range lines {
		row := fmt.Sprintf("%-28s %-10s %-5s x%-3d %9.2f",
			clip(line.Name, 28), line.Color, line.Size, line.Quantity, line.TotalPrice)
		switch {
		case c.cart.Busy(line.ID):
			sb.WriteString(c.styles.Muted.Render("~ " + row + "  (updating)"))
		case i == c.cursor:
			sb.WriteString(c.styles.Selected.Render("> " + row))
		default:
			sb.WriteString("  " + row)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Items subtotal: %9.2f\n", c.cart.Subtotal()))
	sb.WriteString(fmt.Sprintf("Delivery:       %9.2f\n", c.cart.Delivery()))
	sb.WriteString(c.styles.Title.Render(fmt.Sprintf("Total:          %9.2f", c.cart.Total())))
	sb.WriteString("\n")

	if c.checkingOut {
		sb.WriteString("\n")
		sb.WriteString(c.styles.Title.Render("Checkout"))
		sb.WriteString(c.styles.Muted.Render("  (all fields optional; enter submits, esc cancels)"))
		sb.WriteString("\n")
		for i := range c.inputs {
			sb.WriteString(fmt.Sprintf("%-10s %s\n", checkoutFields[i]+":", c.inputs[i].View()))
		}
	} else {
		sb.WriteString("\n")
		sb.WriteString(c.styles.Muted.Render("+/- quantity  d remove  C checkout  r refresh"))
	}
	return sb.String()
}
