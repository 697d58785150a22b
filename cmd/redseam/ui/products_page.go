package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"redseam/internal/catalog"
	"redseam/internal/types"
)

// productsPage renders one catalog page and drives the filter/sort/
// pagination state. Filter and sort changes reset to page 1 through the
// catalog state type; this page never touches the page number directly for
// those actions.
type productsPage struct {
	styles  Styles
	filters catalog.Filters
	resp    *types.ProductsResponse

	cursor  int
	loading bool

	// price-filter entry
	filtering bool
	minInput  textinput.Model
	maxInput  textinput.Model

	width  int
	height int
}

func newProductsPage(styles Styles, filters catalog.Filters) productsPage {
	min := textinput.New()
	min.Placeholder = "from"
	min.CharLimit = 8
	min.Width = 8
	max := textinput.New()
	max.Placeholder = "to"
	max.CharLimit = 8
	max.Width = 8

	return productsPage{
		styles:   styles,
		filters:  filters,
		loading:  true,
		minInput: min,
		maxInput: max,
	}
}

func (p *productsPage) setSize(w, h int) {
	p.width, p.height = w, h
}

func (p *productsPage) setResults(f catalog.Filters, resp *types.ProductsResponse) {
	p.filters = f
	p.resp = resp
	p.loading = false
	if p.cursor >= len(resp.Data) {
		p.cursor = 0
	}
}

func (p productsPage) capturing() bool { return p.filtering }

func (p productsPage) update(msg tea.Msg, root *Model) (productsPage, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if p.filtering {
		return p.updateFilterEntry(key, root)
	}

	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.resp != nil && p.cursor < len(p.resp.Data)-1 {
			p.cursor++
		}
	case "enter":
		if p.resp != nil && p.cursor < len(p.resp.Data) {
			return p, root.loadProduct(p.resp.Data[p.cursor].ID)
		}
	case "right", "n":
		if p.resp != nil && p.filters.CurrentPage() < p.resp.Meta.LastPage {
			p.filters.SetPage(p.filters.CurrentPage() + 1)
			p.loading = true
			return p, root.loadProducts(p.filters)
		}
	case "left", "b":
		if p.filters.CurrentPage() > 1 {
			p.filters.SetPage(p.filters.CurrentPage() - 1)
			p.loading = true
			return p, root.loadProducts(p.filters)
		}
	case "s":
		p.filters.SetSort(nextSort(p.filters.Sort))
		p.loading = true
		return p, root.loadProducts(p.filters)
	case "f":
		p.filtering = true
		p.minInput.SetValue(formatBound(p.filters.PriceFrom))
		p.maxInput.SetValue(formatBound(p.filters.PriceTo))
		p.minInput.Focus()
		return p, textinput.Blink
	case "x":
		p.filters.ClearPrice()
		p.loading = true
		return p, root.loadProducts(p.filters)
	case "r":
		p.loading = true
		return p, root.loadProducts(p.filters)
	}
	return p, nil
}

func (p productsPage) updateFilterEntry(key tea.KeyMsg, root *Model) (productsPage, tea.Cmd) {
	switch key.String() {
	case "esc":
		p.filtering = false
		p.minInput.Blur()
		p.maxInput.Blur()
		return p, nil
	case "tab":
		if p.minInput.Focused() {
			p.minInput.Blur()
			p.maxInput.Focus()
		} else {
			p.maxInput.Blur()
			p.minInput.Focus()
		}
		return p, nil
	case "enter":
		min, _ := strconv.ParseFloat(p.minInput.Value(), 64)
		max, _ := strconv.ParseFloat(p.maxInput.Value(), 64)
		p.filters.SetPrice(min, max)
		p.filtering = false
		p.minInput.Blur()
		p.maxInput.Blur()
		p.loading = true
		return p, root.loadProducts(p.filters)
	}

	var cmd tea.Cmd
	if p.minInput.Focused() {
		p.minInput, cmd = p.minInput.Update(key)
	} else {
		p.maxInput, cmd = p.maxInput.Update(key)
	}
	return p, cmd
}

func (p productsPage) view() string {
	var sb strings.Builder

	sb.WriteString(p.styles.Title.Render("Products"))
	sb.WriteString("  ")
	sb.WriteString(p.styles.Muted.Render(p.filterSummary()))
	sb.WriteString("\n\n")

	if p.filtering {
		sb.WriteString("Price ")
		sb.WriteString(p.minInput.View())
		sb.WriteString(" - ")
		sb.WriteString(p.maxInput.View())
		sb.WriteString(p.styles.Muted.Render("  (enter apply, esc cancel)"))
		sb.WriteString("\n\n")
	}

	switch {
	case p.loading:
		sb.WriteString(p.styles.Muted.Render("Loading..."))
		sb.WriteString("\n")
	case p.resp == nil || len(p.resp.Data) == 0:
		sb.WriteString("No products match the current filter.\n")
	default:
		for i, prod := range p.resp.Data {
			line := fmt.Sprintf("%-6d %-36s %9.2f", prod.ID, clip(prod.Name, 36), prod.Price)
			if i == p.cursor {
				sb.WriteString(p.styles.Selected.Render("> " + line))
			} else {
				sb.WriteString("  " + line)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(p.pager())
	}

	sb.WriteString("\n")
	sb.WriteString(p.styles.Muted.Render("enter view  n/b page  s sort  f filter  x clear"))
	return sb.String()
}

func (p productsPage) filterSummary() string {
	parts := []string{catalog.SortLabel(p.filters.Sort)}
	if p.filters.PriceFrom > 0 || p.filters.PriceTo > 0 {
		parts = append(parts, fmt.Sprintf("price %s-%s",
			formatBound(p.filters.PriceFrom), formatBound(p.filters.PriceTo)))
	}
	return strings.Join(parts, "  ")
}

// pager renders the visible-page row; ellipsis entries are placeholders.
func (p productsPage) pager() string {
	if p.resp == nil || p.resp.Meta.LastPage <= 1 {
		return ""
	}
	current := p.resp.Meta.CurrentPage
	items := catalog.VisiblePages(current, p.resp.Meta.LastPage, catalog.DefaultMaxVisible)

	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch {
		case !item.IsPage():
			parts = append(parts, p.styles.Muted.Render("..."))
		case int(item) == current:
			parts = append(parts, p.styles.PageCur.Render(strconv.Itoa(int(item))))
		default:
			parts = append(parts, strconv.Itoa(int(item)))
		}
	}
	return strings.Join(parts, " ")
}

// nextSort cycles through the sort options in display order.
func nextSort(current string) string {
	for i, opt := range catalog.SortOptions {
		if opt.Value == current {
			return catalog.SortOptions[(i+1)%len(catalog.SortOptions)].Value
		}
	}
	return ""
}

func formatBound(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
