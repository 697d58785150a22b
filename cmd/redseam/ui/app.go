package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"redseam/internal/api"
	"redseam/internal/cart"
	"redseam/internal/catalog"
	"redseam/internal/session"
	"redseam/internal/store"
)

// Deps are the explicitly-injected application objects. The UI owns no
// state of its own beyond what it displays.
type Deps struct {
	Client     *api.Client
	Sessions   *session.Manager
	Cart       *cart.Manager
	History    *store.Store
	BrowsePath string
}

type page int

const (
	pageProducts page = iota
	pageDetail
	pageCart
)

// Model is the root bubbletea model of the browse interface.
type Model struct {
	deps   Deps
	styles Styles

	page     page
	products productsPage
	detail   detailPage
	cartPane cartPage

	width  int
	height int

	// Transient banner shown in the footer; replaced by the next event.
	banner string
	isErr  bool
}

// New builds the browse model. Browse state is seeded from the persisted
// query mirror, so the listing resumes where the last session left off.
func New(deps Deps) Model {
	styles := NewStyles()
	filters := catalog.LoadQuery(deps.BrowsePath)
	return Model{
		deps:     deps,
		styles:   styles,
		products: newProductsPage(styles, filters),
		detail:   newDetailPage(styles),
		cartPane: newCartPage(styles, deps.Cart),
	}
}

// Init kicks off the initial listing fetch, plus a cart fetch when a session
// exists.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadProducts(m.products.filters)}
	if m.deps.Sessions.Authenticated() {
		cmds = append(cmds, m.fetchCart())
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the active page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.products.setSize(msg.Width, msg.Height)
		m.detail.setSize(msg.Width, msg.Height)
		m.cartPane.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global keys only when no text input is capturing
		if !m.capturing() {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "1":
				m.page = pageProducts
				return m, nil
			case "2":
				if m.deps.Sessions.Authenticated() {
					m.page = pageCart
					return m, m.fetchCart()
				}
				m.setBanner("Please log in to manage your cart", true)
				return m, nil
			case "esc":
				if m.page != pageProducts {
					m.page = pageProducts
					return m, nil
				}
			}
		}

	case productsLoadedMsg:
		m.products.setResults(msg.filters, msg.resp)
		m.clearBanner()
		return m, nil

	case productLoadedMsg:
		m.detail.setProduct(msg.product)
		m.page = pageDetail
		m.clearBanner()
		return m, nil

	case cartSyncedMsg:
		m.setBanner("Cart updated", false)
		return m, nil

	case checkoutDoneMsg:
		text := msg.message
		if text == "" {
			text = "Order placed. Thank you!"
		}
		m.setBanner(text, false)
		m.page = pageProducts
		return m, nil

	case errMsg:
		m.setBanner(cart.UserMessage(msg.err), true)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.page {
	case pageProducts:
		m.products, cmd = m.products.update(msg, &m)
	case pageDetail:
		m.detail, cmd = m.detail.update(msg, &m)
	case pageCart:
		m.cartPane, cmd = m.cartPane.update(msg, &m)
	}
	return m, cmd
}

// View renders the active page with the shared header and footer.
func (m Model) View() string {
	header := m.styles.Header.Render("RedSeam Clothing")
	if user := m.deps.Sessions.Current(); user != nil {
		header += m.styles.Muted.Render("  -  " + user.Username)
	}

	var body string
	switch m.page {
	case pageProducts:
		body = m.products.view()
	case pageDetail:
		body = m.detail.view()
	case pageCart:
		body = m.cartPane.view()
	}

	footer := m.styles.Footer.Render("1 products  2 cart  esc back  q quit")
	if m.banner != "" {
		style := m.styles.Footer
		if m.isErr {
			style = m.styles.Banner
		}
		footer = style.Render(m.banner)
	}

	return header + "\n\n" + body + "\n" + footer
}

// capturing reports whether the active page has a focused text input, in
// which case global single-letter keys must pass through.
func (m Model) capturing() bool {
	switch m.page {
	case pageProducts:
		return m.products.capturing()
	case pageCart:
		return m.cartPane.capturing()
	}
	return false
}

func (m *Model) setBanner(text string, isErr bool) {
	m.banner = text
	m.isErr = isErr
}

func (m *Model) clearBanner() {
	m.banner = ""
	m.isErr = false
}
