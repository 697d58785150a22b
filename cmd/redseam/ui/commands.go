package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"redseam/internal/api"
	"redseam/internal/catalog"
	"redseam/internal/logging"
	"redseam/internal/types"
)

// Messages produced by the async commands below. Every remote call is
// single-shot; a failure is delivered once and the shopper repeats the
// action manually.

type productsLoadedMsg struct {
	filters catalog.Filters
	resp    *types.ProductsResponse
}

type productLoadedMsg struct {
	product *types.ProductDetail
}

type cartSyncedMsg struct{}

type checkoutDoneMsg struct {
	message string
}

type errMsg struct {
	err error
}

const requestTimeout = 30 * time.Second

func (m Model) loadProducts(f catalog.Filters) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := m.deps.Client.ListProducts(ctx, f.ListParams())
		if err != nil {
			return errMsg{err}
		}
		// Mirror the accepted state so a restart resumes here.
		if err := catalog.SaveQuery(m.deps.BrowsePath, f); err != nil {
			logging.Get(logging.CategoryUI).Warn("failed to persist browse state: %v", err)
		}
		return productsLoadedMsg{filters: f, resp: resp}
	}
}

func (m Model) loadProduct(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		p, err := m.deps.Client.GetProduct(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		if m.deps.History != nil {
			if err := m.deps.History.RecordView(p); err != nil {
				logging.Get(logging.CategoryUI).Warn("failed to record view: %v", err)
			}
		}
		return productLoadedMsg{product: p}
	}
}

func (m Model) fetchCart() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.deps.Cart.Fetch(ctx); err != nil {
			return errMsg{err}
		}
		return cartSyncedMsg{}
	}
}

func (m Model) addToCart(productID int, color, size string, quantity int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.deps.Cart.Add(ctx, productID, color, size, quantity); err != nil {
			return errMsg{err}
		}
		return cartSyncedMsg{}
	}
}

func (m Model) updateQuantity(productID, quantity int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.deps.Cart.UpdateQuantity(ctx, productID, quantity); err != nil {
			return errMsg{err}
		}
		return cartSyncedMsg{}
	}
}

func (m Model) removeLine(productID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.deps.Cart.Remove(ctx, productID); err != nil {
			return errMsg{err}
		}
		return cartSyncedMsg{}
	}
}

func (m Model) checkout(params *api.CheckoutParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg, err := m.deps.Cart.Checkout(ctx, params)
		if err != nil {
			return errMsg{err}
		}
		return checkoutDoneMsg{message: msg}
	}
}
