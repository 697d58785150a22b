// Package cart keeps an in-memory mirror of the server-side cart and exposes
// the mutations the storefront needs. The server stays authoritative: every
// successful mutation is followed by a full refetch, and local state is only
// ever replaced wholesale after a refetch succeeds. Failures leave the mirror
// untouched.
package cart

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"redseam/internal/api"
	"redseam/internal/logging"
	"redseam/internal/types"
)

var (
	// ErrStockExhausted means the product's remaining headroom (live stock
	// minus quantity already in the cart) is zero; no request was sent.
	ErrStockExhausted = errors.New("no more stock available for this product")

	// ErrLineBusy means a mutation for the same product is still in
	// flight. Mutations on one line are serialized; retry when the busy
	// marker clears.
	ErrLineBusy = errors.New("another update for this product is in progress")
)

// EventKind tags cart notifications.
type EventKind int

const (
	EventRefreshed EventKind = iota // mirror replaced after a successful refetch
	EventError                      // a user action failed; Err carries the cause
	EventCheckedOut                 // checkout succeeded; Message is the server's
)

// Event is delivered to subscribers after state changes.
type Event struct {
	Kind    EventKind
	Err     error
	Message string
}

// ReceiptRecorder persists checkout receipts. The history store implements
// it; a nil recorder disables recording.
type ReceiptRecorder interface {
	RecordOrder(subtotal, delivery, total float64, lineCount int, message string) error
}

// TokenChecker reports whether a user is logged in. session.Manager
// implements it.
type TokenChecker interface {
	Authenticated() bool
}

// Manager synchronizes the local cart mirror with the server.
type Manager struct {
	api      *api.Client
	auth     TokenChecker
	receipts ReceiptRecorder
	delivery float64

	mu    sync.Mutex
	lines []types.CartLine
	busy  map[int]bool

	subMu sync.Mutex
	subs  []func(Event)
}

// NewManager wires a cart manager. delivery is the flat delivery cost shown
// at checkout; receipts may be nil.
func NewManager(client *api.Client, auth TokenChecker, receipts ReceiptRecorder, delivery float64) *Manager {
	return &Manager{
		api:      client,
		auth:     auth,
		receipts: receipts,
		delivery: delivery,
		busy:     make(map[int]bool),
	}
}

// Subscribe registers an observer for cart events. The subscription is the
// explicit dependency: UI panes declare what they react to.
func (m *Manager) Subscribe(fn func(Event)) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) publish(ev Event) {
	m.subMu.Lock()
	subs := make([]func(Event), len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// acquire marks a product line busy, failing if it already is. The marker is
// keyed by product id so distinct lines can mutate concurrently.
func (m *Manager) acquire(productID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy[productID] {
		return ErrLineBusy
	}
	m.busy[productID] = true
	return nil
}

// release clears the busy marker. Always deferred so the marker cannot leak
// on any path, success or failure.
func (m *Manager) release(productID int) {
	m.mu.Lock()
	delete(m.busy, productID)
	m.mu.Unlock()
}

// Busy reports whether a mutation for the product is in flight. The UI uses
// it to disable only the affected line's controls.
func (m *Manager) Busy(productID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy[productID]
}

// Fetch resynchronizes the mirror with GET /cart. On failure the previous
// mirror is kept.
func (m *Manager) Fetch(ctx context.Context) error {
	if !m.auth.Authenticated() {
		return m.fail(api.ErrUnauthenticated)
	}

	lines, err := m.api.GetCart(ctx)
	if err != nil {
		return m.fail(err)
	}

	m.mu.Lock()
	m.lines = lines
	m.mu.Unlock()

	logging.Get(logging.CategoryCart).Debug("cart refreshed: %d lines", len(lines))
	m.publish(Event{Kind: EventRefreshed})
	return nil
}

// Clear drops the local mirror without touching the server. Called on
// logout, mirroring how the storefront empties the cart pane when the
// session ends.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.lines = nil
	m.mu.Unlock()
	m.publish(Event{Kind: EventRefreshed})
}

// Add puts quantity units of a product/color/size combination in the cart.
// It first fetches the product's live stock and the current server cart
// (concurrently), computes the remaining headroom for the product, and clamps
// the request to it. Zero headroom aborts with ErrStockExhausted before any
// mutation is issued.
func (m *Manager) Add(ctx context.Context, productID int, color, size string, quantity int) error {
	if !m.auth.Authenticated() {
		return m.fail(api.ErrUnauthenticated)
	}
	if err := m.acquire(productID); err != nil {
		return err
	}
	defer m.release(productID)

	var (
		product *types.ProductDetail
		remote  []types.CartLine
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = m.api.GetProduct(gctx, productID)
		return err
	})
	g.Go(func() error {
		var err error
		remote, err = m.api.GetCart(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return m.fail(err)
	}

	held := 0
	for _, line := range remote {
		if line.ID == productID {
			held += line.Quantity
		}
	}
	headroom := product.Quantity - held
	if headroom <= 0 {
		return m.fail(ErrStockExhausted)
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > headroom {
		quantity = headroom
	}

	// Unspecified variant falls back to the product's first option, the
	// same defaulting the detail view applies.
	if color == "" {
		if len(product.AvailableColors) > 0 {
			color = product.AvailableColors[0]
		} else {
			color = "Default"
		}
	}
	if size == "" {
		if len(product.AvailableSizes) > 0 {
			size = product.AvailableSizes[0]
		} else {
			size = "One Size"
		}
	}

	if _, err := m.api.AddToCart(ctx, productID, api.AddToCartParams{
		Color:    color,
		Size:     size,
		Quantity: quantity,
	}); err != nil {
		return m.fail(err)
	}

	logging.Get(logging.CategoryCart).Info("added product %d x%d (%s/%s)", productID, quantity, color, size)
	return m.Fetch(ctx)
}

// UpdateQuantity changes a line's quantity, clamped to [1, live stock].
// A requested quantity of zero or less is a removal and never reaches the
// update endpoint.
func (m *Manager) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		return m.Remove(ctx, productID)
	}
	if !m.auth.Authenticated() {
		return m.fail(api.ErrUnauthenticated)
	}
	if err := m.acquire(productID); err != nil {
		return err
	}
	defer m.release(productID)

	product, err := m.api.GetProduct(ctx, productID)
	if err != nil {
		return m.fail(err)
	}
	if quantity > product.Quantity {
		quantity = product.Quantity
	}
	if quantity < 1 {
		quantity = 1
	}

	if _, err := m.api.UpdateCartQuantity(ctx, productID, quantity); err != nil {
		return m.fail(err)
	}

	logging.Get(logging.CategoryCart).Info("updated product %d to x%d", productID, quantity)
	return m.Fetch(ctx)
}

// Remove deletes a line and resynchronizes.
func (m *Manager) Remove(ctx context.Context, productID int) error {
	if !m.auth.Authenticated() {
		return m.fail(api.ErrUnauthenticated)
	}
	if err := m.acquire(productID); err != nil {
		return err
	}
	defer m.release(productID)

	if err := m.api.RemoveFromCart(ctx, productID); err != nil {
		return m.fail(err)
	}

	logging.Get(logging.CategoryCart).Info("removed product %d", productID)
	return m.Fetch(ctx)
}

// Checkout finalizes the order, records a receipt, and resynchronizes (the
// server empties the cart on success).
func (m *Manager) Checkout(ctx context.Context, p *api.CheckoutParams) (string, error) {
	if !m.auth.Authenticated() {
		return "", m.fail(api.ErrUnauthenticated)
	}

	subtotal := m.Subtotal()
	count := m.UniqueCount()

	resp, err := m.api.Checkout(ctx, p)
	if err != nil {
		return "", m.fail(err)
	}

	if m.receipts != nil {
		if rerr := m.receipts.RecordOrder(subtotal, m.delivery, subtotal+m.delivery, count, resp.Message); rerr != nil {
			logging.Get(logging.CategoryCart).Warn("failed to record receipt: %v", rerr)
		}
	}

	m.publish(Event{Kind: EventCheckedOut, Message: resp.Message})
	if err := m.Fetch(ctx); err != nil {
		// The order went through; a failed refetch only staled the
		// mirror. Report success with the stale-mirror error logged.
		logging.Get(logging.CategoryCart).Warn("post-checkout refetch failed: %v", err)
	}
	return resp.Message, nil
}

func (m *Manager) fail(err error) error {
	m.publish(Event{Kind: EventError, Err: err})
	return err
}

// Lines returns a copy of the mirror, ordered by line id for stable display.
func (m *Manager) Lines() []types.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.CartLine, len(m.lines))
	copy(out, m.lines)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Subtotal is the sum of the server-computed line totals. No client-side
// price math happens anywhere else.
func (m *Manager) Subtotal() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, line := range m.lines {
		total += line.TotalPrice
	}
	return total
}

// Total is subtotal plus the flat delivery cost.
func (m *Manager) Total() float64 {
	return m.Subtotal() + m.delivery
}

// Delivery returns the configured flat delivery cost.
func (m *Manager) Delivery() float64 {
	return m.delivery
}

// ItemCount is the total number of units across all lines.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, line := range m.lines {
		n += line.Quantity
	}
	return n
}

// UniqueCount is the number of distinct lines.
func (m *Manager) UniqueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}

// UserMessage translates an error from any cart operation into the message
// shown to the shopper.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrUnauthenticated):
		return "Please log in to manage your cart"
	default:
		return err.Error()
	}
}
