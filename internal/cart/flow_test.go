package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"redseam/internal/api"
	"redseam/internal/session"
	"redseam/internal/types"
)

// Full shopping flow against a scripted store: log in, persist the session,
// add a product, verify totals, check out.
func TestShoppingFlow(t *testing.T) {
	store := newFakeStore()
	store.stock[42] = types.ProductDetail{ID: 42, Name: "Denim Jacket", Price: 30, Quantity: 8,
		AvailableColors: []string{"Blue"}, AvailableSizes: []string{"M", "L"}}

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var p api.LoginParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		if p.Email != "shopper@example.com" || p.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(types.AuthResponse{
			Token: "flow-token",
			User:  types.User{ID: 1, Username: "shopper", Email: p.Email},
		})
	})
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Everything past login requires the bearer issued above.
		if r.Header.Get("Authorization") != "Bearer flow-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		store.ServeHTTP(w, r)
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sessions := session.NewManager(filepath.Join(t.TempDir(), "session.json"))
	client, err := api.New(srv.URL, 5*time.Second, sessions.Token)
	require.NoError(t, err)
	receipts := &memReceipts{}
	carts := NewManager(client, sessions, receipts, 5)

	ctx := context.Background()

	// Not logged in yet: the cart refuses before any request is spent.
	require.ErrorIs(t, carts.Add(ctx, 42, "", "", 1), api.ErrUnauthenticated)

	auth, err := client.Login(ctx, "shopper@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, sessions.Establish(auth))
	require.True(t, sessions.Authenticated())

	require.NoError(t, carts.Add(ctx, 42, "Blue", "L", 2))

	lines := carts.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
	require.Equal(t, "Blue", lines[0].Color)
	require.Equal(t, "L", lines[0].Size)

	require.Equal(t, 60.0, carts.Subtotal())
	require.Equal(t, 65.0, carts.Total())

	msg, err := carts.Checkout(ctx, &api.CheckoutParams{Name: "Nino", Surname: "Beridze"})
	require.NoError(t, err)
	require.NotEmpty(t, msg)
	require.Empty(t, carts.Lines())
	require.Len(t, receipts.orders, 1)

	// Logging out drops the mirror without touching the server.
	require.NoError(t, sessions.Clear())
	carts.Clear()
	require.False(t, sessions.Authenticated())
}
