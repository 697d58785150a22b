package api

import (
	"context"
	"net/http"
	"strconv"

	"redseam/internal/types"
)

// AddToCartParams is the body of POST /cart/products/{id}.
type AddToCartParams struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// updateQuantityParams is the body of PATCH /cart/products/{id}.
type updateQuantityParams struct {
	Quantity int `json:"quantity"`
}

// CheckoutParams are the optional shipping fields of POST /cart/checkout.
type CheckoutParams struct {
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
	Email   string `json:"email,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Address string `json:"address,omitempty"`
}

// GetCart fetches the authenticated user's cart lines.
func (c *Client) GetCart(ctx context.Context) ([]types.CartLine, error) {
	var out []types.CartLine
	if err := c.doJSON(ctx, http.MethodGet, "/cart", nil, nil, &out, "Failed to fetch cart"); err != nil {
		return nil, err
	}
	return out, nil
}

// AddToCart adds a product line to the cart.
func (c *Client) AddToCart(ctx context.Context, productID int, p AddToCartParams) (*types.CartLine, error) {
	var out types.CartLine
	if err := c.doJSON(ctx, http.MethodPost, cartProductPath(productID), nil, p, &out, "Failed to add to cart"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartQuantity changes the quantity of an existing line. Callers must
// route quantity <= 0 to RemoveFromCart; the endpoint rejects it.
func (c *Client) UpdateCartQuantity(ctx context.Context, productID, quantity int) (*types.CartLine, error) {
	var out types.CartLine
	if err := c.doJSON(ctx, http.MethodPatch, cartProductPath(productID), nil,
		updateQuantityParams{Quantity: quantity}, &out, "Failed to update cart"); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFromCart deletes a line. The server answers 204.
func (c *Client) RemoveFromCart(ctx context.Context, productID int) error {
	return c.doJSON(ctx, http.MethodDelete, cartProductPath(productID), nil, nil, nil, "Failed to remove from cart")
}

// Checkout finalizes the order. Params may be nil when no shipping details
// are collected.
func (c *Client) Checkout(ctx context.Context, p *CheckoutParams) (*types.CheckoutResponse, error) {
	var body interface{}
	if p != nil {
		body = p
	}
	var out types.CheckoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/cart/checkout", nil, body, &out, "Checkout failed"); err != nil {
		return nil, err
	}
	return &out, nil
}

func cartProductPath(productID int) string {
	return "/cart/products/" + strconv.Itoa(productID)
}
