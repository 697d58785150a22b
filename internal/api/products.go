package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"redseam/internal/types"
)

// ListParams select a page of the catalog. Zero values are omitted from the
// query string. PriceFrom/PriceTo use the server's bracket-style filter keys.
type ListParams struct {
	Page      int
	Sort      string
	PriceFrom float64
	PriceTo   float64
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PriceFrom > 0 {
		q.Set("filter[price_from]", strconv.FormatFloat(p.PriceFrom, 'f', -1, 64))
	}
	if p.PriceTo > 0 {
		q.Set("filter[price_to]", strconv.FormatFloat(p.PriceTo, 'f', -1, 64))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, p ListParams) (*types.ProductsResponse, error) {
	var out types.ProductsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/products", p.query(), nil, &out, "Failed to fetch products"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches a product's detail record, including live stock.
func (c *Client) GetProduct(ctx context.Context, id int) (*types.ProductDetail, error) {
	var out types.ProductDetail
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, nil, &out, "Failed to fetch product"); err != nil {
		return nil, err
	}
	return &out, nil
}
