// Package types defines the wire-level data model shared between the API
// client and the rest of the application. Field names and JSON tags follow
// the RedSeam server's responses exactly; nothing here is recomputed
// client-side.
package types

// Product is a catalog listing entry as returned by GET /products.
type Product struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ReleaseYear     string   `json:"release_year"`
	CoverImage      string   `json:"cover_image"`
	Images          []string `json:"images"`
	Price           float64  `json:"price"`
	AvailableColors []string `json:"available_colors"`
	AvailableSizes  []string `json:"available_sizes"`
}

// Brand identifies a product's brand on the detail view.
type Brand struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ProductDetail is the full record from GET /products/{id}. Quantity is the
// live stock count; it bounds how much of the product can still be added to
// a cart.
type ProductDetail struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ReleaseDate     string   `json:"release_date"`
	CoverImage      string   `json:"cover_image"`
	Images          []string `json:"images"`
	Price           float64  `json:"price"`
	TotalPrice      float64  `json:"total_price"`
	Quantity        int      `json:"quantity"`
	AvailableColors []string `json:"available_colors"`
	AvailableSizes  []string `json:"available_sizes"`
	Brand           Brand    `json:"brand"`
}

// PageLinks are the navigation links of a paginated listing.
type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// PageMeta carries the server's pagination bookkeeping.
type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	From        int    `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          int    `json:"to"`
	Total       int    `json:"total"`
}

// ProductsResponse is the envelope of GET /products.
type ProductsResponse struct {
	Data  []Product `json:"data"`
	Links PageLinks `json:"links"`
	Meta  PageMeta  `json:"meta"`
}

// CartLine is one product/color/size combination in the user's cart. The
// server owns it; the client holds a read-mostly copy. TotalPrice is the
// server's computed line total and is never recomputed locally.
type CartLine struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ReleaseYear     string   `json:"release_year"`
	CoverImage      string   `json:"cover_image"`
	Images          []string `json:"images"`
	Price           float64  `json:"price"`
	TotalPrice      float64  `json:"total_price"`
	Quantity        int      `json:"quantity"`
	Color           string   `json:"color"`
	Size            string   `json:"size"`
	AvailableColors []string `json:"available_colors"`
	AvailableSizes  []string `json:"available_sizes"`
}

// User is the authenticated account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  int    `json:"is_admin"`
	Avatar   string `json:"avatar"`
}

// AuthResponse is returned by POST /login and POST /register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// CheckoutResponse acknowledges a finalized order.
type CheckoutResponse struct {
	Message string `json:"message"`
}
