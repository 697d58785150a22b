package store

import (
	"path/filepath"
	"testing"

	"redseam/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesDirectoryAndSchema(t *testing.T) {
	s := openTestStore(t)

	views, err := s.RecentlyViewed(10)
	if err != nil {
		t.Fatalf("RecentlyViewed on empty store: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("views = %v", views)
	}

	orders, err := s.Orders(10)
	if err != nil {
		t.Fatalf("Orders on empty store: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("orders = %v", orders)
	}
}

func TestRecordView_UpsertsByProduct(t *testing.T) {
	s := openTestStore(t)

	p := &types.ProductDetail{ID: 1, Name: "Jacket", Price: 100}
	if err := s.RecordView(p); err != nil {
		t.Fatalf("RecordView: %v", err)
	}

	// a second view of the same product replaces, not duplicates
	p.Price = 90
	if err := s.RecordView(p); err != nil {
		t.Fatalf("RecordView: %v", err)
	}

	views, err := s.RecentlyViewed(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d rows, want 1", len(views))
	}
	if views[0].Price != 90 {
		t.Errorf("price = %v, want updated 90", views[0].Price)
	}
}

func TestRecentlyViewed_MostRecentFirstAndLimited(t *testing.T) {
	s := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if err := s.RecordView(&types.ProductDetail{ID: i, Name: "P", Price: float64(i)}); err != nil {
			t.Fatal(err)
		}
	}

	views, err := s.RecentlyViewed(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 3 {
		t.Fatalf("views = %d rows, want 3", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i].SeenAt.After(views[i-1].SeenAt) {
			t.Errorf("views not ordered most recent first: %v", views)
		}
	}
}

func TestOrders_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.RecordOrder(60, 5, 65, 2, "Order placed successfully"); err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}
	if err := s.RecordOrder(20, 5, 25, 1, "Order placed successfully"); err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}

	orders, err := s.Orders(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d rows, want 2", len(orders))
	}
	// most recent first, by id when timestamps collide
	if orders[0].Subtotal != 20 || orders[1].Subtotal != 60 {
		t.Errorf("order sequence = %v, %v", orders[0].Subtotal, orders[1].Subtotal)
	}
	if orders[1].Total != 65 || orders[1].Delivery != 5 || orders[1].LineCount != 2 {
		t.Errorf("receipt fields = %+v", orders[1])
	}
}

func TestPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", s.Path(), dbPath)
	}
}
