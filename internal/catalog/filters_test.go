package catalog

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQueryString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Filters
	}{
		{"empty", "", Filters{Page: 1}},
		{"full state", "page=3&price_from=10&price_to=250&sort=price-asc",
			Filters{Page: 3, PriceFrom: 10, PriceTo: 250, Sort: "price-asc"}},
		{"page below one reads as one", "page=0", Filters{Page: 1}},
		{"negative page reads as one", "page=-4", Filters{Page: 1}},
		{"garbage page", "page=banana", Filters{Page: 1}},
		{"unknown sort dropped", "sort=alphabetical", Filters{Page: 1}},
		{"negative price dropped", "price_from=-5", Filters{Page: 1}},
		{"unparsable query", "%zz;;;", Filters{Page: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQueryString(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseQueryString(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestQuery_OmitsDefaults(t *testing.T) {
	f := Filters{Page: 1}
	if got := f.Query().Encode(); got != "" {
		t.Errorf("default state should encode empty, got %q", got)
	}

	f = Filters{Page: 4, PriceFrom: 9.5, Sort: "newest"}
	want := url.Values{"page": {"4"}, "price_from": {"9.5"}, "sort": {"newest"}}
	if diff := cmp.Diff(want, f.Query()); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryRoundTrip(t *testing.T) {
	states := []Filters{
		{Page: 1},
		{Page: 7},
		{Page: 2, PriceFrom: 15, PriceTo: 300},
		{Page: 1, Sort: "price-desc"},
		{Page: 12, PriceFrom: 0.5, PriceTo: 99.99, Sort: "newest"},
	}
	for _, f := range states {
		got := ParseQueryString(f.Query().Encode())
		if diff := cmp.Diff(f, got); diff != "" {
			t.Errorf("round trip of %+v mismatch (-want +got):\n%s", f, diff)
		}
	}
}

func TestFilterChangesResetPage(t *testing.T) {
	f := Filters{Page: 6, Sort: "newest"}

	f.SetPrice(10, 50)
	if f.Page != 1 {
		t.Errorf("SetPrice left page at %d, want 1", f.Page)
	}

	f.SetPage(6)
	f.SetSort("price-asc")
	if f.Page != 1 {
		t.Errorf("SetSort left page at %d, want 1", f.Page)
	}

	f.SetPage(6)
	f.ClearPrice()
	if f.Page != 1 {
		t.Errorf("ClearPrice left page at %d, want 1", f.Page)
	}
	if f.PriceFrom != 0 || f.PriceTo != 0 {
		t.Errorf("ClearPrice left bounds %v..%v", f.PriceFrom, f.PriceTo)
	}
}

func TestSetPage_ClampsToOne(t *testing.T) {
	var f Filters
	f.SetPage(-3)
	if f.Page != 1 {
		t.Errorf("Page = %d, want 1", f.Page)
	}
	if (Filters{Page: 0}).CurrentPage() != 1 {
		t.Error("CurrentPage of zero value should read 1")
	}
}

func TestListParams_BracketContract(t *testing.T) {
	f := Filters{Page: 2, PriceFrom: 10, PriceTo: 100, Sort: "newest"}
	p := f.ListParams()

	if p.Page != 2 || p.PriceFrom != 10 || p.PriceTo != 100 {
		t.Errorf("ListParams = %+v", p)
	}
	if p.Sort != "-created_at" {
		t.Errorf("Sort = %q, want -created_at", p.Sort)
	}
}

func TestAPISort(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"newest":     "-created_at",
		"price-asc":  "price",
		"price-desc": "-price",
		"bogus":      "",
	}
	for value, want := range tests {
		if got := APISort(value); got != want {
			t.Errorf("APISort(%q) = %q, want %q", value, got, want)
		}
	}
}

func TestMirrorLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "browse.query")

	// missing file seeds the default
	if got := LoadQuery(path); got.Page != 1 || got.Sort != "" {
		t.Errorf("missing mirror loaded %+v", got)
	}

	f := Filters{Page: 3, PriceFrom: 20, Sort: "price-desc"}
	if err := SaveQuery(path, f); err != nil {
		t.Fatalf("SaveQuery: %v", err)
	}
	got := LoadQuery(path)
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("mirror round trip mismatch (-want +got):\n%s", diff)
	}

	// resetting writes an empty file, not a deletion
	if err := SaveQuery(path, Filters{Page: 1}); err != nil {
		t.Fatalf("SaveQuery: %v", err)
	}
	if got := LoadQuery(path); got.Page != 1 || got.PriceFrom != 0 {
		t.Errorf("reset mirror loaded %+v", got)
	}
}
