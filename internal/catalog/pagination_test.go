package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pageRow(nums ...int) []PageItem {
	row := make([]PageItem, len(nums))
	for i, n := range nums {
		row[i] = PageItem(n)
	}
	return row
}

func TestVisiblePages(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []PageItem
	}{
		{"everything fits", 2, 5, pageRow(1, 2, 3, 4, 5)},
		{"single page", 1, 1, pageRow(1)},
		{"no pages", 1, 0, nil},
		{"near start", 1, 10, pageRow(1, 2, 3, 4, Ellipsis, 10)},
		{"current three", 3, 10, pageRow(1, 2, 3, 4, Ellipsis, 10)},
		{"middle", 5, 10, pageRow(1, Ellipsis, 4, 5, 6, Ellipsis, 10)},
		{"near end", 10, 10, pageRow(1, Ellipsis, 7, 8, 9, 10)},
		{"entering end window", 8, 10, pageRow(1, Ellipsis, 7, 8, 9, 10)},
		{"leaving start window", 4, 10, pageRow(1, Ellipsis, 3, 4, 5, Ellipsis, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisiblePages(tt.current, tt.total, DefaultMaxVisible)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("VisiblePages(%d, %d) mismatch (-want +got):\n%s",
					tt.current, tt.total, diff)
			}
		})
	}
}

func TestVisiblePages_ZeroMaxVisibleDefaults(t *testing.T) {
	got := VisiblePages(1, 10, 0)
	want := pageRow(1, 2, 3, 4, Ellipsis, 10)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// The row always pins page 1 and the last page, and the current page is
// always present and clickable.
func TestVisiblePages_Invariants(t *testing.T) {
	for total := 6; total <= 30; total++ {
		for current := 1; current <= total; current++ {
			row := VisiblePages(current, total, DefaultMaxVisible)

			hasCurrent, hasFirst, hasLast := false, false, false
			for _, p := range row {
				if !p.IsPage() {
					continue
				}
				switch int(p) {
				case current:
					hasCurrent = true
				}
				if int(p) == 1 {
					hasFirst = true
				}
				if int(p) == total {
					hasLast = true
				}
			}
			if !hasCurrent || !hasFirst || !hasLast {
				t.Fatalf("total=%d current=%d row=%v missing pinned pages", total, current, row)
			}
		}
	}
}

func TestPageItem_IsPage(t *testing.T) {
	if PageItem(Ellipsis).IsPage() {
		t.Error("ellipsis should not be a page")
	}
	if !PageItem(3).IsPage() {
		t.Error("3 should be a page")
	}
}
