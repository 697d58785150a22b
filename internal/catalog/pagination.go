package catalog

// Ellipsis is the non-interactive gap marker in a page-button row.
const Ellipsis = -1

// DefaultMaxVisible is the page-button budget before gaps appear.
const DefaultMaxVisible = 5

// PageItem is either a 1-based page number or Ellipsis.
type PageItem int

// IsPage reports whether the item is a clickable page number.
func (p PageItem) IsPage() bool { return p != Ellipsis }

// VisiblePages computes the page-button row for a pager. With totalPages
// within maxVisible every page is shown; otherwise the row pins the first and
// last pages and windows around the current one:
//
//	current <= 3:              1 2 3 4 … last
//	current >= last-2:         1 … last-3 last-2 last-1 last
//	otherwise:                 1 … current-1 current current+1 … last
func VisiblePages(currentPage, totalPages, maxVisible int) []PageItem {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}

	var pages []PageItem
	if totalPages <= maxVisible {
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, PageItem(i))
		}
		return pages
	}

	switch {
	case currentPage <= 3:
		for i := 1; i <= 4; i++ {
			pages = append(pages, PageItem(i))
		}
		pages = append(pages, Ellipsis, PageItem(totalPages))
	case currentPage >= totalPages-2:
		pages = append(pages, 1, Ellipsis)
		for i := totalPages - 3; i <= totalPages; i++ {
			pages = append(pages, PageItem(i))
		}
	default:
		pages = append(pages, 1, Ellipsis)
		for i := currentPage - 1; i <= currentPage+1; i++ {
			pages = append(pages, PageItem(i))
		}
		pages = append(pages, Ellipsis, PageItem(totalPages))
	}
	return pages
}
