package catalog

// SortOption is one entry of the sort dropdown.
type SortOption struct {
	Value   string // stable key kept in the query mirror
	Label   string
	APISort string // spelling the server expects in ?sort=
}

// SortOptions in display order. The empty value is the server's default
// ordering.
var SortOptions = []SortOption{
	{Value: "", Label: "Sort by"},
	{Value: "newest", Label: "New products first", APISort: "-created_at"},
	{Value: "price-asc", Label: "Price, low to high", APISort: "price"},
	{Value: "price-desc", Label: "Price, high to low", APISort: "-price"},
}

// APISort maps a sort option value to the server's sort key. Unknown values
// fall back to the default ordering.
func APISort(value string) string {
	for _, opt := range SortOptions {
		if opt.Value == value {
			return opt.APISort
		}
	}
	return ""
}

// SortLabel returns the display label for a sort value.
func SortLabel(value string) string {
	for _, opt := range SortOptions {
		if opt.Value == value {
			return opt.Label
		}
	}
	return SortOptions[0].Label
}

func isSortValue(value string) bool {
	if value == "" {
		return false
	}
	for _, opt := range SortOptions {
		if opt.Value == value {
			return true
		}
	}
	return false
}
