package selection

// colorHex maps the catalog's color names to swatch colors for the terminal
// UI. Unknown names get the neutral grey.
var colorHex = map[string]string{
	"Black":     "#000000",
	"Navy Blue": "#1e3a8a",
	"Green":     "#16a34a",
	"Purple":    "#9333ea",
	"Peach":     "#fdba74",
	"Brown":     "#92400e",
	"Olive":     "#65a30d",
	"Blue":      "#2563eb",
	"Grey":      "#6b7280",
	"Gray":      "#6b7280",
	"Red":       "#dc2626",
	"White":     "#ffffff",
}

// ColorHex returns the swatch color for a catalog color name.
func ColorHex(name string) string {
	if hex, ok := colorHex[name]; ok {
		return hex
	}
	return "#6b7280"
}
