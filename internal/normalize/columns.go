package normalize

import "strings"

// DetectInventoryColumn returns the first column whose name contains
// "inventory" or "340" (case-insensitive). This is a deliberate, fixed
// heuristic: claims exports name the inventory-type column inconsistently
// across vendors. ok=false means the caller must default every row to 340B.
func DetectInventoryColumn(columns []string) (string, bool) {
	for _, c := range columns {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "inventory") || strings.Contains(lower, "340") {
			return c, true
		}
	}
	return "", false
}

// InventoryTag classifies an inventory-type cell: any value containing
// "340" is 340B program inventory, everything else is standard Rx stock.
func InventoryTag(value string) string {
	if strings.Contains(strings.ToLower(value), "340") {
		return "340B"
	}
	return "Rx"
}
