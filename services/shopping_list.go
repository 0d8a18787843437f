package services

import (
	"fmt"
	"strings"

	"github.com/foodgram/backend/models"
)

// Download metadata for the rendered shopping list.
const (
	ShoppingListFilename    = "shopping_cart.txt"
	ShoppingListContentType = "text/plain; charset=utf-8"
)

// RenderShoppingList turns a consolidated shopping list into the flat text
// document served for download: one "<name>: <total_amount> <unit>" line per
// item, joined by single newlines, no header or footer. An empty list renders
// to an empty body.
func RenderShoppingList(items []models.ShoppingItem) []byte {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s: %d %s", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	return []byte(strings.Join(lines, "\n"))
}
