package services

import (
	"testing"

	"github.com/foodgram/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderShoppingList(t *testing.T) {
	items := []models.ShoppingItem{
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 15},
		{Name: "milk", MeasurementUnit: "ml", TotalAmount: 250},
	}

	body := RenderShoppingList(items)
	assert.Equal(t, "flour: 15 g\nmilk: 250 ml", string(body))
}

func TestRenderShoppingListSingleItemHasNoTrailingNewline(t *testing.T) {
	items := []models.ShoppingItem{
		{Name: "sugar", MeasurementUnit: "g", TotalAmount: 200},
	}

	body := RenderShoppingList(items)
	assert.Equal(t, "sugar: 200 g", string(body))
}

func TestRenderShoppingListEmpty(t *testing.T) {
	assert.Empty(t, RenderShoppingList(nil))
}
