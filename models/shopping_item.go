package models

// ShoppingItem is one consolidated line of a shopping list: all cart recipes'
// amounts for the same (name, measurement unit) pair summed together. The
// total is an int64 so large carts never truncate.
type ShoppingItem struct {
	Name            string `json:"name" db:"name"`
	MeasurementUnit string `json:"measurement_unit" db:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount" db:"total_amount"`
}
