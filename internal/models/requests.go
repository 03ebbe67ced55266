package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the customer request to add one line to a table's tab
type PlaceOrderRequest struct {
	ProductID int64 `json:"product_id"`
}

// Validate checks the place order request
func (req *PlaceOrderRequest) Validate() error {
	if req.ProductID <= 0 {
		return fmt.Errorf("product_id is required")
	}
	return nil
}

// AddProductRequest is the staff request to add a catalog entry.
// Price travels as a string so the 2-decimal precision survives JSON.
type AddProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Validate checks the add product request and returns the parsed price
func (req *AddProductRequest) Validate() (decimal.Decimal, error) {
	if err := validateProductName(req.Name); err != nil {
		return decimal.Zero, err
	}
	return validatePrice(req.Price)
}

// validateProductName validates the catalog entry name
func validateProductName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// validatePrice parses the price and enforces the minor-unit precision
func validatePrice(price string) (decimal.Decimal, error) {
	if price == "" {
		return decimal.Zero, fmt.Errorf("price is required")
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price must be a decimal number")
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("price must not be negative")
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("price must have at most 2 decimal places")
	}
	return d, nil
}

// ValidateTableID checks a caller-supplied table identifier. Any non-empty
// string is accepted: there is no table registry to check against.
func ValidateTableID(tableID string) error {
	if tableID == "" {
		return fmt.Errorf("mesa is required")
	}
	if len(tableID) > 50 {
		return fmt.Errorf("mesa must not exceed 50 characters")
	}
	return nil
}
