package repositories

import "errors"

var (
	// ErrSupplierLinkNotFound means no link exists for the supplier/product pair
	ErrSupplierLinkNotFound = errors.New("supplier link not found")
	// ErrInsufficientStock means a compare-and-decrement saw less stock than requested
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPurchaseOrderNotFound means no purchase order has the requested number
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
)
