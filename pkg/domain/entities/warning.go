package entities

import "fmt"

// WarningKind classifies a non-fatal problem met while building purchase orders
type WarningKind int

const (
	NoSupplierFound WarningKind = iota
	StockMutationFailed
	InvalidQuantity
)

// String method for WarningKind enum
func (k WarningKind) String() string {
	switch k {
	case NoSupplierFound:
		return "NoSupplierFound"
	case StockMutationFailed:
		return "StockMutationFailed"
	case InvalidQuantity:
		return "InvalidQuantity"
	default:
		return "Unknown"
	}
}

// Warning records a recovered problem; it never aborts order processing
type Warning struct {
	Kind           WarningKind `json:"kind"`
	OrderReference string      `json:"order_reference"`
	ProductID      ProductID   `json:"product_id"`
	SupplierID     SupplierID  `json:"supplier_id,omitempty"`
	Message        string      `json:"message"`
}

func (w Warning) String() string {
	if w.SupplierID != "" {
		return fmt.Sprintf("%s: order %s product %s supplier %s: %s",
			w.Kind, w.OrderReference, w.ProductID, w.SupplierID, w.Message)
	}
	return fmt.Sprintf("%s: order %s product %s: %s", w.Kind, w.OrderReference, w.ProductID, w.Message)
}

// MarshalText renders the kind by name in JSON and YAML output
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
