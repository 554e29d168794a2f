package entities

// ProductID represents a unique product identifier in the order source
type ProductID string

// SupplierID represents a unique upstream supplier identifier
type SupplierID string

// Quantity represents an integer quantity value for discrete stock units
type Quantity int64
