package product

// StockStatus classifies a balance against the product's minimum.
type StockStatus string

const (
	OutOfStock  StockStatus = "out_of_stock"
	LowStock    StockStatus = "low"
	NormalStock StockStatus = "normal"
)

// StockStatusOf classifies a balance without loading the product.
func StockStatusOf(stock, minStock int) StockStatus {
	switch {
	case stock <= 0:
		return OutOfStock
	case stock <= minStock:
		return LowStock
	default:
		return NormalStock
	}
}
