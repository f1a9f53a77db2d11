package domain

// CartLine is one product-and-quantity entry of a device cart.
type CartLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	ImageRef  string `json:"imageRef,omitempty"`
}

// LineTotal is UnitPrice × Quantity.
func (l CartLine) LineTotal() Money {
	return l.UnitPrice.Times(l.Quantity)
}

// CartTotals holds values derived from the lines of a cart.
type CartTotals struct {
	ItemCount int   `json:"itemCount"`
	Subtotal  Money `json:"subtotal"`
	Tax       Money `json:"tax"`
	Total     Money `json:"total"`
}
