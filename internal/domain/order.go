package domain

import "strings"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus accepts the backend status names case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderPending, OrderProcessing, OrderDelivered, OrderCancelled:
		return st, true
	}
	return "", false
}

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCash         PaymentMethod = "cash"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCreditCard, PaymentDebitCard, PaymentPayPal, PaymentBankTransfer, PaymentCash:
		return true
	}
	return false
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type OrderItem struct {
	ID           int64  `json:"id,omitempty"`
	OrderID      int64  `json:"orderId,omitempty"`
	ProductID    int64  `json:"productId"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    Money  `json:"unitPrice"`
	Subtotal     Money  `json:"subtotal,omitempty"`
}

type Order struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	CustomerName    string          `json:"customerName,omitempty"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	OrderNumber     string          `json:"orderNumber,omitempty"`
	Status          OrderStatus     `json:"status"`
	Subtotal        Money           `json:"subtotal"`
	Tax             Money           `json:"tax"`
	ShippingCost    Money           `json:"shippingCost"`
	Total           Money           `json:"total"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// CreateOrderRequest is the checkout payload accepted by POST /orders.
type CreateOrderRequest struct {
	CustomerID      int64           `json:"customerId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Notes           string          `json:"notes,omitempty"`
}

type OrderStatusUpdate struct {
	Status OrderStatus `json:"status"`
	Note   string      `json:"note,omitempty"`
}

type OrderStats struct {
	TotalOrders       int   `json:"totalOrders"`
	PendingOrders     int   `json:"pendingOrders"`
	ProcessingOrders  int   `json:"processingOrders"`
	DeliveredOrders   int   `json:"deliveredOrders"`
	CancelledOrders   int   `json:"cancelledOrders"`
	TotalRevenue      Money `json:"totalRevenue"`
	AverageOrderValue Money `json:"averageOrderValue"`
}
