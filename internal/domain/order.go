package domain

import "time"

// Order statuses. Checkout is delegated to the hosted payment page, so the
// only status this service ever writes is "paid".
const OrderStatusPaid = "paid"

type Order struct {
	OrderID             string    `json:"orderId" dynamodbav:"order_id"`
	CustomerEmail       string    `json:"customerEmail" dynamodbav:"customer_email"`
	CustomerName        string    `json:"customerName" dynamodbav:"customer_name"`
	ShippingAddress     string    `json:"shippingAddress" dynamodbav:"shipping_address"`
	Items               []Item    `json:"items" dynamodbav:"items"`
	Total               float64   `json:"total" dynamodbav:"total"`
	PayPalTransactionID string    `json:"paypalTransactionId,omitempty" dynamodbav:"paypal_transaction_id"`
	Status              string    `json:"status" dynamodbav:"status"`
	CreatedAt           time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type Item struct {
	ID       string  `json:"id" dynamodbav:"id"`
	Name     string  `json:"name" dynamodbav:"name"`
	Price    float64 `json:"price" dynamodbav:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" dynamodbav:"quantity" validate:"gte=1"`
	Size     string  `json:"size,omitempty" dynamodbav:"size"`
}

// Customer is the checkout submission's customer block.
type Customer struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	Customer            Customer `json:"customer" validate:"required"`
	Items               []Item   `json:"items" validate:"required,min=1,dive"`
	PayPalTransactionID string   `json:"paypalTransactionId"`
}
