package http

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest places an order from the caller's cart. Blank customer fields are completed from
// the address book entry AddressID and from the user's profile.
type CheckoutRequest struct {
	PaymentMethod   string  `json:"paymentMethod"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   string  `json:"customerEmail"`
	ShippingAddress string  `json:"shippingAddress"`
	AddressID       *string `json:"addressId,omitempty"`
	Notes           string  `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
	Notes          string `json:"notes"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}
