package domain

import (
	"strings"
	"time"
)

// PaymentMethod is the carrier's payment mode for an order.
type PaymentMethod string

const (
	// PaymentCOD means the courier collects cash on delivery.
	PaymentCOD PaymentMethod = "COD"
	// PaymentPrepaid means the order was paid online.
	PaymentPrepaid PaymentMethod = "Prepaid"
)

// Order is the storefront order handed over for fulfillment.
type Order struct {
	// ID is the storefront order identifier; it becomes the carrier's order_id.
	ID string `json:"id"`
	// CreatedAt is when the customer placed the order.
	CreatedAt time.Time `json:"created_at"`
	// CustomerName is the full name typed at checkout.
	CustomerName string `json:"customer_name"`
	// Email is the customer's contact email.
	Email string `json:"email"`
	// Phone is the customer's phone number as typed (any format).
	Phone string `json:"phone"`
	// ShippingAddress is the free-text address, usually "line, city, state pincode".
	ShippingAddress string `json:"shipping_address"`
	// Address holds structured address fields when the storefront has them.
	Address *Address `json:"address,omitempty"`
	// Items are the purchased products.
	Items []OrderItem `json:"items"`
	// PaymentMethod is the storefront's payment label (e.g. "cod", "razorpay").
	PaymentMethod string `json:"payment_method"`
	// SubTotal is the order value charged to the customer.
	SubTotal float64 `json:"sub_total"`
	// ShippingCharges is the delivery fee charged to the customer.
	ShippingCharges float64 `json:"shipping_charges"`
	// Discount is the total discount applied at checkout.
	Discount float64 `json:"discount"`
}

// Address is a structured postal address.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

// OrderItem is a single product line.
type OrderItem struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Tax       float64 `json:"tax,omitempty"`
	Discount  float64 `json:"discount,omitempty"`
}

// CarrierPaymentMethod maps the storefront label to COD or Prepaid.
func (o Order) CarrierPaymentMethod() PaymentMethod {
	switch strings.ToLower(strings.TrimSpace(o.PaymentMethod)) {
	case "cod", "cash on delivery", "cash_on_delivery", "cashondelivery":
		return PaymentCOD
	default:
		return PaymentPrepaid
	}
}

// TotalUnits sums item quantities, counting non-positive quantities as one.
func (o Order) TotalUnits() int {
	total := 0
	for _, it := range o.Items {
		if it.Quantity > 0 {
			total += it.Quantity
		} else {
			total++
		}
	}
	return total
}

// ComputedSubTotal returns SubTotal, or the sum of the lines when it is unset.
func (o Order) ComputedSubTotal() float64 {
	if o.SubTotal > 0 {
		return o.SubTotal
	}
	var sum float64
	for _, it := range o.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		sum += it.UnitPrice * float64(qty)
	}
	return sum
}
