package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CarrierOrder is the Shiprocket ad-hoc order payload.
type CarrierOrder struct {
	OrderID         string             `json:"order_id"`
	OrderDate       string             `json:"order_date"`
	PickupLocation  string             `json:"pickup_location"`
	Comment         string             `json:"comment,omitempty"`
	BillingName     string             `json:"billing_customer_name"`
	BillingLastName string             `json:"billing_last_name"`
	BillingAddress  string             `json:"billing_address"`
	BillingAddress2 string             `json:"billing_address_2,omitempty"`
	BillingCity     string             `json:"billing_city"`
	BillingPincode  string             `json:"billing_pincode"`
	BillingState    string             `json:"billing_state"`
	BillingCountry  string             `json:"billing_country"`
	BillingEmail    string             `json:"billing_email"`
	BillingPhone    string             `json:"billing_phone"`
	ShippingIsBill  bool               `json:"shipping_is_billing"`
	Items           []CarrierOrderItem `json:"order_items"`
	PaymentMethod   PaymentMethod      `json:"payment_method"`
	ShippingCharges float64            `json:"shipping_charges"`
	GiftwrapCharges float64            `json:"giftwrap_charges"`
	TxnCharges      float64            `json:"transaction_charges"`
	TotalDiscount   float64            `json:"total_discount"`
	SubTotal        float64            `json:"sub_total"`
	Length          float64            `json:"length"`
	Breadth         float64            `json:"breadth"`
	Height          float64            `json:"height"`
	Weight          float64            `json:"weight"`
}

// CarrierOrderItem is one line of a CarrierOrder.
type CarrierOrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
	Discount     float64 `json:"discount"`
	Tax          float64 `json:"tax"`
	HSN          string  `json:"hsn,omitempty"`
}

// ParsedAddress is the best-effort reading of a free-text shipping address.
type ParsedAddress struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
	Country string
	// Warnings lists every fallback the parser had to take.
	Warnings []string
}

// ShipmentResult is what the carrier returns for a created order.
type ShipmentResult struct {
	CarrierOrderID FlexibleID      `json:"order_id"`
	ShipmentID     FlexibleID      `json:"shipment_id"`
	Status         string          `json:"status"`
	StatusCode     int             `json:"status_code"`
	AWBCode        string          `json:"awb_code"`
	CourierID      FlexibleID      `json:"courier_company_id"`
	CourierName    string          `json:"courier_name"`
	Raw            json.RawMessage `json:"-"`
}

// ServiceabilityQuery asks whether a lane is served.
type ServiceabilityQuery struct {
	PickupPincode   string  `json:"pickup_postcode"`
	DeliveryPincode string  `json:"delivery_postcode"`
	WeightKg        float64 `json:"weight"`
	COD             bool    `json:"cod"`
}

// FlexibleID accepts a JSON number or string; the carrier uses both for ids.
type FlexibleID string

// UnmarshalJSON accepts 123, "123", "" and null.
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = FlexibleID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// String returns the id as text.
func (f FlexibleID) String() string {
	return string(f)
}

// Int64 returns the id as a number, or 0 when it is not numeric.
func (f FlexibleID) Int64() int64 {
	n, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
