package adapter

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"shipping-gateway/internal/features/shipping/domain"
	"shipping-gateway/internal/features/shipping/ports"
)

const (
	// DefaultPhone is sent when a phone cannot be reduced to 10 digits.
	DefaultPhone = "9999999999"
	// DefaultPincode is sent when no valid pincode was found.
	DefaultPincode = "110001"

	minFieldLength = 3
	unitWeightKg   = 0.5
	packageSideCm  = 10
	orderDateFmt   = "2006-01-02 15:04"
)

// Placeholders for free-text fields the carrier would reject as too short.
const (
	PlaceholderName     = "Customer"
	PlaceholderLastName = "Customer"
	PlaceholderAddress  = "Address not provided"
	PlaceholderCity     = "Unknown"
	PlaceholderState    = "Unknown"
	PlaceholderCountry  = "India"
	PlaceholderEmail    = "noreply@customer.invalid"
	PlaceholderItemName = "Item"
)

var (
	nonDigits       = regexp.MustCompile(`\D`)
	validPincode    = regexp.MustCompile(`^\d{6}$`)
	itemPlaceholder = PlaceholderItemName + " %d"
)

// OrderConverter turns local orders into carrier ad-hoc orders.
type OrderConverter struct {
	// parser reads the shipping address.
	parser ports.AddressParser
	// pickupLocation is the registered pickup nickname.
	pickupLocation string
	// now stamps orders that carry no creation time.
	now func() time.Time
}

// NewOrderConverter creates a converter using parser for addresses.
func NewOrderConverter(parser ports.AddressParser, pickupLocation string) *OrderConverter {
	return &OrderConverter{
		parser:         parser,
		pickupLocation: pickupLocation,
		now:            time.Now,
	}
}

// Convert builds the carrier payload. The returned warnings list every
// address guess and placeholder substitution.
func (c *OrderConverter) Convert(order domain.Order) (domain.CarrierOrder, []string) {
	addr := c.parser.Parse(order)
	warnings := append([]string(nil), addr.Warnings...)

	field := func(name, value, placeholder string) string {
		out, replaced := EnsureMinLength(value, placeholder)
		if replaced {
			warnings = append(warnings, name+" replaced with placeholder")
		}
		return out
	}

	first, last := splitName(order.CustomerName)

	pincode := strings.TrimSpace(addr.Pincode)
	if !validPincode.MatchString(pincode) {
		warnings = append(warnings, fmt.Sprintf("pincode %q invalid, using %s", pincode, DefaultPincode))
		pincode = DefaultPincode
	}

	phone := NormalizePhone(order.Phone)
	if phone == DefaultPhone {
		warnings = append(warnings, "phone could not be reduced to 10 digits")
	}

	created := order.CreatedAt
	if created.IsZero() {
		created = c.now()
	}

	country := addr.Country
	if strings.TrimSpace(country) == "" {
		country = PlaceholderCountry
	}

	co := domain.CarrierOrder{
		OrderID:         strings.TrimSpace(order.ID),
		OrderDate:       created.Format(orderDateFmt),
		PickupLocation:  c.pickupLocation,
		BillingName:     field("billing name", first, PlaceholderName),
		BillingLastName: field("billing last name", last, PlaceholderLastName),
		BillingAddress:  field("billing address", addr.Line1, PlaceholderAddress),
		BillingAddress2: strings.TrimSpace(addr.Line2),
		BillingCity:     field("billing city", addr.City, PlaceholderCity),
		BillingPincode:  pincode,
		BillingState:    field("billing state", addr.State, PlaceholderState),
		BillingCountry:  field("billing country", country, PlaceholderCountry),
		BillingEmail:    field("billing email", order.Email, PlaceholderEmail),
		BillingPhone:    phone,
		ShippingIsBill:  true,
		Items:           convertItems(order.Items, field),
		PaymentMethod:   order.CarrierPaymentMethod(),
		ShippingCharges: order.ShippingCharges,
		TotalDiscount:   order.Discount,
		SubTotal:        order.ComputedSubTotal(),
		Length:          packageSideCm,
		Breadth:         packageSideCm,
		Height:          packageSideCm,
		Weight:          PackageWeight(order.TotalUnits()),
	}
	return co, warnings
}

func convertItems(items []domain.OrderItem, field func(name, value, placeholder string) string) []domain.CarrierOrderItem {
	out := make([]domain.CarrierOrderItem, 0, len(items))
	for i, it := range items {
		units := it.Quantity
		if units <= 0 {
			units = 1
		}
		n := i + 1
		out = append(out, domain.CarrierOrderItem{
			Name:         field(fmt.Sprintf("item %d name", n), it.Name, fmt.Sprintf(itemPlaceholder, n)),
			SKU:          field(fmt.Sprintf("item %d sku", n), it.SKU, fmt.Sprintf("SKU-%d", n)),
			Units:        units,
			SellingPrice: it.UnitPrice,
			Discount:     it.Discount,
			Tax:          it.Tax,
		})
	}
	return out
}

// EnsureMinLength trims value and swaps in placeholder when fewer than three
// characters remain.
func EnsureMinLength(value, placeholder string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) < minFieldLength {
		return placeholder, true
	}
	return trimmed, false
}

// NormalizePhone reduces phone to exactly ten digits or returns DefaultPhone.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return digits
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits[2:]
	default:
		return DefaultPhone
	}
}

// PackageWeight is half a kilo per unit, never below half a kilo.
func PackageWeight(units int) float64 {
	return math.Max(unitWeightKg, unitWeightKg*float64(units))
}

func splitName(full string) (first, last string) {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
