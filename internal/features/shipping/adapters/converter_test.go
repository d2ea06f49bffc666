package adapter

import (
	"regexp"
	"testing"
	"time"

	"shipping-gateway/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tenDigits := regexp.MustCompile(`^\d{10}$`)
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"98765 43210", "9876543210"},
		{"+91 98765-43210", "9876543210"},
		{"919876543210", "9876543210"},
		{"09876543210", DefaultPhone},
		{"449876543210", DefaultPhone},
		{"12345", DefaultPhone},
		{"", DefaultPhone},
		{"call me", DefaultPhone},
		{"+1 (415) 555-0100 ext 12", DefaultPhone},
	}

	for _, tt := range tests {
		got := NormalizePhone(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Regexp(t, tenDigits, got)
	}
}

func TestEnsureMinLength(t *testing.T) {
	for _, in := range []string{"", " ", "NA", " a ", "\tab\n"} {
		got, replaced := EnsureMinLength(in, PlaceholderCity)
		assert.True(t, replaced, "input %q", in)
		assert.Equal(t, PlaceholderCity, got)
		assert.NotEmpty(t, got)
	}

	got, replaced := EnsureMinLength("  Goa ", PlaceholderCity)
	assert.False(t, replaced)
	assert.Equal(t, "Goa", got)
}

func TestPackageWeight(t *testing.T) {
	assert.InDelta(t, 0.5, PackageWeight(0), 0.0001)
	assert.InDelta(t, 0.5, PackageWeight(1), 0.0001)
	assert.InDelta(t, 2.0, PackageWeight(4), 0.0001)
}

func TestOrderConverter_ShortFieldsGetPlaceholders(t *testing.T) {
	conv := NewOrderConverter(NewHeuristicAddressParser(), "Primary")

	co, warnings := conv.Convert(domain.Order{
		ID:              "A1",
		CustomerName:    "Jo",
		Email:           "",
		Phone:           "12",
		ShippingAddress: "NA",
		Items:           []domain.OrderItem{{Name: "x", SKU: "", Quantity: 0}},
	})

	assert.Equal(t, PlaceholderName, co.BillingName)
	assert.Equal(t, PlaceholderLastName, co.BillingLastName)
	assert.Equal(t, PlaceholderAddress, co.BillingAddress)
	assert.Equal(t, PlaceholderCity, co.BillingCity)
	assert.Equal(t, PlaceholderState, co.BillingState)
	assert.Equal(t, PlaceholderEmail, co.BillingEmail)
	assert.Equal(t, PlaceholderCountry, co.BillingCountry)
	assert.Equal(t, DefaultPincode, co.BillingPincode)
	assert.Equal(t, DefaultPhone, co.BillingPhone)
	assert.Equal(t, "Item 1", co.Items[0].Name)
	assert.Equal(t, "SKU-1", co.Items[0].SKU)
	assert.Equal(t, 1, co.Items[0].Units)
	assert.Equal(t, domain.PaymentPrepaid, co.PaymentMethod)
	assert.NotEmpty(t, warnings)

	for _, v := range []string{co.BillingName, co.BillingLastName, co.BillingAddress, co.BillingCity, co.BillingState, co.BillingEmail} {
		assert.GreaterOrEqual(t, len(v), 3)
	}
}

func TestOrderConverter_FixedPackageAndDate(t *testing.T) {
	conv := NewOrderConverter(NewHeuristicAddressParser(), "Primary")
	conv.now = func() time.Time { return time.Date(2026, 1, 2, 9, 5, 0, 0, time.UTC) }

	co, _ := conv.Convert(domain.Order{
		ID:              "1002",
		CustomerName:    "Ananya Iyer",
		Phone:           "9876543210",
		Email:           "ananya@example.com",
		ShippingAddress: "12 MG Road, Indiranagar, Bengaluru, Karnataka 560038",
		SubTotal:        1200,
		ShippingCharges: 49,
		Items:           []domain.OrderItem{{Name: "Face Wash", SKU: "FW-100", Quantity: 3, UnitPrice: 400}},
	})

	assert.Equal(t, "2026-01-02 09:05", co.OrderDate)
	assert.Equal(t, "Primary", co.PickupLocation)
	assert.Equal(t, float64(10), co.Length)
	assert.Equal(t, float64(10), co.Breadth)
	assert.Equal(t, float64(10), co.Height)
	assert.InDelta(t, 1.5, co.Weight, 0.0001)
	assert.InDelta(t, 1200, co.SubTotal, 0.0001)
	assert.Equal(t, "12 MG Road, Indiranagar", co.BillingAddress)
	assert.Equal(t, "Bengaluru", co.BillingCity)
	assert.Equal(t, "Karnataka", co.BillingState)
	assert.Equal(t, "560038", co.BillingPincode)
}

func TestOrderConverter_StructuredAddress(t *testing.T) {
	conv := NewOrderConverter(NewStructuredAddressParser(), "Primary")

	co, warnings := conv.Convert(domain.Order{
		ID:           "1003",
		CustomerName: "Meera Nair",
		Phone:        "9876543210",
		Email:        "meera@example.com",
		Address: &domain.Address{
			Line1: "House 7, Beach Road", City: "Kochi", State: "Kerala", Pincode: "682001",
		},
		Items: []domain.OrderItem{{Name: "Kajal", SKU: "KJ-1", Quantity: 1}},
	})

	assert.Empty(t, warnings)
	assert.Equal(t, "House 7, Beach Road", co.BillingAddress)
	assert.Equal(t, "Kochi", co.BillingCity)
	assert.Equal(t, "Kerala", co.BillingState)
	assert.Equal(t, "682001", co.BillingPincode)
}
