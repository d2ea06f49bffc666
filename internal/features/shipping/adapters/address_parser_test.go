package adapter

import (
	"strings"
	"testing"

	"shipping-gateway/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicAddressParser(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    domain.ParsedAddress
		warns   bool
	}{
		{
			name:    "three segments",
			address: "221B Baker Street, Mumbai, Maharashtra 400001",
			want:    domain.ParsedAddress{Line1: "221B Baker Street", City: "Mumbai", State: "Maharashtra", Pincode: "400001"},
		},
		{
			name:    "many segments join into line one",
			address: "Flat 2, Tower B, Sector 62, Noida, Uttar Pradesh - 201301",
			want:    domain.ParsedAddress{Line1: "Flat 2, Tower B, Sector 62", City: "Noida", State: "Uttar Pradesh", Pincode: "201301"},
		},
		{
			name:    "empty segments dropped",
			address: " 5 Park St , , Kolkata ,, West Bengal 700016 ,",
			want:    domain.ParsedAddress{Line1: "5 Park St", City: "Kolkata", State: "West Bengal", Pincode: "700016"},
		},
		{
			name:    "pincode before state",
			address: "MG Road, Chennai, 600001 Tamil Nadu",
			want:    domain.ParsedAddress{Line1: "MG Road", City: "Chennai", State: "Tamil Nadu", Pincode: "600001"},
		},
		{
			name:    "no pincode",
			address: "MG Road, Chennai, Tamil Nadu",
			want:    domain.ParsedAddress{Line1: "MG Road", City: "Chennai", State: "Tamil Nadu"},
			warns:   true,
		},
		{
			name:    "seven digits is not a pincode",
			address: "MG Road, Chennai, Tamil Nadu 6000011",
			want:    domain.ParsedAddress{Line1: "MG Road", City: "Chennai", State: "Tamil Nadu 6000011"},
			warns:   true,
		},
		{
			name:    "two segments",
			address: "Near Temple, Goa 403001",
			want:    domain.ParsedAddress{Line1: "Near Temple", State: "Goa", Pincode: "403001"},
			warns:   true,
		},
		{
			name:    "empty",
			address: "   ",
			want:    domain.ParsedAddress{},
			warns:   true,
		},
	}

	p := NewHeuristicAddressParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(domain.Order{ShippingAddress: tt.address})

			assert.Equal(t, tt.want.Line1, got.Line1)
			assert.Equal(t, tt.want.City, got.City)
			assert.Equal(t, tt.want.State, got.State)
			assert.Equal(t, tt.want.Pincode, got.Pincode)
			if tt.warns {
				assert.NotEmpty(t, got.Warnings)
			} else {
				assert.Empty(t, got.Warnings)
			}
		})
	}
}

func TestHeuristicAddressParser_PincodeProperty(t *testing.T) {
	states := []string{"Kerala", "Andhra Pradesh", "Delhi", "Jammu and Kashmir"}
	pins := []string{"682001", "500001", "110001", "190001", "000000", "999999"}

	p := NewHeuristicAddressParser()
	for _, state := range states {
		for _, pin := range pins {
			last := state + " " + pin
			got := p.Parse(domain.Order{ShippingAddress: "Line A, Line B, Some City, " + last})

			assert.Equal(t, pin, got.Pincode)
			assert.Equal(t, strings.TrimSpace(strings.Replace(last, pin, "", 1)), got.State)
			assert.Equal(t, "Some City", got.City)
		}
	}
}

func TestStructuredAddressParser_FallsBackPerField(t *testing.T) {
	p := NewStructuredAddressParser()

	got := p.Parse(domain.Order{
		ShippingAddress: "12 Lake View, Bhopal, Madhya Pradesh 462001",
		Address:         &domain.Address{Line1: "12 Lake View Road", City: "Bhopal"},
	})

	assert.Equal(t, "12 Lake View Road", got.Line1)
	assert.Equal(t, "Bhopal", got.City)
	assert.Equal(t, "Madhya Pradesh", got.State)
	assert.Equal(t, "462001", got.Pincode)
	assert.NotEmpty(t, got.Warnings)
}

func TestStructuredAddressParser_NoStructuredUsesHeuristic(t *testing.T) {
	got := NewStructuredAddressParser().Parse(domain.Order{ShippingAddress: "A St, Pune, Maharashtra 411001"})
	assert.Equal(t, "Pune", got.City)
	assert.Equal(t, "411001", got.Pincode)
}
