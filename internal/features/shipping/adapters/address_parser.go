package adapter

import (
	"regexp"
	"strings"

	"shipping-gateway/internal/features/shipping/domain"
)

var pincodePattern = regexp.MustCompile(`(?:^|\D)(\d{6})(?:\D|$)`)

// HeuristicAddressParser reads "line, ..., city, state pincode" strings.
// It never fails; every guess it could not make is listed in Warnings.
type HeuristicAddressParser struct{}

// NewHeuristicAddressParser creates a parser for free-text addresses.
func NewHeuristicAddressParser() *HeuristicAddressParser {
	return &HeuristicAddressParser{}
}

// Parse reads order.ShippingAddress.
func (p *HeuristicAddressParser) Parse(order domain.Order) domain.ParsedAddress {
	return parseFreeText(order.ShippingAddress)
}

func parseFreeText(address string) domain.ParsedAddress {
	var out domain.ParsedAddress

	segments := splitSegments(address)
	if len(segments) == 0 {
		out.Warnings = append(out.Warnings, "shipping address is empty")
		return out
	}

	last := segments[len(segments)-1]
	pincode, state := extractPincode(last)
	out.Pincode = pincode
	if pincode == "" {
		out.Warnings = append(out.Warnings, "no 6-digit pincode in last address segment")
	}

	switch n := len(segments); {
	case n >= 3:
		out.Line1 = strings.Join(segments[:n-2], ", ")
		out.City = segments[n-2]
		out.State = state
	case n == 2:
		out.Line1 = segments[0]
		out.State = state
		out.Warnings = append(out.Warnings, "address has no city segment")
	default:
		out.Line1 = state
		out.Warnings = append(out.Warnings, "address has a single segment, city and state unknown")
	}

	if out.State == "" && len(segments) > 1 {
		out.Warnings = append(out.Warnings, "no state before pincode")
	}
	return out
}

func splitSegments(address string) []string {
	parts := strings.Split(address, ",")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// extractPincode returns the first standalone 6-digit run in segment and the
// segment with that run removed.
func extractPincode(segment string) (pincode, rest string) {
	loc := pincodePattern.FindStringSubmatchIndex(segment)
	if loc == nil {
		return "", strings.TrimSpace(segment)
	}
	pincode = segment[loc[2]:loc[3]]
	rest = segment[:loc[2]] + " " + segment[loc[3]:]
	rest = strings.Join(strings.Fields(rest), " ")
	rest = strings.Trim(rest, " -")
	return pincode, rest
}

// StructuredAddressParser prefers the order's structured address and falls
// back to the free-text heuristic for every field it lacks.
type StructuredAddressParser struct {
	fallback *HeuristicAddressParser
}

// NewStructuredAddressParser creates a parser that prefers structured fields.
func NewStructuredAddressParser() *StructuredAddressParser {
	return &StructuredAddressParser{fallback: NewHeuristicAddressParser()}
}

// Parse merges order.Address with the parsed free text.
func (p *StructuredAddressParser) Parse(order domain.Order) domain.ParsedAddress {
	if order.Address == nil {
		return p.fallback.Parse(order)
	}

	a := order.Address
	out := domain.ParsedAddress{
		Line1:   strings.TrimSpace(a.Line1),
		Line2:   strings.TrimSpace(a.Line2),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		Pincode: strings.TrimSpace(a.Pincode),
		Country: strings.TrimSpace(a.Country),
	}
	if out.Line1 != "" && out.City != "" && out.State != "" && out.Pincode != "" {
		return out
	}

	guess := p.fallback.Parse(order)
	if out.Line1 == "" {
		out.Line1 = guess.Line1
	}
	if out.City == "" {
		out.City = guess.City
	}
	if out.State == "" {
		out.State = guess.State
	}
	if out.Pincode == "" {
		out.Pincode = guess.Pincode
	}
	out.Warnings = append(out.Warnings, "structured address incomplete, filled from free text")
	out.Warnings = append(out.Warnings, guess.Warnings...)
	return out
}
