package domain

import "time"

// AuthToken is a carrier bearer credential and the moment we stop trusting it.
type AuthToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the token is present and not yet expired at now.
func (t AuthToken) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// String never reveals the token value.
func (t AuthToken) String() string {
	if t.Value == "" {
		return "AuthToken(empty)"
	}
	return "AuthToken(redacted, expires " + t.ExpiresAt.UTC().Format(time.RFC3339) + ")"
}
