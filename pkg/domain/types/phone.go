package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Phone is the stable external identifier of one conversational party.
// It holds the digits-only form of a WhatsApp number.
type Phone string

// NormalizePhone strips every non-digit character from the raw value
func NormalizePhone(raw string) Phone {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return Phone(b.String())
}

// Validate checks if the phone number is usable as a caller identity
func (p Phone) Validate() error {
	if p == "" {
		return goerr.New("phone number is empty")
	}
	if len(p) < 8 {
		return goerr.New("phone number too short", goerr.V("phone", p.Masked()))
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return goerr.New("phone number must be digits only", goerr.V("phone", p.Masked()))
		}
	}
	return nil
}

// Masked returns a log-safe representation keeping only the last 4 digits
func (p Phone) Masked() string {
	if len(p) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(p)-4) + string(p[len(p)-4:])
}

// String returns the string representation of the phone number
func (p Phone) String() string {
	return string(p)
}
