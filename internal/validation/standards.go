// Package validation implements the evaluate-correct-reevaluate loop that
// turns raw generated messages into VALID or terminally INVALID ones.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"swiftflow/internal/swift"
)

// Standards is the declarative SWIFT rule table the deterministic evaluator
// enforces. Values mirror the MT103/MT202 subset this pipeline handles.
type Standards struct {
	MaxReferenceLength int
	MinAmount          float64
	MaxAmount          float64
	ValidMessageTypes  []string
	ValidCurrencies    []string
}

// DefaultStandards returns the rule table used in production.
func DefaultStandards() Standards {
	return Standards{
		MaxReferenceLength: 16,
		MinAmount:          0.01,
		MaxAmount:          999_999_999.99,
		ValidMessageTypes:  []string{swift.TypeMT103, swift.TypeMT202},
		ValidCurrencies:    []string{"USD", "EUR", "GBP", "JPY", "CHF"},
	}
}

// Evaluate applies the rule table to one message and returns the ordered
// error list. Pure domain logic: no I/O, no side effects.
func (s Standards) Evaluate(msg *swift.Message) swift.ValidationResult {
	errs := []string{}

	errs = append(errs, s.checkRequiredFields(msg)...)

	if msg.Type != "" && !contains(s.ValidMessageTypes, msg.Type) {
		errs = append(errs, fmt.Sprintf("Invalid message type: %s (expected one of %s)",
			msg.Type, strings.Join(s.ValidMessageTypes, ", ")))
	}
	if len(msg.Reference) > s.MaxReferenceLength {
		errs = append(errs, fmt.Sprintf("Reference exceeds %d characters: %s",
			s.MaxReferenceLength, msg.Reference))
	}

	errs = append(errs, s.checkAmount(msg)...)

	if msg.SenderBIC != "" && !swift.ValidBIC(msg.SenderBIC) {
		errs = append(errs, fmt.Sprintf("Invalid sender BIC: %s", msg.SenderBIC))
	}
	if msg.ReceiverBIC != "" && !swift.ValidBIC(msg.ReceiverBIC) {
		errs = append(errs, fmt.Sprintf("Invalid receiver BIC: %s", msg.ReceiverBIC))
	}

	return swift.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func (s Standards) checkRequiredFields(msg *swift.Message) []string {
	var errs []string
	required := []struct {
		name  string
		value string
	}{
		{"message_type", msg.Type},
		{"reference", msg.Reference},
		{"amount", msg.Amount},
		{"sender_bic", msg.SenderBIC},
		{"receiver_bic", msg.ReceiverBIC},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field.name))
		}
	}
	return errs
}

func (s Standards) checkAmount(msg *swift.Message) []string {
	fields := strings.Fields(msg.Amount)
	if len(fields) == 0 {
		return nil // already reported as a missing field
	}

	var errs []string
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Amount is not numeric: %s", fields[0]))
	} else if value < s.MinAmount || value > s.MaxAmount {
		errs = append(errs, fmt.Sprintf("Amount out of range [%.2f, %.2f]: %s",
			s.MinAmount, s.MaxAmount, fields[0]))
	}

	switch {
	case len(fields) < 2:
		errs = append(errs, "Amount missing currency code")
	case !contains(s.ValidCurrencies, fields[1]):
		errs = append(errs, fmt.Sprintf("Invalid currency: %s (expected one of %s)",
			fields[1], strings.Join(s.ValidCurrencies, ", ")))
	}
	return errs
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
