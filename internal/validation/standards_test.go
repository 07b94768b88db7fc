package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftflow/internal/swift"
)

func validMessage() *swift.Message {
	return &swift.Message{
		ID:          "MSG001",
		Type:        swift.TypeMT103,
		Reference:   "REF0000010001",
		Amount:      "15000.00 USD",
		Currency:    "USD",
		ValueDate:   "260823",
		SenderBIC:   "DEUTDEFFXXX",
		ReceiverBIC: "CHASUS33XXX",
	}
}

func TestEvaluateValidMessage(t *testing.T) {
	result := DefaultStandards().Evaluate(validMessage())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestEvaluateCollectsAllErrors(t *testing.T) {
	msg := validMessage()
	msg.Type = "MT999"
	msg.Reference = strings.Repeat("R", 20)
	msg.Amount = "abc XYZ"
	msg.SenderBIC = "INVALID"

	result := DefaultStandards().Evaluate(msg)
	require.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Invalid message type: MT999 (expected one of MT103, MT202)",
		"Reference exceeds 16 characters: " + msg.Reference,
		"Amount is not numeric: abc",
		"Invalid currency: XYZ (expected one of USD, EUR, GBP, JPY, CHF)",
		"Invalid sender BIC: INVALID",
	}, result.Errors)
}

func TestEvaluateMissingFields(t *testing.T) {
	result := DefaultStandards().Evaluate(&swift.Message{})
	require.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Missing required field: message_type",
		"Missing required field: reference",
		"Missing required field: amount",
		"Missing required field: sender_bic",
		"Missing required field: receiver_bic",
	}, result.Errors)
}

func TestEvaluateAmountRules(t *testing.T) {
	standards := DefaultStandards()

	t.Run("missing currency code", func(t *testing.T) {
		msg := validMessage()
		msg.Amount = "15000.00"
		result := standards.Evaluate(msg)
		assert.Contains(t, result.Errors, "Amount missing currency code")
	})

	t.Run("amount above ceiling", func(t *testing.T) {
		msg := validMessage()
		msg.Amount = "9999999999.99 USD"
		result := standards.Evaluate(msg)
		assert.Contains(t, result.Errors,
			"Amount out of range [0.01, 999999999.99]: 9999999999.99")
	})

	t.Run("amount below floor", func(t *testing.T) {
		msg := validMessage()
		msg.Amount = "0.00 USD"
		result := standards.Evaluate(msg)
		assert.Contains(t, result.Errors,
			"Amount out of range [0.01, 999999999.99]: 0.00")
	})

	t.Run("boundary amounts pass", func(t *testing.T) {
		msg := validMessage()
		msg.Amount = "0.01 USD"
		assert.True(t, standards.Evaluate(msg).IsValid)

		msg.Amount = "999999999.99 USD"
		assert.True(t, standards.Evaluate(msg).IsValid)
	})
}
