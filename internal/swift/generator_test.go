package swift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCountAndRequiredFields(t *testing.T) {
	gen := NewGenerator(0, 42)
	messages := gen.Generate(25)
	require.Len(t, messages, 25)

	seen := make(map[string]bool, len(messages))
	for _, msg := range messages {
		assert.NotEmpty(t, msg.ID)
		assert.False(t, seen[msg.ID], "duplicate message ID %s", msg.ID)
		seen[msg.ID] = true

		assert.NotEmpty(t, msg.Type)
		assert.NotEmpty(t, msg.Reference)
		assert.NotEmpty(t, msg.Amount)
		assert.NotEmpty(t, msg.SenderBIC)
		assert.NotEmpty(t, msg.ReceiverBIC)
		assert.NotEmpty(t, msg.ValueDate)
	}
}

func TestGenerateReproducibleWithSeed(t *testing.T) {
	a := NewGenerator(4, 7).Generate(10)
	b := NewGenerator(4, 7).Generate(10)

	require.Len(t, b, len(a))
	for i := range a {
		// IDs are random UUIDs, everything else follows the seed.
		assert.Equal(t, a[i].Type, b[i].Type)
		assert.Equal(t, a[i].Amount, b[i].Amount)
		assert.Equal(t, a[i].SenderBIC, b[i].SenderBIC)
		assert.Equal(t, a[i].ReceiverBIC, b[i].ReceiverBIC)
		assert.Equal(t, a[i].RemittanceInfo, b[i].RemittanceInfo)
	}
}

func TestGenerateInjectsDefects(t *testing.T) {
	messages := NewGenerator(0, 1).Generate(200)

	defective := 0
	for _, msg := range messages {
		if !ValidBIC(msg.SenderBIC) || msg.Currency == "" ||
			len(msg.Reference) > 16 || msg.Type == "MT999" {
			defective++
		}
	}
	// Roughly a third carries a defect; with 200 messages the count never
	// lands at the extremes.
	assert.Greater(t, defective, 20)
	assert.Less(t, defective, 150)
}

func TestNewGeneratorBankCountBounds(t *testing.T) {
	gen := NewGenerator(2, 3)
	for _, msg := range gen.Generate(50) {
		assert.Contains(t, []string{DefaultBanks[0].BIC, DefaultBanks[1].BIC}, msg.SenderBIC)
	}

	// Out-of-range counts fall back to the full pool.
	assert.NotPanics(t, func() { NewGenerator(100, 3).Generate(5) })
	assert.NotPanics(t, func() { NewGenerator(-1, 3).Generate(5) })
}
