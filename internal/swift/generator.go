package swift

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Bank pairs a display name with its BIC for synthetic message generation.
type Bank struct {
	Name string
	BIC  string
}

// DefaultBanks is the pool the generator draws counterparties from. The last
// entry carries a TEST bank code on purpose so the pattern agent has
// something to find in most batches.
var DefaultBanks = []Bank{
	{Name: "JPMorgan Chase", BIC: "CHASUS33XXX"},
	{Name: "Deutsche Bank", BIC: "DEUTDEFFXXX"},
	{Name: "BNP Paribas", BIC: "BNPAFRPPXXX"},
	{Name: "Barclays", BIC: "BARCGB22XXX"},
	{Name: "UBS", BIC: "UBSWCHZH80A"},
	{Name: "Bank Melli", BIC: "MELIIRTHXXX"},
	{Name: "Test Bank", BIC: "TESTUS33XXX"},
}

var remittanceTexts = []string{
	"Invoice payment for services",
	"Equipment purchase",
	"Quarterly settlement",
	"Cover payment",
	"Urgent payment needed immediately",
	"Confidential transfer per agreement",
	"",
}

var currencies = []string{"USD", "EUR", "GBP", "JPY", "CHF"}

// Generator produces synthetic SWIFT message batches. Roughly a third of the
// generated messages carry a deliberate defect (missing currency, overlong
// reference, invalid BIC, out-of-range amount) so the correction loop has
// work to do.
type Generator struct {
	banks []Bank
	rnd   *rand.Rand
}

// NewGenerator builds a generator over bankCount banks from the default pool.
// A non-zero seed makes the batch reproducible.
func NewGenerator(bankCount int, seed int64) *Generator {
	if bankCount <= 0 || bankCount > len(DefaultBanks) {
		bankCount = len(DefaultBanks)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		banks: DefaultBanks[:bankCount],
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

// Generate returns count messages with required fields populated.
func (g *Generator) Generate(count int) []*Message {
	messages := make([]*Message, 0, count)
	for i := 0; i < count; i++ {
		messages = append(messages, g.generateOne(i))
	}
	return messages
}

func (g *Generator) generateOne(seq int) *Message {
	sender := g.banks[g.rnd.Intn(len(g.banks))]
	receiver := g.banks[g.rnd.Intn(len(g.banks))]
	currency := currencies[g.rnd.Intn(len(currencies))]
	amount := float64(g.rnd.Intn(200_000)) + g.rnd.Float64()

	msgType := TypeMT103
	if g.rnd.Intn(2) == 1 {
		msgType = TypeMT202
	}

	msg := &Message{
		ID:             fmt.Sprintf("MSG-%s", uuid.NewString()[:8]),
		Type:           msgType,
		Reference:      fmt.Sprintf("REF%06d%04d", g.rnd.Intn(1_000_000), seq),
		Amount:         fmt.Sprintf("%.2f %s", amount, currency),
		Currency:       currency,
		ValueDate:      time.Now().Format("060102"),
		SenderBIC:      sender.BIC,
		ReceiverBIC:    receiver.BIC,
		RemittanceInfo: remittanceTexts[g.rnd.Intn(len(remittanceTexts))],
	}

	g.maybeInjectDefect(msg, amount)
	return msg
}

// maybeInjectDefect corrupts about a third of messages with a single fixable
// or unfixable flaw.
func (g *Generator) maybeInjectDefect(msg *Message, amount float64) {
	if g.rnd.Intn(3) != 0 {
		return
	}
	switch g.rnd.Intn(5) {
	case 0: // currency missing, locally repairable
		msg.Amount = fmt.Sprintf("%.2f", amount)
		msg.Currency = ""
	case 1: // reference too long
		msg.Reference = msg.Reference + "_NEEDS_TRUNCATION"
	case 2: // structurally broken BIC
		msg.SenderBIC = "INVALID"
	case 3: // amount above the standards ceiling
		msg.Amount = fmt.Sprintf("9999999999.99 %s", msg.Currency)
	case 4: // unknown message type
		msg.Type = "MT999"
	}
}
