package validation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"swiftflow/internal/swift"
	"swiftflow/internal/validation/mocks"
)

func TestLLMEvaluatorParsesVerdict(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockChatClient(ctrl)

	client.EXPECT().ChatJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"is_valid": false, "errors": ["Invalid currency: XYZ"]}`), nil)

	result, err := NewLLMEvaluator(client).Evaluate(context.Background(), validMessage())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Invalid currency: XYZ"}, result.Errors)
}

func TestLLMEvaluatorWrapsCallFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockChatClient(ctrl)

	client.EXPECT().ChatJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("rate limited"))

	_, err := NewLLMEvaluator(client).Evaluate(context.Background(), validMessage())
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestLLMCorrectorKeepsOnlyStringValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockChatClient(ctrl)

	client.EXPECT().ChatJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"sender_bic": "DEUTDEFFXXX", "amount": 123.45, "note": null}`), nil)

	patch, err := NewLLMCorrector(client).Correct(context.Background(), validMessage(),
		[]string{"Invalid sender BIC: INVALID"})
	require.NoError(t, err)
	assert.Equal(t, swift.Patch{"sender_bic": "DEUTDEFFXXX"}, patch)
}

func TestLLMCorrectorWrapsDecodeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockChatClient(ctrl)

	client.EXPECT().ChatJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`["not", "an", "object"]`), nil)

	_, err := NewLLMCorrector(client).Correct(context.Background(), validMessage(), nil)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestRuleEvaluatorNeverErrors(t *testing.T) {
	evaluator := NewRuleEvaluator(DefaultStandards())

	result, err := evaluator.Evaluate(context.Background(), &swift.Message{})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Errors)
}
