package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeErrorString(t *testing.T) {
	err := NewOrderRejected("executor", 4711, 10019, "No money")
	msg := err.Error()
	assert.Contains(t, msg, "ORDER_REJECTED")
	assert.Contains(t, msg, "executor")
	assert.Contains(t, msg, "ticket=4711")
	assert.Contains(t, msg, "retcode=10019")
	assert.Contains(t, msg, "No money")
}

func TestTradeErrorUnwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := NewConnectionError("mt5", cause)
	assert.ErrorIs(t, err, cause)
}

func TestCategoryChecksSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("closing existing positions: %w",
		NewDataUnavailable("positions", "positions_get", nil))
	assert.True(t, IsDataUnavailable(err))
	assert.False(t, IsRejected(err))

	var te *TradeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "positions_get", te.Operation)
}

func TestRetryable(t *testing.T) {
	assert.True(t, NewNoResponse("executor", 1).Retryable())
	assert.False(t, NewOrderRejected("executor", 1, 10006, "rejected").Retryable())
	assert.False(t, NewValidationError("validator", "bad volume").Retryable())
	assert.False(t, NewConnectionError("mt5", nil).Retryable())
}

func TestIsCategoryOnForeignError(t *testing.T) {
	assert.False(t, IsCategory(stderrors.New("plain"), CategoryRejected))
	assert.False(t, IsCategory(nil, CategoryRejected))
}
