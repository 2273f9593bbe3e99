package cosmosclient

import (
	"errors"
	"fmt"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
)

func TestIsTxErrorCritical(t *testing.T) {
	assert.True(t, isTxErrorCritical(ErrBuildingUnsignedTx))
	assert.True(t, isTxErrorCritical(ErrFailedToSignTx))
	assert.True(t, isTxErrorCritical(ErrFailedToEncodeTx))
	assert.True(t, isTxErrorCritical(errors.New("broadcast rejected: Tx Too Large")))

	assert.False(t, isTxErrorCritical(errors.New("connection refused")))
	assert.False(t, isTxErrorCritical(errors.New("account sequence mismatch, expected 5, got 4")))
}

func TestIsAccountSequenceMismatchError(t *testing.T) {
	assert.True(t, isAccountSequenceMismatchError(errors.New("account sequence mismatch, expected 12, got 11: incorrect account sequence")))
	assert.False(t, isAccountSequenceMismatchError(errors.New("insufficient fees")))
}

func TestTransactionErrorFromResponse(t *testing.T) {
	resp := &sdk.TxResponse{
		TxHash:    "ABC123",
		Code:      5,
		Codespace: "wasm",
		RawLog:    "execute wasm contract failed",
	}
	err := NewTransactionErrorFromResponse(resp)

	assert.Equal(t, uint32(5), err.Code)
	assert.Equal(t, "wasm", err.Codespace)
	assert.Contains(t, err.Error(), "ABC123")
	assert.Contains(t, err.Error(), "execute wasm contract failed")

	var txErr *TransactionError
	assert.True(t, errors.As(fmt.Errorf("sending: %w", err), &txErr))
}
