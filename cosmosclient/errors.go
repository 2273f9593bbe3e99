package cosmosclient

import (
	"errors"
	"fmt"
	"strings"

	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	ErrBuildingUnsignedTx = errors.New("error building unsigned transaction")
	ErrFailedToSignTx     = errors.New("error signing transaction")
	ErrFailedToEncodeTx   = errors.New("error encoding transaction")
	ErrTxTooLarge         = errors.New("tx too large")
	ErrTxNotFound         = errors.New("tx not found")
	ErrDecodingTxHash     = errors.New("error decoding tx hash")
)

// TransactionError carries the on-chain failure details (code, codespace,
// raw log) so callers can report exactly what the contract rejected.
type TransactionError struct {
	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: code %d, codespace %s: %s",
		e.TxHash, e.Code, e.Codespace, e.RawLog)
}

func NewTransactionErrorFromResult(result *ctypes.ResultTx) *TransactionError {
	return &TransactionError{
		TxHash:    result.Hash.String(),
		Code:      result.TxResult.Code,
		Codespace: result.TxResult.Codespace,
		RawLog:    result.TxResult.Log,
	}
}

func NewTransactionErrorFromResponse(resp *sdk.TxResponse) *TransactionError {
	return &TransactionError{
		TxHash:    resp.TxHash,
		Code:      resp.Code,
		Codespace: resp.Codespace,
		RawLog:    resp.RawLog,
	}
}

func isTxErrorCritical(err error) bool {
	errString := strings.ToLower(err.Error())
	if errors.Is(err, ErrBuildingUnsignedTx) || errors.Is(err, ErrFailedToSignTx) ||
		errors.Is(err, ErrFailedToEncodeTx) || strings.Contains(errString, ErrTxTooLarge.Error()) {
		return true
	}
	return false
}

func isAccountSequenceMismatchError(err error) bool {
	return strings.Contains(err.Error(), "account sequence mismatch")
}
