package cosmosclient

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/client"
	txclient "github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/golang/protobuf/proto"
	"github.com/google/uuid"
	"github.com/ignite/cli/v28/ignite/pkg/cosmosaccount"
	"github.com/ignite/cli/v28/ignite/pkg/cosmosclient"

	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

const (
	defaultBlockTimeout = uint64(100)
	defaultMaxAttempts  = 3
	defaultRetryDelay   = time.Second * 5
	waitForTxTimeout    = time.Second * 60
)

type TxManager interface {
	GetClientContext() client.Context
	SignBytes(seed []byte) ([]byte, error)
	Status(ctx context.Context) (*ctypes.ResultStatus, error)
	SendTransactionBlocking(msg sdk.Msg) (*ctypes.ResultTx, error)
	BroadcastOnly(msg sdk.Msg) (*sdk.TxResponse, error)
	CheckTxStatus(hash string) (bool, error)
	BankBalances(ctx context.Context, address string) ([]sdk.Coin, error)
}

// chainClient is the narrow node surface the manager drives. Signing and
// broadcasting sit behind it, leaving the sequence bookkeeping on this side.
type chainClient interface {
	Context() client.Context
	Status(ctx context.Context) (*ctypes.ResultStatus, error)
	BankBalances(ctx context.Context, address string) (sdk.Coins, error)
	LatestBlockHeight(ctx context.Context) (int64, error)
	WaitForTx(ctx context.Context, hash string) (*ctypes.ResultTx, error)
	BroadcastSigned(ctx context.Context, msg sdk.Msg, accountNumber, sequence, timeoutHeight uint64) (*sdk.TxResponse, error)
}

// igniteChain adapts the ignite cosmosclient to chainClient.
type igniteChain struct {
	client  *cosmosclient.Client
	account *cosmosaccount.Account
}

func (c *igniteChain) Context() client.Context {
	return c.client.Context()
}

func (c *igniteChain) Status(ctx context.Context) (*ctypes.ResultStatus, error) {
	return c.client.Status(ctx)
}

func (c *igniteChain) BankBalances(ctx context.Context, address string) (sdk.Coins, error) {
	return c.client.BankBalances(ctx, address, nil)
}

func (c *igniteChain) LatestBlockHeight(ctx context.Context) (int64, error) {
	return c.client.LatestBlockHeight(ctx)
}

func (c *igniteChain) WaitForTx(ctx context.Context, hash string) (*ctypes.ResultTx, error) {
	return c.client.WaitForTx(ctx, hash)
}

func (c *igniteChain) BroadcastSigned(ctx context.Context, msg sdk.Msg, accountNumber, sequence, timeoutHeight uint64) (*sdk.TxResponse, error) {
	factory := c.client.TxFactory.
		WithSequence(sequence).
		WithAccountNumber(accountNumber).
		WithTimeoutHeight(timeoutHeight)

	unsignedTx, err := factory.BuildUnsignedTx(msg)
	if err != nil {
		logging.Error("error building unsigned tx", logging.Messages, "error", err)
		return nil, ErrBuildingUnsignedTx
	}

	if err := txclient.Sign(ctx, factory, c.account.Name, unsignedTx, false); err != nil {
		logging.Error("Failed to sign transaction", logging.Messages, "error", err)
		return nil, ErrFailedToSignTx
	}

	txBytes, err := c.client.Context().TxConfig.TxEncoder()(unsignedTx.GetTx())
	if err != nil {
		logging.Error("Failed to encode transaction", logging.Messages, "error", err)
		return nil, ErrFailedToEncodeTx
	}

	return c.client.Context().BroadcastTxSync(txBytes)
}

// manager signs and broadcasts one transaction at a time, tracking the
// highest sequence it has used so consecutive commands in the same block
// do not collide. On a sequence mismatch it re-reads the sequence from the
// chain and rebroadcasts, up to maxAttempts.
type manager struct {
	chain            chainClient
	accountRetriever client.AccountRetriever
	accountName      string
	address          sdk.AccAddress
	highestSequence  int64
	mtx              *sync.Mutex
	blockTimeout     uint64
	maxAttempts      int
	retryDelay       time.Duration
	ctx              context.Context
}

func NewTxManager(
	ctx context.Context,
	client *cosmosclient.Client,
	account *cosmosaccount.Account,
	accountRetriever client.AccountRetriever,
	blockTimeout uint64) (*manager, error) {
	if blockTimeout == 0 {
		blockTimeout = defaultBlockTimeout
	}

	wasmtypes.RegisterInterfaces(client.Context().InterfaceRegistry)

	address, err := account.Record.GetAddress()
	if err != nil {
		return nil, err
	}

	return &manager{
		ctx:              ctx,
		chain:            &igniteChain{client: client, account: account},
		accountName:      account.Name,
		address:          address,
		highestSequence:  -1,
		accountRetriever: accountRetriever,
		mtx:              &sync.Mutex{},
		blockTimeout:     blockTimeout,
		maxAttempts:      defaultMaxAttempts,
		retryDelay:       defaultRetryDelay,
	}, nil
}

func (m *manager) GetClientContext() client.Context {
	return m.chain.Context()
}

func (m *manager) Status(ctx context.Context) (*ctypes.ResultStatus, error) {
	return m.chain.Status(ctx)
}

func (m *manager) SignBytes(seed []byte) ([]byte, error) {
	bytes, _, err := m.chain.Context().Keyring.Sign(m.accountName, seed, signing.SignMode_SIGN_MODE_DIRECT)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

func (m *manager) BankBalances(ctx context.Context, address string) ([]sdk.Coin, error) {
	return m.chain.BankBalances(ctx, address)
}

// BroadcastOnly submits without waiting for inclusion. Used when the caller
// only needs the tx hash (e.g. fire-and-forget incident response).
func (m *manager) BroadcastOnly(msg sdk.Msg) (*sdk.TxResponse, error) {
	id := uuid.New().String()
	logging.Debug("BroadcastOnly: sending tx", logging.Messages, "tx_id", id)
	resp, _, _, err := m.broadcastMessage(id, msg)
	return resp, err
}

func (m *manager) SendTransactionBlocking(msg sdk.Msg) (*ctypes.ResultTx, error) {
	id := uuid.New().String()

	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		logging.Debug("SendTransactionBlocking: sending tx", logging.Messages,
			"tx_id", id, "attempt", attempt)

		resp, _, _, err := m.broadcastMessage(id, msg)
		if err != nil {
			if isTxErrorCritical(err) {
				logging.Error("critical error sending tx", logging.Messages, "tx_id", id, "error", err)
				return nil, err
			}
			if isAccountSequenceMismatchError(err) {
				logging.Warn("account sequence mismatch, resetting from chain", logging.Messages,
					"tx_id", id, "attempt", attempt)
				if seqErr := m.setUpSequenceFromBlockchain(); seqErr != nil {
					logging.Error("failed to reset sequence", logging.Messages, "error", seqErr)
				}
				lastErr = err
				time.Sleep(m.retryDelay)
				continue
			}
			return nil, err
		}

		logging.Debug("Transaction broadcast successful", logging.Messages, "tx_id", id, "txHash", resp.TxHash)
		result, err := m.WaitForResponse(resp.TxHash)
		if err != nil {
			logging.Error("Failed to wait for transaction", logging.Messages, "tx_id", id, "error", err)
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("tx %s failed after %d attempts: %w", id, m.maxAttempts, lastErr)
}

func (m *manager) WaitForResponse(txHash string) (*ctypes.ResultTx, error) {
	ctx, cancel := context.WithTimeout(m.ctx, waitForTxTimeout)
	defer cancel()

	transactionAppliedResult, err := m.chain.WaitForTx(ctx, txHash)
	if err != nil {
		logging.Error("Failed to wait for transaction", logging.Messages, "error", err, "result", transactionAppliedResult)
		return nil, err
	}

	txResult := transactionAppliedResult.TxResult
	if txResult.Code != 0 {
		logging.Error("Transaction failed on-chain", logging.Messages,
			"txHash", txHash, "code", txResult.Code, "codespace", txResult.Codespace, "rawLog", txResult.Log)
		return nil, NewTransactionErrorFromResult(transactionAppliedResult)
	}
	return transactionAppliedResult, nil
}

func (m *manager) broadcastMessage(id string, rawTx sdk.Msg) (*sdk.TxResponse, uint64, uint64, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	accountNumber, sequence, err := m.accountRetriever.GetAccountNumberSequence(m.chain.Context(), m.address)
	if err != nil {
		logging.Error("Failed to get account number and sequence", logging.Messages, "tx_id", id, "error", err)
		return nil, 0, 0, err
	}

	if int64(sequence) <= m.highestSequence {
		logging.Debug("Chain sequence lower or equal than highest used sequence", logging.Messages,
			"blockchain_sequence", sequence, "highest_sequence", m.highestSequence)
		sequence = uint64(m.highestSequence) + 1
	}

	currentHeight, err := m.chain.LatestBlockHeight(m.ctx)
	if err != nil {
		logging.Error("Failed to get latest block", logging.Messages, "tx_id", id, "error", err)
		return nil, 0, 0, err
	}

	timeout := uint64(currentHeight) + m.blockTimeout
	logging.Info("broadcast message: tx params", logging.Messages,
		"tx_id", id,
		"sequence", sequence,
		"account_name", m.accountName,
		"account_number", accountNumber,
		"timeout_height", timeout)

	resp, err := m.chain.BroadcastSigned(m.ctx, rawTx, accountNumber, sequence, timeout)
	if err != nil {
		logging.Error("broadcast message: failed to broadcast", logging.Messages, "tx_id", id, "error", err)
		return nil, 0, 0, err
	}

	if resp.Code > 0 {
		err = NewTransactionErrorFromResponse(resp)
		logging.Error("broadcast message: transaction rejected in CheckTx", logging.Messages, "tx_id", id, "error", err)
		return nil, 0, 0, err
	}

	m.highestSequence = int64(sequence)
	return resp, sequence, timeout, nil
}

func (m *manager) setUpSequenceFromBlockchain() error {
	_, sequence, err := m.accountRetriever.GetAccountNumberSequence(m.chain.Context(), m.address)
	if err != nil {
		return err
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()
	logging.Debug("setUpSequenceFromBlockchain", logging.Messages,
		"blockchain_sequence", sequence, "highest_sequence", m.highestSequence)
	if m.highestSequence != int64(sequence) {
		m.highestSequence = int64(sequence) - 1
	}
	return nil
}

// CheckTxStatus reports whether a tx hash is already included on chain.
func (m *manager) CheckTxStatus(hash string) (bool, error) {
	bz, err := hex.DecodeString(hash)
	if err != nil {
		logging.Error("CheckTxStatus: error decoding tx hash", logging.Messages, "error", err)
		return false, ErrDecodingTxHash
	}

	resp, err := m.chain.Context().Client.Tx(m.ctx, bz, false)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return false, ErrTxNotFound
		}
		return false, err
	}

	logging.Debug("CheckTxStatus: found tx result", logging.Messages, "txHash", hash, "height", resp.Height)
	return true, nil
}

// ParseMsgResponse unpacks the msgIndex-th message response out of a
// delivered transaction's data into dstMsg.
func ParseMsgResponse(data []byte, msgIndex int, dstMsg proto.Message) error {
	var txMsgData sdk.TxMsgData
	if err := proto.Unmarshal(data, &txMsgData); err != nil {
		return fmt.Errorf("failed to unmarshal TxMsgData: %w", err)
	}

	if msgIndex < 0 || msgIndex >= len(txMsgData.MsgResponses) {
		return fmt.Errorf(
			"message index %d out of range: got %d responses",
			msgIndex, len(txMsgData.MsgResponses),
		)
	}

	anyResp := txMsgData.MsgResponses[msgIndex]
	if err := proto.Unmarshal(anyResp.Value, dstMsg); err != nil {
		return fmt.Errorf("failed to unmarshal response at index %d: %w", msgIndex, err)
	}
	return nil
}
