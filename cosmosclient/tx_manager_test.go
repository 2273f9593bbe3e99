package cosmosclient

import (
	"context"
	"sync"
	"testing"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChain records the sequence of every broadcast and can reject the first
// N of them with a CheckTx sequence mismatch.
type fakeChain struct {
	height       int64
	rejectFirst  int
	broadcastErr error
	included     *ctypes.ResultTx
	broadcasts   []uint64
	waited       []string
}

func (f *fakeChain) Context() client.Context { return client.Context{} }

func (f *fakeChain) Status(ctx context.Context) (*ctypes.ResultStatus, error) {
	return &ctypes.ResultStatus{}, nil
}

func (f *fakeChain) BankBalances(ctx context.Context, address string) (sdk.Coins, error) {
	return nil, nil
}

func (f *fakeChain) LatestBlockHeight(ctx context.Context) (int64, error) {
	return f.height, nil
}

func (f *fakeChain) WaitForTx(ctx context.Context, hash string) (*ctypes.ResultTx, error) {
	f.waited = append(f.waited, hash)
	return f.included, nil
}

func (f *fakeChain) BroadcastSigned(ctx context.Context, msg sdk.Msg, accountNumber, sequence, timeoutHeight uint64) (*sdk.TxResponse, error) {
	f.broadcasts = append(f.broadcasts, sequence)
	if f.broadcastErr != nil {
		return nil, f.broadcastErr
	}
	if len(f.broadcasts) <= f.rejectFirst {
		return &sdk.TxResponse{
			Code:   32,
			RawLog: "account sequence mismatch, expected 7, got 5: incorrect account sequence",
		}, nil
	}
	return &sdk.TxResponse{TxHash: "C0FFEE"}, nil
}

// fakeAccountRetriever hands out the queued sequences one per call and
// repeats the last one once exhausted.
type fakeAccountRetriever struct {
	accountNumber uint64
	sequences     []uint64
	calls         int
}

func (f *fakeAccountRetriever) GetAccount(clientCtx client.Context, addr sdk.AccAddress) (client.Account, error) {
	return nil, nil
}

func (f *fakeAccountRetriever) GetAccountWithHeight(clientCtx client.Context, addr sdk.AccAddress) (client.Account, int64, error) {
	return nil, 0, nil
}

func (f *fakeAccountRetriever) EnsureExists(clientCtx client.Context, addr sdk.AccAddress) error {
	return nil
}

func (f *fakeAccountRetriever) GetAccountNumberSequence(clientCtx client.Context, addr sdk.AccAddress) (uint64, uint64, error) {
	sequence := f.sequences[len(f.sequences)-1]
	if f.calls < len(f.sequences) {
		sequence = f.sequences[f.calls]
	}
	f.calls++
	return f.accountNumber, sequence, nil
}

func newTestManager(chain chainClient, retriever client.AccountRetriever) *manager {
	return &manager{
		ctx:              context.Background(),
		chain:            chain,
		accountName:      "deployer",
		address:          sdk.AccAddress("test________________"),
		highestSequence:  -1,
		accountRetriever: retriever,
		mtx:              &sync.Mutex{},
		blockTimeout:     defaultBlockTimeout,
		maxAttempts:      defaultMaxAttempts,
		retryDelay:       time.Millisecond,
	}
}

func TestSendTransactionBlocking(t *testing.T) {
	chain := &fakeChain{height: 40, included: &ctypes.ResultTx{Height: 41}}
	retriever := &fakeAccountRetriever{accountNumber: 3, sequences: []uint64{5}}
	m := newTestManager(chain, retriever)

	result, err := m.SendTransactionBlocking(&wasmtypes.MsgExecuteContract{})
	require.NoError(t, err)
	assert.Equal(t, chain.included, result)
	assert.Equal(t, []uint64{5}, chain.broadcasts)
	assert.Equal(t, []string{"C0FFEE"}, chain.waited)
	assert.Equal(t, int64(5), m.highestSequence)
}

func TestSendTransactionBlockingRecoversFromSequenceMismatch(t *testing.T) {
	chain := &fakeChain{height: 40, rejectFirst: 1, included: &ctypes.ResultTx{Height: 42}}
	// Chain reports sequence 5, rejects the broadcast, then reports 7 on
	// the reset read.
	retriever := &fakeAccountRetriever{sequences: []uint64{5, 7, 7}}
	m := newTestManager(chain, retriever)

	result, err := m.SendTransactionBlocking(&wasmtypes.MsgExecuteContract{})
	require.NoError(t, err)
	assert.Equal(t, chain.included, result)
	assert.Equal(t, []uint64{5, 7}, chain.broadcasts)
	assert.Equal(t, int64(7), m.highestSequence)
}

func TestBroadcastBumpsSequencePastHighestUsed(t *testing.T) {
	chain := &fakeChain{height: 40, included: &ctypes.ResultTx{}}
	retriever := &fakeAccountRetriever{sequences: []uint64{5}}
	m := newTestManager(chain, retriever)
	m.highestSequence = 9

	_, err := m.SendTransactionBlocking(&wasmtypes.MsgExecuteContract{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{10}, chain.broadcasts)
	assert.Equal(t, int64(10), m.highestSequence)
}

func TestSendTransactionBlockingGivesUpAfterMaxAttempts(t *testing.T) {
	chain := &fakeChain{height: 40, rejectFirst: 100}
	retriever := &fakeAccountRetriever{sequences: []uint64{5}}
	m := newTestManager(chain, retriever)
	m.maxAttempts = 2

	_, err := m.SendTransactionBlocking(&wasmtypes.MsgExecuteContract{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Len(t, chain.broadcasts, 2)
}

func TestSendTransactionBlockingStopsOnCriticalError(t *testing.T) {
	chain := &fakeChain{height: 40, broadcastErr: ErrFailedToSignTx}
	retriever := &fakeAccountRetriever{sequences: []uint64{5}}
	m := newTestManager(chain, retriever)

	_, err := m.SendTransactionBlocking(&wasmtypes.MsgExecuteContract{})
	assert.ErrorIs(t, err, ErrFailedToSignTx)
	assert.Len(t, chain.broadcasts, 1)
}

func TestSendTransactionBlockingReportsOnChainFailure(t *testing.T) {
	chain := &fakeChain{height: 40, included: &ctypes.ResultTx{
		TxResult: abci.ExecTxResult{Code: 5, Codespace: "wasm", Log: "execute wasm contract failed"},
	}}
	retriever := &fakeAccountRetriever{sequences: []uint64{5}}
	m := newTestManager(chain, retriever)

	_, err := m.SendTransactionBlocking(&wasmtypes.MsgExecuteContract{})
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, uint32(5), txErr.Code)
	assert.Equal(t, "wasm", txErr.Codespace)
}

func TestBroadcastOnlyReturnsWithoutWaiting(t *testing.T) {
	chain := &fakeChain{height: 40}
	retriever := &fakeAccountRetriever{sequences: []uint64{5}}
	m := newTestManager(chain, retriever)

	resp, err := m.BroadcastOnly(&wasmtypes.MsgExecuteContract{})
	require.NoError(t, err)
	assert.Equal(t, "C0FFEE", resp.TxHash)
	assert.Empty(t, chain.waited)
	assert.Equal(t, int64(5), m.highestSequence)
}

func TestCheckTxStatusRejectsBadHash(t *testing.T) {
	m := newTestManager(&fakeChain{}, &fakeAccountRetriever{sequences: []uint64{0}})

	_, err := m.CheckTxStatus("not-hex")
	assert.ErrorIs(t, err, ErrDecodingTxHash)
}
