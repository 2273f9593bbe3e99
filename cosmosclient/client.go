package cosmosclient

import (
	"context"
	"encoding/hex"
	"errors"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/ignite/cli/v28/ignite/pkg/cosmosaccount"
	"github.com/ignite/cli/v28/ignite/pkg/cosmosclient"

	"github.com/axelarnetwork/axelar-contract-deployments/config"
	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

// Client is the signing client every amplifier command goes through: keyring
// account resolution, wasm store/instantiate/migrate/execute, gov proposal
// submission, and smart/raw contract queries.
type Client struct {
	ctx     context.Context
	address string
	account *cosmosaccount.Account
	manager TxManager
}

func NewClientWithRetry(
	ctx context.Context,
	cfg *config.Config,
	maxRetries int,
	delay time.Duration) (*Client, error) {
	var client *Client
	var err error
	logging.Info("Connecting to axelar node", logging.System, "url", cfg.ChainNode.Url)
	for i := 0; i < maxRetries; i++ {
		client, err = NewClient(ctx, cfg)
		if err == nil {
			return client, nil
		}
		logging.Warn("Failed to connect to axelar node, retrying", logging.System,
			"delay", delay, "error", err)
		time.Sleep(delay)
	}

	return nil, errors.New("failed to connect to axelar node after multiple retries")
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", err
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}
	return filepath.Abs(path)
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	nodeConfig := cfg.ChainNode

	keyringDir, err := expandPath(nodeConfig.KeyringDir)
	if err != nil {
		return nil, err
	}

	logging.Info("Initializing cosmos client", logging.System,
		"node_url", nodeConfig.Url,
		"keyring_backend", nodeConfig.KeyringBackend,
		"keyring_dir", keyringDir)
	cosmoclient, err := cosmosclient.New(
		ctx,
		cosmosclient.WithAddressPrefix(nodeConfig.AddressPrefix),
		cosmosclient.WithNodeAddress(nodeConfig.Url),
		cosmosclient.WithKeyringBackend(cosmosaccount.KeyringBackend(nodeConfig.KeyringBackend)),
		cosmosclient.WithKeyringDir(keyringDir),
		cosmosclient.WithGasPrices(cfg.Gas.Prices),
		cosmosclient.WithGas("auto"),
		cosmosclient.WithGasAdjustment(cfg.Gas.Adjustment),
	)
	if err != nil {
		return nil, err
	}

	account, err := cosmoclient.AccountRegistry.GetByName(nodeConfig.AccountName)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "account %q not found in keyring %s", nodeConfig.AccountName, keyringDir)
	}

	addr, err := account.Address(nodeConfig.AddressPrefix)
	if err != nil {
		return nil, err
	}

	manager, err := NewTxManager(ctx, &cosmoclient, &account, authtypes.AccountRetriever{}, 0)
	if err != nil {
		return nil, err
	}

	return &Client{
		ctx:     ctx,
		address: addr,
		account: &account,
		manager: manager,
	}, nil
}

func (c *Client) GetAddress() string {
	return c.address
}

func (c *Client) Status(ctx context.Context) (*ctypes.ResultStatus, error) {
	return c.manager.Status(ctx)
}

func (c *Client) SignBytes(seed []byte) ([]byte, error) {
	return c.manager.SignBytes(seed)
}

func (c *Client) BankBalances(ctx context.Context, address string) ([]sdk.Coin, error) {
	return c.manager.BankBalances(ctx, address)
}

// StoreCode submits MsgStoreCode and returns the assigned code id and the
// chain-computed checksum of the stored wasm.
func (c *Client) StoreCode(code []byte, permission *wasmtypes.AccessConfig) (uint64, string, error) {
	msg := &wasmtypes.MsgStoreCode{
		Sender:                c.address,
		WASMByteCode:          code,
		InstantiatePermission: permission,
	}

	result, err := c.manager.SendTransactionBlocking(msg)
	if err != nil {
		return 0, "", err
	}

	var resp wasmtypes.MsgStoreCodeResponse
	if err := ParseMsgResponse(result.TxResult.Data, 0, &resp); err != nil {
		return 0, "", err
	}
	checksum := hex.EncodeToString(resp.Checksum)
	logging.Info("Stored code", logging.Deploy,
		"code_id", resp.CodeID, "checksum", checksum, "tx_hash", result.Hash.String())
	return resp.CodeID, checksum, nil
}

// InstantiateContract instantiates a stored code id at a fresh address.
func (c *Client) InstantiateContract(codeID uint64, label, admin string, msg []byte, funds sdk.Coins) (string, error) {
	instantiateMsg := &wasmtypes.MsgInstantiateContract{
		Sender: c.address,
		Admin:  admin,
		CodeID: codeID,
		Label:  label,
		Msg:    wasmtypes.RawContractMessage(msg),
		Funds:  funds,
	}

	result, err := c.manager.SendTransactionBlocking(instantiateMsg)
	if err != nil {
		return "", err
	}

	var resp wasmtypes.MsgInstantiateContractResponse
	if err := ParseMsgResponse(result.TxResult.Data, 0, &resp); err != nil {
		return "", err
	}
	logging.Info("Instantiated contract", logging.Deploy,
		"label", label, "address", resp.Address, "tx_hash", result.Hash.String())
	return resp.Address, nil
}

// Instantiate2Contract instantiates at the salt-derived predictable address.
func (c *Client) Instantiate2Contract(codeID uint64, label, admin string, msg, salt []byte, funds sdk.Coins) (string, error) {
	instantiateMsg := &wasmtypes.MsgInstantiateContract2{
		Sender: c.address,
		Admin:  admin,
		CodeID: codeID,
		Label:  label,
		Msg:    wasmtypes.RawContractMessage(msg),
		Funds:  funds,
		Salt:   salt,
		FixMsg: false,
	}

	result, err := c.manager.SendTransactionBlocking(instantiateMsg)
	if err != nil {
		return "", err
	}

	var resp wasmtypes.MsgInstantiateContractResponse
	if err := ParseMsgResponse(result.TxResult.Data, 0, &resp); err != nil {
		return "", err
	}
	logging.Info("Instantiated contract (deterministic)", logging.Deploy,
		"label", label, "address", resp.Address, "tx_hash", result.Hash.String())
	return resp.Address, nil
}

// MigrateContract migrates a contract to a new code id.
func (c *Client) MigrateContract(contractAddress string, codeID uint64, msg []byte) (*ctypes.ResultTx, error) {
	migrateMsg := &wasmtypes.MsgMigrateContract{
		Sender:   c.address,
		Contract: contractAddress,
		CodeID:   codeID,
		Msg:      wasmtypes.RawContractMessage(msg),
	}
	return c.manager.SendTransactionBlocking(migrateMsg)
}

// ExecuteContract executes a contract with optional attached funds.
func (c *Client) ExecuteContract(contractAddress string, msg []byte, funds sdk.Coins) (*ctypes.ResultTx, error) {
	executeMsg := &wasmtypes.MsgExecuteContract{
		Sender:   c.address,
		Contract: contractAddress,
		Msg:      wasmtypes.RawContractMessage(msg),
		Funds:    funds,
	}
	return c.manager.SendTransactionBlocking(executeMsg)
}

// ExecuteContractAsync broadcasts an execute message without waiting for
// inclusion and returns the tx hash. Incident commands use it when waiting
// a block is too slow.
func (c *Client) ExecuteContractAsync(contractAddress string, msg []byte, funds sdk.Coins) (string, error) {
	executeMsg := &wasmtypes.MsgExecuteContract{
		Sender:   c.address,
		Contract: contractAddress,
		Msg:      wasmtypes.RawContractMessage(msg),
		Funds:    funds,
	}
	resp, err := c.manager.BroadcastOnly(executeMsg)
	if err != nil {
		return "", err
	}
	return resp.TxHash, nil
}

// TxIncluded reports whether a broadcast transaction has landed on chain.
func (c *Client) TxIncluded(hash string) (bool, error) {
	return c.manager.CheckTxStatus(hash)
}

// SmartContractQuery runs a smart query and returns the contract's raw JSON.
func (c *Client) SmartContractQuery(ctx context.Context, contractAddress string, query []byte) ([]byte, error) {
	queryClient := wasmtypes.NewQueryClient(c.manager.GetClientContext())
	resp, err := queryClient.SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contractAddress,
		QueryData: wasmtypes.RawContractMessage(query),
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// RawContractQuery reads a raw state key out of a contract's storage.
func (c *Client) RawContractQuery(ctx context.Context, contractAddress string, key []byte) ([]byte, error) {
	queryClient := wasmtypes.NewQueryClient(c.manager.GetClientContext())
	resp, err := queryClient.RawContractState(ctx, &wasmtypes.QueryRawContractStateRequest{
		Address:   contractAddress,
		QueryData: key,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CodeInfo returns the stored code metadata for checklist verification.
func (c *Client) CodeInfo(ctx context.Context, codeID uint64) (*wasmtypes.QueryCodeResponse, error) {
	queryClient := wasmtypes.NewQueryClient(c.manager.GetClientContext())
	return queryClient.Code(ctx, &wasmtypes.QueryCodeRequest{CodeId: codeID})
}

// ContractInfo returns a deployed contract's metadata.
func (c *Client) ContractInfo(ctx context.Context, contractAddress string) (*wasmtypes.QueryContractInfoResponse, error) {
	queryClient := wasmtypes.NewQueryClient(c.manager.GetClientContext())
	return queryClient.ContractInfo(ctx, &wasmtypes.QueryContractInfoRequest{Address: contractAddress})
}
