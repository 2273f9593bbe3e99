package deployer

import (
	"fmt"
	"strings"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmosclient"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

type Deployer struct {
	client *cosmosclient.Client
	chains *chains.Manager
}

func New(client *cosmosclient.Client, chainsManager *chains.Manager) *Deployer {
	return &Deployer{client: client, chains: chainsManager}
}

func (d *Deployer) Client() *cosmosclient.Client {
	return d.client
}

// Store uploads a contract artifact and records the code id and checksum.
// expectedChecksum, when given, must match the artifact on disk before
// anything is broadcast.
func (d *Deployer) Store(contract, artifactPath, expectedChecksum string, permission *wasmtypes.AccessConfig) (uint64, error) {
	artifact, err := cosmwasm.LoadArtifact(artifactPath)
	if err != nil {
		return 0, err
	}
	if err := artifact.VerifyChecksum(expectedChecksum); err != nil {
		return 0, err
	}

	logging.Info("Storing contract code", logging.Deploy,
		"contract", contract, "artifact", artifactPath, "size", artifact.Size, "checksum", artifact.Checksum)

	codeID, _, err := d.client.StoreCode(artifact.Code, permission)
	if err != nil {
		return 0, err
	}

	if err := d.chains.RecordCode(contract, codeID, artifact.Checksum); err != nil {
		return 0, fmt.Errorf("code %d stored but not recorded: %w", codeID, err)
	}
	return codeID, nil
}

// prepareInstantiate resolves the code id and templates the instantiate
// message unless an override is given.
func (d *Deployer) prepareInstantiate(contract, chain string, msg []byte) (uint64, []byte, error) {
	registry := d.chains.Registry()

	if chainScoped[contract] && chain == "" {
		return 0, nil, fmt.Errorf("contract %s is chain-scoped, chain is required", contract)
	}

	codeID, err := registry.CodeID(contract)
	if err != nil {
		return 0, nil, fmt.Errorf("instantiate %s: %w", contract, err)
	}

	if msg == nil {
		msg, err = BuildInstantiateMsg(registry, contract, chain)
		if err != nil {
			return 0, nil, err
		}
	}
	return codeID, msg, nil
}

// Instantiate deploys a contract from its recorded code id at the
// deterministic instantiate2 address and records the address. msg overrides
// the registry-templated instantiate message when non-nil.
func (d *Deployer) Instantiate(contract, chain string, msg []byte, funds sdk.Coins) (string, error) {
	codeID, msg, err := d.prepareInstantiate(contract, chain, msg)
	if err != nil {
		return "", err
	}

	salt := cosmwasm.Salt(contract, chain)
	label := instanceLabel(contract, chain)
	admin := d.chains.Registry().Axelar.AdminAddress

	logging.Info("Instantiating contract", logging.Deploy,
		"contract", contract, "chain", chain, "code_id", codeID, "label", label)

	address, err := d.client.Instantiate2Contract(codeID, label, admin, msg, salt, funds)
	if err != nil {
		return "", err
	}

	if err := d.chains.RecordAddress(contract, chain, address, cosmwasm.SaltHex(contract, chain)); err != nil {
		return "", fmt.Errorf("contract %s instantiated at %s but not recorded: %w", contract, address, err)
	}
	return address, nil
}

// InstantiateFresh deploys at a chain-assigned address instead of the
// deterministic one, for environments that do not care about address
// prediction. No salt is recorded.
func (d *Deployer) InstantiateFresh(contract, chain string, msg []byte, funds sdk.Coins) (string, error) {
	codeID, msg, err := d.prepareInstantiate(contract, chain, msg)
	if err != nil {
		return "", err
	}

	label := instanceLabel(contract, chain)
	admin := d.chains.Registry().Axelar.AdminAddress

	logging.Info("Instantiating contract at a fresh address", logging.Deploy,
		"contract", contract, "chain", chain, "code_id", codeID, "label", label)

	address, err := d.client.InstantiateContract(codeID, label, admin, msg, funds)
	if err != nil {
		return "", err
	}

	if err := d.chains.RecordAddress(contract, chain, address, ""); err != nil {
		return "", fmt.Errorf("contract %s instantiated at %s but not recorded: %w", contract, address, err)
	}
	return address, nil
}

// PredictAddress computes where Instantiate would place a contract, for
// pre-deployment checklist verification.
func (d *Deployer) PredictAddress(contract, chain, prefix string) (string, error) {
	registry := d.chains.Registry()
	entry, ok := registry.Axelar.Contracts[contract]
	if !ok || entry == nil || entry.Checksum == "" {
		return "", fmt.Errorf("predict %s: %w", contract, chains.ErrCodeNotStored)
	}
	creator, err := sdk.GetFromBech32(d.client.GetAddress(), prefix)
	if err != nil {
		return "", err
	}
	return cosmwasm.PredictAddress(entry.Checksum, creator, cosmwasm.Salt(contract, chain), prefix)
}

// Migrate upgrades a deployed contract to its latest recorded code id.
func (d *Deployer) Migrate(contract, chain string, migrateMsg []byte) error {
	registry := d.chains.Registry()

	address, err := registry.ContractAddress(contract, chain)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", contract, err)
	}
	codeID, err := registry.CodeID(contract)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", contract, err)
	}
	if migrateMsg == nil {
		migrateMsg = []byte(`{}`)
	}

	logging.Info("Migrating contract", logging.Deploy,
		"contract", contract, "chain", chain, "address", address, "code_id", codeID)

	_, err = d.client.MigrateContract(address, codeID, migrateMsg)
	return err
}

// Execute runs an execute message against a registry-resolved contract.
func (d *Deployer) Execute(contract, chain string, msg []byte, funds sdk.Coins) error {
	address, err := d.chains.Registry().ContractAddress(contract, chain)
	if err != nil {
		return fmt.Errorf("execute %s: %w", contract, err)
	}
	_, err = d.client.ExecuteContract(address, msg, funds)
	return err
}

// ExecuteAsync broadcasts an execute message without waiting for inclusion
// and returns the tx hash for later confirmation.
func (d *Deployer) ExecuteAsync(contract, chain string, msg []byte, funds sdk.Coins) (string, error) {
	address, err := d.chains.Registry().ContractAddress(contract, chain)
	if err != nil {
		return "", fmt.Errorf("execute %s: %w", contract, err)
	}
	return d.client.ExecuteContractAsync(address, msg, funds)
}

func instanceLabel(contract, chain string) string {
	if chain == "" {
		return strings.ToLower(contract)
	}
	return strings.ToLower(contract) + "-" + chain
}
