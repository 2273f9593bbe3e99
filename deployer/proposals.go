package deployer

import (
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmosclient"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

// Governance path. On networks where wasm uploads and privileged contract
// operations are gated behind the gov module, the same operations are
// wrapped in a gov v1 proposal whose inner messages are executed by the
// gov module account once the proposal passes.

// ProposeStore submits a store-code proposal. The artifact checksum is still
// verified locally; the recorded code id only lands in the registry after
// the proposal passes, via `chains record-code`.
func (d *Deployer) ProposeStore(contract, artifactPath, expectedChecksum string, permission *wasmtypes.AccessConfig, data cosmosclient.ProposalData) (uint64, error) {
	artifact, err := cosmwasm.LoadArtifact(artifactPath)
	if err != nil {
		return 0, err
	}
	if err := artifact.VerifyChecksum(expectedChecksum); err != nil {
		return 0, err
	}

	msg := &wasmtypes.MsgStoreCode{
		Sender:                cosmosclient.GetProposalMsgSigner(),
		WASMByteCode:          artifact.Code,
		InstantiatePermission: permission,
	}

	logging.Info("Proposing store code", logging.Proposals,
		"contract", contract, "checksum", artifact.Checksum, "title", data.Title)
	return d.client.SubmitProposal([]sdk.Msg{msg}, data)
}

// ProposeInstantiate submits an instantiate2 proposal templated exactly like
// the direct path, but instantiated by the gov module account.
func (d *Deployer) ProposeInstantiate(contract, chain string, msg []byte, data cosmosclient.ProposalData) (uint64, error) {
	registry := d.chains.Registry()

	codeID, err := registry.CodeID(contract)
	if err != nil {
		return 0, fmt.Errorf("propose instantiate %s: %w", contract, err)
	}
	if msg == nil {
		msg, err = BuildInstantiateMsg(registry, contract, chain)
		if err != nil {
			return 0, err
		}
	}

	instantiateMsg := &wasmtypes.MsgInstantiateContract2{
		Sender: cosmosclient.GetProposalMsgSigner(),
		Admin:  registry.Axelar.AdminAddress,
		CodeID: codeID,
		Label:  instanceLabel(contract, chain),
		Msg:    wasmtypes.RawContractMessage(msg),
		Funds:  sdk.Coins{},
		Salt:   cosmwasm.Salt(contract, chain),
		FixMsg: false,
	}

	logging.Info("Proposing instantiate", logging.Proposals,
		"contract", contract, "chain", chain, "code_id", codeID, "title", data.Title)
	return d.client.SubmitProposal([]sdk.Msg{instantiateMsg}, data)
}

// ProposeMigrate submits a migrate proposal to the latest recorded code id.
func (d *Deployer) ProposeMigrate(contract, chain string, migrateMsg []byte, data cosmosclient.ProposalData) (uint64, error) {
	registry := d.chains.Registry()

	address, err := registry.ContractAddress(contract, chain)
	if err != nil {
		return 0, fmt.Errorf("propose migrate %s: %w", contract, err)
	}
	codeID, err := registry.CodeID(contract)
	if err != nil {
		return 0, fmt.Errorf("propose migrate %s: %w", contract, err)
	}
	if migrateMsg == nil {
		migrateMsg = []byte(`{}`)
	}

	msg := &wasmtypes.MsgMigrateContract{
		Sender:   cosmosclient.GetProposalMsgSigner(),
		Contract: address,
		CodeID:   codeID,
		Msg:      wasmtypes.RawContractMessage(migrateMsg),
	}

	logging.Info("Proposing migrate", logging.Proposals,
		"contract", contract, "chain", chain, "address", address, "code_id", codeID, "title", data.Title)
	return d.client.SubmitProposal([]sdk.Msg{msg}, data)
}

// ProposeExecute submits an execute proposal: the runbooks'
// executeByGovernance, used for governance-only entry points like
// Router.RegisterChain and ITS chain registration.
func (d *Deployer) ProposeExecute(contract, chain string, execMsg []byte, funds sdk.Coins, data cosmosclient.ProposalData) (uint64, error) {
	address, err := d.chains.Registry().ContractAddress(contract, chain)
	if err != nil {
		return 0, fmt.Errorf("propose execute %s: %w", contract, err)
	}

	msg := &wasmtypes.MsgExecuteContract{
		Sender:   cosmosclient.GetProposalMsgSigner(),
		Contract: address,
		Msg:      wasmtypes.RawContractMessage(execMsg),
		Funds:    funds,
	}

	logging.Info("Proposing execute", logging.Proposals,
		"contract", contract, "chain", chain, "address", address, "title", data.Title)
	return d.client.SubmitProposal([]sdk.Msg{msg}, data)
}

// ConnectChainMsgs builds the three execute messages that wire a freshly
// instantiated chain into the protocol: router registration, prover
// registration with the coordinator, and multisig caller authorization.
// They ride in a single proposal so the chain connects atomically.
func ConnectChainMsgs(registry *chains.Registry, chain, sender string) ([]sdk.Msg, error) {
	info, err := registry.Chain(chain)
	if err != nil {
		return nil, err
	}
	router, err := registry.ContractAddress(ContractRouter, "")
	if err != nil {
		return nil, fmt.Errorf("connect %s requires Router: %w", chain, err)
	}
	gateway, err := registry.ContractAddress(ContractGateway, chain)
	if err != nil {
		return nil, fmt.Errorf("connect %s requires Gateway: %w", chain, err)
	}
	prover, err := registry.ContractAddress(ContractMultisigProver, chain)
	if err != nil {
		return nil, fmt.Errorf("connect %s requires MultisigProver: %w", chain, err)
	}
	coordinator, err := registry.ContractAddress(ContractCoordinator, "")
	if err != nil {
		return nil, fmt.Errorf("connect %s requires Coordinator: %w", chain, err)
	}
	multisig, err := registry.ContractAddress(ContractMultisig, "")
	if err != nil {
		return nil, fmt.Errorf("connect %s requires Multisig: %w", chain, err)
	}

	registerChain, err := cosmwasm.RouterRegisterChain(cosmwasm.RegisterChain{
		Chain:          info.AxelarID,
		GatewayAddress: gateway,
		MsgIDFormat:    info.MsgIDFormat,
	})
	if err != nil {
		return nil, err
	}
	registerProver, err := cosmwasm.CoordinatorRegisterProverContract(info.AxelarID, prover)
	if err != nil {
		return nil, err
	}
	authorizeProver, err := cosmwasm.MultisigAuthorizeCallers(map[string]string{prover: info.AxelarID})
	if err != nil {
		return nil, err
	}

	return []sdk.Msg{
		&wasmtypes.MsgExecuteContract{
			Sender:   sender,
			Contract: router,
			Msg:      wasmtypes.RawContractMessage(registerChain),
		},
		&wasmtypes.MsgExecuteContract{
			Sender:   sender,
			Contract: coordinator,
			Msg:      wasmtypes.RawContractMessage(registerProver),
		},
		&wasmtypes.MsgExecuteContract{
			Sender:   sender,
			Contract: multisig,
			Msg:      wasmtypes.RawContractMessage(authorizeProver),
		},
	}, nil
}

// ProposeConnectChain submits the chain connection proposal.
func (d *Deployer) ProposeConnectChain(chain string, data cosmosclient.ProposalData) (uint64, error) {
	msgs, err := ConnectChainMsgs(d.chains.Registry(), chain, cosmosclient.GetProposalMsgSigner())
	if err != nil {
		return 0, err
	}

	logging.Info("Proposing chain connection", logging.Proposals,
		"chain", chain, "title", data.Title)
	return d.client.SubmitProposal(msgs, data)
}

// RecordPassedStore records a code id that was stored via a passed proposal,
// where the code id is only known after execution.
func (d *Deployer) RecordPassedStore(contract string, codeID uint64, checksum string) error {
	if codeID == 0 {
		return chains.ErrCodeNotStored
	}
	return d.chains.RecordCode(contract, codeID, checksum)
}
