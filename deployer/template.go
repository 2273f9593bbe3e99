// Package deployer orchestrates the store/instantiate/migrate lifecycle of
// the Amplifier contracts, both directly and through governance proposals,
// recording every result into the chains registry.
package deployer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
)

// Canonical contract names as they appear in the registry files.
const (
	ContractRouter           = "Router"
	ContractGateway          = "Gateway"
	ContractVotingVerifier   = "VotingVerifier"
	ContractMultisig         = "Multisig"
	ContractMultisigProver   = "MultisigProver"
	ContractCoordinator      = "Coordinator"
	ContractServiceRegistry  = "ServiceRegistry"
	ContractRewards          = "Rewards"
	ContractITS              = "InterchainTokenService"
	ContractAxelarnetGateway = "AxelarnetGateway"
)

const defaultBlockExpiry = cosmwasm.Uint64(10)

var ErrUnknownContract = errors.New("no instantiate template for contract")

// chainScoped contracts get one instance per connected chain; everything
// else is instantiated once per environment.
var chainScoped = map[string]bool{
	ContractGateway:        true,
	ContractVotingVerifier: true,
	ContractMultisigProver: true,
}

func IsChainScoped(contract string) bool {
	return chainScoped[contract]
}

// BuildInstantiateMsg templates the instantiate message for a contract from
// the registry, resolving every dependency address it references. This is
// the registry-driven templating the runbooks perform by hand per network.
func BuildInstantiateMsg(registry *chains.Registry, contract, chain string) ([]byte, error) {
	axelar := registry.Axelar

	switch contract {
	case ContractRouter:
		axelarnetGateway, err := registry.ContractAddress(ContractAxelarnetGateway, "")
		if err != nil {
			return nil, fmt.Errorf("router requires AxelarnetGateway: %w", err)
		}
		coordinator, err := registry.ContractAddress(ContractCoordinator, "")
		if err != nil {
			return nil, fmt.Errorf("router requires Coordinator: %w", err)
		}
		return json.Marshal(&cosmwasm.RouterInstantiateMsg{
			AdminAddress:      axelar.AdminAddress,
			GovernanceAddress: axelar.GovernanceAddress,
			AxelarnetGateway:  axelarnetGateway,
			CoordinatorAddr:   coordinator,
		})

	case ContractGateway:
		router, err := registry.ContractAddress(ContractRouter, "")
		if err != nil {
			return nil, fmt.Errorf("gateway requires Router: %w", err)
		}
		verifier, err := registry.ContractAddress(ContractVotingVerifier, chain)
		if err != nil {
			return nil, fmt.Errorf("gateway requires VotingVerifier for %s: %w", chain, err)
		}
		return json.Marshal(&cosmwasm.GatewayInstantiateMsg{
			RouterAddress:   router,
			VerifierAddress: verifier,
		})

	case ContractVotingVerifier:
		info, err := registry.Chain(chain)
		if err != nil {
			return nil, err
		}
		serviceRegistry, err := registry.ContractAddress(ContractServiceRegistry, "")
		if err != nil {
			return nil, fmt.Errorf("voting verifier requires ServiceRegistry: %w", err)
		}
		rewards, err := registry.ContractAddress(ContractRewards, "")
		if err != nil {
			return nil, fmt.Errorf("voting verifier requires Rewards: %w", err)
		}
		votingThreshold, err := cosmwasm.ParseThreshold(info.VotingThreshold)
		if err != nil {
			return nil, err
		}
		msg := &cosmwasm.VotingVerifierInstantiateMsg{
			GovernanceAddress:    axelar.GovernanceAddress,
			ServiceRegistryAddr:  serviceRegistry,
			ServiceName:          info.ServiceName,
			SourceGatewayAddress: info.ExternalGateway,
			VotingThreshold:      votingThreshold,
			BlockExpiry:          defaultBlockExpiry,
			ConfirmationHeight:   info.ConfirmationHeight,
			SourceChain:          info.AxelarID,
			RewardsAddress:       rewards,
			MsgIDFormat:          info.MsgIDFormat,
			AddressFormat:        addressFormatFor(info),
		}
		if err := msg.Validate(); err != nil {
			return nil, err
		}
		return json.Marshal(msg)

	case ContractMultisig:
		rewards, err := registry.ContractAddress(ContractRewards, "")
		if err != nil {
			return nil, fmt.Errorf("multisig requires Rewards: %w", err)
		}
		coordinator, err := registry.ContractAddress(ContractCoordinator, "")
		if err != nil {
			return nil, fmt.Errorf("multisig requires Coordinator: %w", err)
		}
		return json.Marshal(&cosmwasm.MultisigInstantiateMsg{
			GovernanceAddress: axelar.GovernanceAddress,
			AdminAddress:      axelar.AdminAddress,
			RewardsAddress:    rewards,
			BlockExpiry:       defaultBlockExpiry,
			CoordinatorAddr:   coordinator,
		})

	case ContractMultisigProver:
		info, err := registry.Chain(chain)
		if err != nil {
			return nil, err
		}
		gateway, err := registry.ContractAddress(ContractGateway, chain)
		if err != nil {
			return nil, fmt.Errorf("prover requires Gateway for %s: %w", chain, err)
		}
		multisig, err := registry.ContractAddress(ContractMultisig, "")
		if err != nil {
			return nil, fmt.Errorf("prover requires Multisig: %w", err)
		}
		coordinator, err := registry.ContractAddress(ContractCoordinator, "")
		if err != nil {
			return nil, fmt.Errorf("prover requires Coordinator: %w", err)
		}
		serviceRegistry, err := registry.ContractAddress(ContractServiceRegistry, "")
		if err != nil {
			return nil, fmt.Errorf("prover requires ServiceRegistry: %w", err)
		}
		votingVerifier, err := registry.ContractAddress(ContractVotingVerifier, chain)
		if err != nil {
			return nil, fmt.Errorf("prover requires VotingVerifier for %s: %w", chain, err)
		}
		signingThreshold, err := cosmwasm.ParseThreshold(info.SigningThreshold)
		if err != nil {
			return nil, err
		}
		encoder, keyType := encodingFor(info.ChainType)
		msg := &cosmwasm.MultisigProverInstantiateMsg{
			AdminAddress:        axelar.AdminAddress,
			GovernanceAddress:   axelar.GovernanceAddress,
			GatewayAddress:      gateway,
			MultisigAddress:     multisig,
			CoordinatorAddress:  coordinator,
			ServiceRegistryAddr: serviceRegistry,
			VotingVerifierAddr:  votingVerifier,
			SigningThreshold:    signingThreshold,
			ServiceName:         info.ServiceName,
			ChainName:           info.AxelarID,
			VerifierSetDiff:     0,
			Encoder:             encoder,
			KeyType:             keyType,
			DomainSeparator:     DomainSeparator(info.AxelarID, axelar.ChainID),
		}
		if err := msg.Validate(); err != nil {
			return nil, err
		}
		return json.Marshal(msg)

	case ContractCoordinator:
		serviceRegistry, err := registry.ContractAddress(ContractServiceRegistry, "")
		if err != nil {
			return nil, fmt.Errorf("coordinator requires ServiceRegistry: %w", err)
		}
		return json.Marshal(&cosmwasm.CoordinatorInstantiateMsg{
			GovernanceAddress:   axelar.GovernanceAddress,
			ServiceRegistryAddr: serviceRegistry,
		})

	case ContractServiceRegistry:
		return json.Marshal(&cosmwasm.ServiceRegistryInstantiateMsg{
			GovernanceAccount: axelar.GovernanceAddress,
		})

	case ContractRewards:
		return json.Marshal(&cosmwasm.RewardsInstantiateMsg{
			GovernanceAddress: axelar.GovernanceAddress,
			RewardsDenom:      axelar.Denom,
		})

	case ContractITS:
		axelarnetGateway, err := registry.ContractAddress(ContractAxelarnetGateway, "")
		if err != nil {
			return nil, fmt.Errorf("its requires AxelarnetGateway: %w", err)
		}
		return json.Marshal(&cosmwasm.InterchainTokenServiceInstantiateMsg{
			GovernanceAddress:    axelar.GovernanceAddress,
			AdminAddress:         axelar.AdminAddress,
			AxelarnetGatewayAddr: axelarnetGateway,
			OperatorAddress:      axelar.AdminAddress,
		})
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownContract, contract)
}

// DomainSeparator derives the prover's 32-byte domain separator from the
// chain pair, so the same inputs always produce the same separator on
// redeploys.
func DomainSeparator(chainName, axelarChainID string) string {
	hash := sha256.Sum256([]byte(chainName + "_" + axelarChainID))
	return hex.EncodeToString(hash[:])
}

func encodingFor(chainType string) (encoder, keyType string) {
	switch chainType {
	case "sui":
		return "bcs", "ecdsa"
	case "stellar":
		return "stellar_xdr", "ed25519"
	default:
		return "abi", "ecdsa"
	}
}

func addressFormatFor(info *chains.ChainInfo) string {
	if info.AddressFormat != "" {
		return info.AddressFormat
	}
	switch info.ChainType {
	case "sui":
		return "sui"
	case "stellar":
		return "stellar"
	default:
		return "eip55"
	}
}
