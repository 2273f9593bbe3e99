// Package chains owns the per-environment contract registry files
// (axelar-chains-config/info/<env>.json): which code IDs are stored, which
// contracts are instantiated where, and the role addresses used when
// templating instantiate messages and governance proposals.
package chains

import "errors"

var (
	ErrContractUnknown     = errors.New("contract is not present in the registry")
	ErrCodeNotStored       = errors.New("contract has no stored code id")
	ErrNotInstantiated     = errors.New("contract is not instantiated")
	ErrChainUnknown        = errors.New("chain is not present in the registry")
	ErrChecksumMismatch    = errors.New("artifact checksum does not match recorded checksum")
	ErrEnvironmentMismatch = errors.New("registry environment does not match requested environment")
)

type Registry struct {
	Environment string                `json:"environment"`
	Axelar      AxelarConfig          `json:"axelar"`
	Chains      map[string]*ChainInfo `json:"chains"`
}

type AxelarConfig struct {
	ChainID           string                    `json:"chainId"`
	RPC               string                    `json:"rpc"`
	GRPC              string                    `json:"grpc,omitempty"`
	TokenSymbol       string                    `json:"tokenSymbol"`
	Denom             string                    `json:"denom"`
	GasPrice          string                    `json:"gasPrice"`
	GovernanceAddress string                    `json:"governanceAddress"`
	AdminAddress      string                    `json:"adminAddress"`
	Contracts         map[string]*ContractEntry `json:"contracts"`
}

// ContractEntry is the registry record for one named contract. Chain-scoped
// contracts (Gateway, VotingVerifier, MultisigProver) carry one instance per
// connected chain; the rest (Router, Multisig, Coordinator, Rewards,
// ServiceRegistry, InterchainTokenService) have a single address.
type ContractEntry struct {
	CodeID    uint64                       `json:"codeId,omitempty"`
	Checksum  string                       `json:"checksum,omitempty"`
	Address   string                       `json:"address,omitempty"`
	Salt      string                       `json:"salt,omitempty"`
	Chains    map[string]*ContractInstance `json:"chains,omitempty"`
	Governed  bool                         `json:"governed,omitempty"`
	LastCodes []uint64                     `json:"lastCodeIds,omitempty"`
}

type ContractInstance struct {
	Address string `json:"address"`
	Salt    string `json:"salt,omitempty"`
}

// ChainInfo describes a connected (external) chain as the runbooks register
// it with the Router and the verifier contracts.
type ChainInfo struct {
	Name                 string `json:"name"`
	AxelarID             string `json:"axelarId"`
	ChainType            string `json:"chainType"`
	MsgIDFormat          string `json:"msgIdFormat,omitempty"`
	AddressFormat        string `json:"addressFormat,omitempty"`
	ExternalGateway      string `json:"externalGatewayAddress,omitempty"`
	ConfirmationHeight   uint64 `json:"confirmationHeight,omitempty"`
	ServiceName          string `json:"serviceName,omitempty"`
	VotingThreshold      string `json:"votingThreshold,omitempty"`
	SigningThreshold     string `json:"signingThreshold,omitempty"`
	FinalizationApproach string `json:"finalization,omitempty"`
}

func (r *Registry) contract(name string) (*ContractEntry, error) {
	entry, ok := r.Axelar.Contracts[name]
	if !ok || entry == nil {
		return nil, ErrContractUnknown
	}
	return entry, nil
}

// CodeID returns the stored code id for a contract.
func (r *Registry) CodeID(name string) (uint64, error) {
	entry, err := r.contract(name)
	if err != nil {
		return 0, err
	}
	if entry.CodeID == 0 {
		return 0, ErrCodeNotStored
	}
	return entry.CodeID, nil
}

// ContractAddress resolves the address of a contract, per-chain when chain
// is non-empty and the contract is chain-scoped.
func (r *Registry) ContractAddress(name, chain string) (string, error) {
	entry, err := r.contract(name)
	if err != nil {
		return "", err
	}
	if chain == "" {
		if entry.Address == "" {
			return "", ErrNotInstantiated
		}
		return entry.Address, nil
	}
	instance, ok := entry.Chains[chain]
	if !ok || instance == nil || instance.Address == "" {
		return "", ErrNotInstantiated
	}
	return instance.Address, nil
}

// Chain returns the registered info for a connected chain.
func (r *Registry) Chain(name string) (*ChainInfo, error) {
	info, ok := r.Chains[name]
	if !ok || info == nil {
		return nil, ErrChainUnknown
	}
	return info, nil
}
