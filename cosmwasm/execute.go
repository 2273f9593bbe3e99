package cosmwasm

import (
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/math"
)

// Execute message builders. Each returns the JSON the contract expects under
// its single-variant envelope, e.g. {"register_chain":{...}}.

var ErrInvalidMaxUint = errors.New("max_uint is not a valid integer")

type RegisterChain struct {
	Chain          string `json:"chain"`
	GatewayAddress string `json:"gateway_address"`
	MsgIDFormat    string `json:"msg_id_format"`
}

// RouterRegisterChain connects a chain to the router. Governance-only on
// every environment, so this normally rides inside an execute proposal.
func RouterRegisterChain(msg RegisterChain) ([]byte, error) {
	if err := ValidateChainName(msg.Chain); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{"register_chain": msg})
}

func RouterFreezeChains(chainNames []string) ([]byte, error) {
	for _, name := range chainNames {
		if err := ValidateChainName(name); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]any{
		"freeze_chains": map[string]any{"chains": chainNames},
	})
}

func RouterUnfreezeChains(chainNames []string) ([]byte, error) {
	for _, name := range chainNames {
		if err := ValidateChainName(name); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]any{
		"unfreeze_chains": map[string]any{"chains": chainNames},
	})
}

// MultisigAuthorizeCallers lets the listed provers start signing sessions.
// The map is prover address -> chain name.
func MultisigAuthorizeCallers(contracts map[string]string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"authorize_callers": map[string]any{"contracts": contracts},
	})
}

func MultisigDisableSigning() ([]byte, error) {
	return json.Marshal(map[string]any{"disable_signing": struct{}{}})
}

func MultisigEnableSigning() ([]byte, error) {
	return json.Marshal(map[string]any{"enable_signing": struct{}{}})
}

// MultisigRegisterPublicKey is the ampd-side registration: the key itself
// keyed by algorithm, plus the sender address signed by that key.
func MultisigRegisterPublicKey(keyType, publicKeyHex string, signedSenderAddress []byte) ([]byte, error) {
	return json.Marshal(map[string]any{
		"register_public_key": map[string]any{
			"public_key":            map[string]string{keyType: publicKeyHex},
			"signed_sender_address": signedSenderAddress,
		},
	})
}

func CoordinatorRegisterProverContract(chainName, proverAddress string) ([]byte, error) {
	if err := ValidateChainName(chainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"register_prover_contract": map[string]any{
			"chain_name":      chainName,
			"new_prover_addr": proverAddress,
		},
	})
}

func ProverUpdateVerifierSet() ([]byte, error) {
	return json.Marshal(map[string]any{"update_verifier_set": struct{}{}})
}

func ProverUpdateSigningThreshold(threshold Threshold) ([]byte, error) {
	return json.Marshal(map[string]any{
		"update_signing_threshold": map[string]any{"new_signing_threshold": threshold},
	})
}

func VerifierUpdateVotingThreshold(threshold Threshold) ([]byte, error) {
	return json.Marshal(map[string]any{
		"update_voting_threshold": map[string]any{"new_voting_threshold": threshold},
	})
}

// PoolID identifies a rewards pool: the chain and the contract whose
// participation is being rewarded (voting verifier or multisig).
type PoolID struct {
	ChainName string `json:"chain_name"`
	Contract  string `json:"contract"`
}

type RewardsParams struct {
	EpochDuration          Uint64    `json:"epoch_duration"`
	RewardsPerEpoch        Uint64    `json:"rewards_per_epoch"`
	ParticipationThreshold Threshold `json:"participation_threshold"`
}

func RewardsCreatePool(poolID PoolID, params RewardsParams) ([]byte, error) {
	if err := ValidateChainName(poolID.ChainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"create_pool": map[string]any{
			"pool_id": poolID,
			"params":  params,
		},
	})
}

// RewardsAddRewards tops up a pool; the actual funds ride on the
// MsgExecuteContract as attached coins.
func RewardsAddRewards(poolID PoolID) ([]byte, error) {
	if err := ValidateChainName(poolID.ChainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"add_rewards": map[string]any{"pool_id": poolID},
	})
}

type ServiceParams struct {
	ServiceName         string `json:"service_name"`
	CoordinatorContract string `json:"coordinator_contract"`
	MinNumVerifiers     uint16 `json:"min_num_verifiers"`
	MaxNumVerifiers     *int   `json:"max_num_verifiers"`
	MinVerifierBond     Uint64 `json:"min_verifier_bond"`
	BondDenom           string `json:"bond_denom"`
	UnbondingPeriodDays uint16 `json:"unbonding_period_days"`
	Description         string `json:"description"`
}

func ServiceRegistryRegisterService(params ServiceParams) ([]byte, error) {
	return json.Marshal(map[string]any{"register_service": params})
}

func ServiceRegistryAuthorizeVerifiers(serviceName string, verifierAddresses []string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"authorize_verifiers": map[string]any{
			"verifiers":    verifierAddresses,
			"service_name": serviceName,
		},
	})
}

// ServiceRegistryRegisterChainSupport is what ampd's register-chain-support
// command broadcasts on behalf of a verifier.
func ServiceRegistryRegisterChainSupport(serviceName string, chainNames []string) ([]byte, error) {
	for _, name := range chainNames {
		if err := ValidateChainName(name); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]any{
		"register_chain_support": map[string]any{
			"service_name": serviceName,
			"chains":       chainNames,
		},
	})
}

// ServiceRegistryBondVerifier bonds the sending verifier into a service;
// the bond itself is attached to the MsgExecuteContract as funds.
func ServiceRegistryBondVerifier(serviceName string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"bond_verifier": map[string]any{"service_name": serviceName},
	})
}

// ITSChainRegistration registers a chain with the ITS hub, including the
// truncation settings for token amounts crossing decimal boundaries.
type ITSChainRegistration struct {
	Chain           string        `json:"chain"`
	ITSEdgeContract string        `json:"its_edge_contract"`
	Truncation      ITSTruncation `json:"truncation"`
}

type ITSTruncation struct {
	MaxUint     string `json:"max_uint"`
	MaxDecimals uint8  `json:"max_decimals_when_truncating"`
}

func ITSRegisterChains(registrations []ITSChainRegistration) ([]byte, error) {
	for _, registration := range registrations {
		if err := ValidateChainName(registration.Chain); err != nil {
			return nil, err
		}
		// max_uint is a decimal string; the hub expects up to 2^256-1.
		if _, ok := math.NewIntFromString(registration.Truncation.MaxUint); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMaxUint, registration.Truncation.MaxUint)
		}
	}
	return json.Marshal(map[string]any{
		"register_chains": map[string]any{"chains": registrations},
	})
}

// ITSDisableExecution is the hub killswitch from the emergency playbook.
func ITSDisableExecution() ([]byte, error) {
	return json.Marshal(map[string]any{"disable_execution": struct{}{}})
}

func ITSEnableExecution() ([]byte, error) {
	return json.Marshal(map[string]any{"enable_execution": struct{}{}})
}

func ITSFreezeChain(chainName string) ([]byte, error) {
	if err := ValidateChainName(chainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"freeze_chain": map[string]any{"chain": chainName},
	})
}

func ITSUnfreezeChain(chainName string) ([]byte, error) {
	if err := ValidateChainName(chainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"unfreeze_chain": map[string]any{"chain": chainName},
	})
}
