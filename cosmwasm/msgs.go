// Package cosmwasm holds the typed instantiate/execute/query messages of the
// Amplifier contracts (Router, Gateway, VotingVerifier, Multisig,
// MultisigProver, Coordinator, ServiceRegistry, Rewards, ITS hub) in their
// on-wire JSON shapes, plus wasm artifact handling and deterministic
// instantiate2 addressing.
package cosmwasm

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidChainName       = errors.New("chain name must be non-empty lowercase without spaces")
	ErrInvalidDomainSeparator = errors.New("domain separator must be 32 bytes of hex")
	ErrInvalidThreshold       = errors.New("threshold numerator must be positive and not exceed denominator")
)

// Uint64 marshals as a decimal string, the serde form of cosmwasm's Uint64.
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u *Uint64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*u = Uint64(v)
	return nil
}

// Threshold is a fraction encoded as a two-element array of decimal strings,
// e.g. ["2","3"], matching the contracts' MajorityThreshold serde form.
type Threshold [2]string

func NewThreshold(numerator, denominator uint64) (Threshold, error) {
	if numerator == 0 || denominator == 0 || numerator > denominator {
		return Threshold{}, fmt.Errorf("%w: %d/%d", ErrInvalidThreshold, numerator, denominator)
	}
	return Threshold{
		strconv.FormatUint(numerator, 10),
		strconv.FormatUint(denominator, 10),
	}, nil
}

// ParseThreshold reads the "2/3" notation the runbooks and registry use.
func ParseThreshold(s string) (Threshold, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Threshold{}, fmt.Errorf("%w: %q", ErrInvalidThreshold, s)
	}
	numerator, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("%w: %q", ErrInvalidThreshold, s)
	}
	denominator, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("%w: %q", ErrInvalidThreshold, s)
	}
	return NewThreshold(numerator, denominator)
}

// ValidateChainName enforces the contracts' ChainName invariant: the router
// rejects mixed-case or whitespace names, so catch that before broadcasting.
func ValidateChainName(name string) error {
	if name == "" || name != strings.ToLower(name) || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("%w: %q", ErrInvalidChainName, name)
	}
	return nil
}

// ValidateDomainSeparator checks the prover's 32-byte hex domain separator.
func ValidateDomainSeparator(separator string) error {
	bytes, err := hex.DecodeString(strings.TrimPrefix(separator, "0x"))
	if err != nil || len(bytes) != 32 {
		return fmt.Errorf("%w: %q", ErrInvalidDomainSeparator, separator)
	}
	return nil
}

// Instantiate messages. Field shapes follow the contracts' serde structs;
// the runbooks template exactly these values per environment.

type RouterInstantiateMsg struct {
	AdminAddress      string `json:"admin_address"`
	GovernanceAddress string `json:"governance_address"`
	AxelarnetGateway  string `json:"axelarnet_gateway"`
	CoordinatorAddr   string `json:"coordinator_address"`
}

type GatewayInstantiateMsg struct {
	RouterAddress   string `json:"router_address"`
	VerifierAddress string `json:"verifier_address"`
}

type VotingVerifierInstantiateMsg struct {
	GovernanceAddress    string    `json:"governance_address"`
	ServiceRegistryAddr  string    `json:"service_registry_address"`
	ServiceName          string    `json:"service_name"`
	SourceGatewayAddress string    `json:"source_gateway_address"`
	VotingThreshold      Threshold `json:"voting_threshold"`
	BlockExpiry          Uint64    `json:"block_expiry"`
	ConfirmationHeight   uint64    `json:"confirmation_height"`
	SourceChain          string    `json:"source_chain"`
	RewardsAddress       string    `json:"rewards_address"`
	MsgIDFormat          string    `json:"msg_id_format"`
	AddressFormat        string    `json:"address_format"`
}

type MultisigInstantiateMsg struct {
	GovernanceAddress string `json:"governance_address"`
	AdminAddress      string `json:"admin_address"`
	RewardsAddress    string `json:"rewards_address"`
	BlockExpiry       Uint64 `json:"block_expiry"`
	CoordinatorAddr   string `json:"coordinator_address"`
}

type MultisigProverInstantiateMsg struct {
	AdminAddress        string    `json:"admin_address"`
	GovernanceAddress   string    `json:"governance_address"`
	GatewayAddress      string    `json:"gateway_address"`
	MultisigAddress     string    `json:"multisig_address"`
	CoordinatorAddress  string    `json:"coordinator_address"`
	ServiceRegistryAddr string    `json:"service_registry_address"`
	VotingVerifierAddr  string    `json:"voting_verifier_address"`
	SigningThreshold    Threshold `json:"signing_threshold"`
	ServiceName         string    `json:"service_name"`
	ChainName           string    `json:"chain_name"`
	VerifierSetDiff     uint32    `json:"verifier_set_diff_threshold"`
	Encoder             string    `json:"encoder"`
	KeyType             string    `json:"key_type"`
	DomainSeparator     string    `json:"domain_separator"`
}

type CoordinatorInstantiateMsg struct {
	GovernanceAddress   string `json:"governance_address"`
	ServiceRegistryAddr string `json:"service_registry"`
}

type ServiceRegistryInstantiateMsg struct {
	GovernanceAccount string `json:"governance_account"`
}

type RewardsInstantiateMsg struct {
	GovernanceAddress string `json:"governance_address"`
	RewardsDenom      string `json:"rewards_denom"`
}

type InterchainTokenServiceInstantiateMsg struct {
	GovernanceAddress    string `json:"governance_address"`
	AdminAddress         string `json:"admin_address"`
	AxelarnetGatewayAddr string `json:"axelarnet_gateway_address"`
	OperatorAddress      string `json:"operator_address"`
}

func (m *MultisigProverInstantiateMsg) Validate() error {
	if err := ValidateChainName(m.ChainName); err != nil {
		return err
	}
	if err := ValidateDomainSeparator(m.DomainSeparator); err != nil {
		return err
	}
	switch m.Encoder {
	case "abi", "bcs", "stellar_xdr":
	default:
		return fmt.Errorf("unsupported encoder %q", m.Encoder)
	}
	switch m.KeyType {
	case "ecdsa", "ed25519":
	default:
		return fmt.Errorf("unsupported key type %q", m.KeyType)
	}
	return nil
}

func (m *VotingVerifierInstantiateMsg) Validate() error {
	return ValidateChainName(m.SourceChain)
}
