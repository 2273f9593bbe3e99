package verifier

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmosclient"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

// Registrar broadcasts the registration transactions a verifier performs
// when onboarding: the same messages ampd's register-public-key and
// register-chain-support commands send.
type Registrar struct {
	client *cosmosclient.Client
	chains *chains.Manager
}

func NewRegistrar(client *cosmosclient.Client, chainsManager *chains.Manager) *Registrar {
	return &Registrar{client: client, chains: chainsManager}
}

// RegisterPublicKey registers the verifier's signing key with the Multisig
// contract. The contract requires the sender address signed by the new key
// as proof of possession; here the key lives in the local keyring, so the
// proof is produced in place.
func (r *Registrar) RegisterPublicKey(keyType, pubKeyHex string) error {
	multisig, err := r.chains.Registry().ContractAddress("Multisig", "")
	if err != nil {
		return fmt.Errorf("register public key: %w", err)
	}

	signedSenderAddress, err := r.client.SignBytes([]byte(r.client.GetAddress()))
	if err != nil {
		return fmt.Errorf("signing sender address: %w", err)
	}

	msg, err := cosmwasm.MultisigRegisterPublicKey(keyType, pubKeyHex, signedSenderAddress)
	if err != nil {
		return err
	}

	logging.Info("Registering public key", logging.Verifiers,
		"multisig", multisig, "key_type", keyType)
	_, err = r.client.ExecuteContract(multisig, msg, nil)
	return err
}

// RegisterChainSupport declares which chains this verifier will vote on.
func (r *Registrar) RegisterChainSupport(serviceName string, chainNames []string) error {
	serviceRegistry, err := r.chains.Registry().ContractAddress("ServiceRegistry", "")
	if err != nil {
		return fmt.Errorf("register chain support: %w", err)
	}

	msg, err := cosmwasm.ServiceRegistryRegisterChainSupport(serviceName, chainNames)
	if err != nil {
		return err
	}

	logging.Info("Registering chain support", logging.Verifiers,
		"service_registry", serviceRegistry, "service", serviceName, "chains", chainNames)
	_, err = r.client.ExecuteContract(serviceRegistry, msg, nil)
	return err
}

// BondVerifier stakes the bond the service registry requires before a
// verifier becomes eligible for the active set.
func (r *Registrar) BondVerifier(serviceName string, bond sdk.Coin) error {
	serviceRegistry, err := r.chains.Registry().ContractAddress("ServiceRegistry", "")
	if err != nil {
		return fmt.Errorf("bond verifier: %w", err)
	}

	msg, err := cosmwasm.ServiceRegistryBondVerifier(serviceName)
	if err != nil {
		return err
	}

	logging.Info("Bonding verifier", logging.Verifiers,
		"service_registry", serviceRegistry, "service", serviceName, "bond", bond.String())
	_, err = r.client.ExecuteContract(serviceRegistry, msg, sdk.Coins{bond})
	return err
}
