package cosmwasm

import "encoding/json"

// Query message builders for the checklist queries the runbooks perform
// after each operation.

func QueryCurrentVerifierSet() ([]byte, error) {
	return json.Marshal(map[string]any{"current_verifier_set": struct{}{}})
}

func QueryNextVerifierSet() ([]byte, error) {
	return json.Marshal(map[string]any{"next_verifier_set": struct{}{}})
}

func QueryProof(multisigSessionID uint64) ([]byte, error) {
	return json.Marshal(map[string]any{
		"proof": map[string]any{"multisig_session_id": Uint64(multisigSessionID)},
	})
}

func QueryVotingThreshold() ([]byte, error) {
	return json.Marshal(map[string]any{"current_threshold": struct{}{}})
}

func QueryRewardsPool(poolID PoolID) ([]byte, error) {
	if err := ValidateChainName(poolID.ChainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"rewards_pool": map[string]any{"pool_id": poolID},
	})
}

// QueryRouterChainInfo asks the router for a chain's registration; the
// chain_info variant takes the bare chain name as its payload.
func QueryRouterChainInfo(chainName string) ([]byte, error) {
	if err := ValidateChainName(chainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{"chain_info": chainName})
}

func QueryRouterIsEnabled() ([]byte, error) {
	return json.Marshal(map[string]any{"is_enabled": struct{}{}})
}

func QueryITSChainConfig(chainName string) ([]byte, error) {
	if err := ValidateChainName(chainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"its_chain": map[string]any{"chain": chainName},
	})
}

func QueryAllITSContracts() ([]byte, error) {
	return json.Marshal(map[string]any{"all_its_contracts": struct{}{}})
}

func QueryService(serviceName string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"service": map[string]any{"service_name": serviceName},
	})
}

func QueryVerifier(serviceName, verifierAddress string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"verifier": map[string]any{
			"service_name": serviceName,
			"verifier":     verifierAddress,
		},
	})
}

func QueryActiveVerifiers(serviceName, chainName string) ([]byte, error) {
	if err := ValidateChainName(chainName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"active_verifiers": map[string]any{
			"service_name": serviceName,
			"chain_name":   chainName,
		},
	})
}
