package chains

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

// Manager loads one environment's registry file and writes every recorded
// change back out, whole-file, so the on-disk JSON is always consistent.
type Manager struct {
	path     string
	registry *Registry
	mutex    sync.Mutex
}

func Load(dir, environment string) (*Manager, error) {
	path := filepath.Join(dir, environment+".json")
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chains config %s: %w", path, err)
	}

	var registry Registry
	if err := json.Unmarshal(bytes, &registry); err != nil {
		return nil, fmt.Errorf("parsing chains config %s: %w", path, err)
	}
	if registry.Environment != "" && registry.Environment != environment {
		return nil, fmt.Errorf("%w: file says %q, requested %q",
			ErrEnvironmentMismatch, registry.Environment, environment)
	}
	if registry.Axelar.Contracts == nil {
		registry.Axelar.Contracts = map[string]*ContractEntry{}
	}
	if registry.Chains == nil {
		registry.Chains = map[string]*ChainInfo{}
	}

	logging.Info("Loaded chains config", logging.Chains,
		"path", path,
		"contracts", len(registry.Axelar.Contracts),
		"chains", len(registry.Chains))
	return &Manager{path: path, registry: &registry}, nil
}

// NewManager wraps an in-memory registry; tests and `chains init` use it.
func NewManager(path string, registry *Registry) *Manager {
	if registry.Axelar.Contracts == nil {
		registry.Axelar.Contracts = map[string]*ContractEntry{}
	}
	if registry.Chains == nil {
		registry.Chains = map[string]*ChainInfo{}
	}
	return &Manager{path: path, registry: registry}
}

func (m *Manager) Registry() *Registry {
	return m.registry
}

func (m *Manager) Save() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	bytes, err := json.MarshalIndent(m.registry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, append(bytes, '\n'), 0644)
}

// RecordCode stores the result of a successful MsgStoreCode. The previous
// code id is kept so migrations can be rolled back by hand.
func (m *Manager) RecordCode(contract string, codeID uint64, checksum string) error {
	entry := m.ensureContract(contract)
	if entry.CodeID != 0 && entry.CodeID != codeID {
		entry.LastCodes = append(entry.LastCodes, entry.CodeID)
	}
	entry.CodeID = codeID
	entry.Checksum = checksum
	logging.Info("Recorded stored code", logging.Chains,
		"contract", contract, "code_id", codeID, "checksum", checksum)
	return m.Save()
}

// RecordAddress stores an instantiated contract address, per-chain when
// chain is non-empty.
func (m *Manager) RecordAddress(contract, chain, address, salt string) error {
	entry := m.ensureContract(contract)
	if chain == "" {
		entry.Address = address
		entry.Salt = salt
	} else {
		if entry.Chains == nil {
			entry.Chains = map[string]*ContractInstance{}
		}
		entry.Chains[chain] = &ContractInstance{Address: address, Salt: salt}
	}
	logging.Info("Recorded contract address", logging.Chains,
		"contract", contract, "chain", chain, "address", address)
	return m.Save()
}

// RecordChain registers or replaces a connected chain's info.
func (m *Manager) RecordChain(info *ChainInfo) error {
	m.registry.Chains[info.Name] = info
	logging.Info("Recorded chain", logging.Chains, "chain", info.Name)
	return m.Save()
}

func (m *Manager) ensureContract(name string) *ContractEntry {
	entry, ok := m.registry.Axelar.Contracts[name]
	if !ok || entry == nil {
		entry = &ContractEntry{}
		m.registry.Axelar.Contracts[name] = entry
	}
	return entry
}
