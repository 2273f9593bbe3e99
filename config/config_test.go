package config_test

import (
	"testing"

	"github.com/axelarnetwork/axelar-contract-deployments/config"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad(t *testing.T) {
	testManager := &config.ConfigManager{
		KoanProvider: rawbytes.Provider([]byte(testYaml)),
	}
	err := testManager.Load()
	require.NoError(t, err)
	require.Equal(t, "testnet", testManager.GetConfig().Environment)
	require.Equal(t, "http://testnet-node:26657", testManager.GetConfig().ChainNode.Url)
	require.Equal(t, "amplifier-deployer", testManager.GetConfig().ChainNode.AccountName)
	require.Equal(t, "file", testManager.GetConfig().ChainNode.KeyringBackend)
	require.Equal(t, "/root/.axelar", testManager.GetConfig().ChainNode.KeyringDir)
	require.Equal(t, "0.007uaxl", testManager.GetConfig().Gas.Prices)
}

func TestConfigDefaultsApplyWhenUnset(t *testing.T) {
	testManager := &config.ConfigManager{
		KoanProvider: rawbytes.Provider([]byte("environment: stagenet\n")),
	}
	err := testManager.Load()
	require.NoError(t, err)
	require.Equal(t, "stagenet", testManager.GetConfig().Environment)
	// Everything else falls back to defaults.
	require.Equal(t, "axelar", testManager.GetConfig().ChainNode.AddressPrefix)
	require.Equal(t, "test", testManager.GetConfig().ChainNode.KeyringBackend)
	require.Equal(t, 1.4, testManager.GetConfig().Gas.Adjustment)
}

type CaptureWriterProvider struct {
	CapturedData string
}

func (c *CaptureWriterProvider) Write(data []byte) (int, error) {
	c.CapturedData += string(data)
	return len(data), nil
}

func (c *CaptureWriterProvider) Close() error {
	return nil
}

func (c *CaptureWriterProvider) GetWriter() config.WriteCloser {
	return c
}

func TestConfigRoundTrip(t *testing.T) {
	writeCapture := &CaptureWriterProvider{}
	testManager := &config.ConfigManager{
		KoanProvider:   rawbytes.Provider([]byte(testYaml)),
		WriterProvider: writeCapture,
	}
	err := testManager.Load()
	require.NoError(t, err)

	err = testManager.Write()
	require.NoError(t, err)

	testManager2 := &config.ConfigManager{
		KoanProvider: rawbytes.Provider([]byte(writeCapture.CapturedData)),
	}
	err = testManager2.Load()
	require.NoError(t, err)
	require.Equal(t, "testnet", testManager2.GetConfig().Environment)
	require.Equal(t, "http://testnet-node:26657", testManager2.GetConfig().ChainNode.Url)
	require.Equal(t, "amplifier-deployer", testManager2.GetConfig().ChainNode.AccountName)
}

func TestSetEnvironmentPersists(t *testing.T) {
	writeCapture := &CaptureWriterProvider{}
	testManager := &config.ConfigManager{
		KoanProvider:   rawbytes.Provider([]byte(testYaml)),
		WriterProvider: writeCapture,
	}
	require.NoError(t, testManager.Load())

	require.NoError(t, testManager.SetEnvironment("mainnet"))
	require.Equal(t, "mainnet", testManager.GetConfig().Environment)

	// The written file carries the new environment and keeps the rest.
	reloaded := &config.ConfigManager{
		KoanProvider: rawbytes.Provider([]byte(writeCapture.CapturedData)),
	}
	require.NoError(t, reloaded.Load())
	require.Equal(t, "mainnet", reloaded.GetConfig().Environment)
	require.Equal(t, "http://testnet-node:26657", reloaded.GetConfig().ChainNode.Url)
	require.Equal(t, "amplifier-deployer", reloaded.GetConfig().ChainNode.AccountName)
}

var testYaml = `
environment: testnet
chains_dir: axelar-chains-config/info
chain_node:
    url: http://testnet-node:26657
    account_name: amplifier-deployer
    address_prefix: axelar
    keyring_backend: file
    keyring_dir: /root/.axelar
gas:
    prices: 0.007uaxl
    adjustment: 1.4
`
