package config

import (
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type ConfigManager struct {
	currentConfig  Config
	KoanProvider   koanf.Provider
	WriterProvider WriteCloserProvider
	mutex          sync.Mutex
}

type WriteCloserProvider interface {
	GetWriter() WriteCloser
}

type WriteCloser interface {
	Write([]byte) (int, error)
	Close() error
}

func LoadDefaultConfigManager() (*ConfigManager, error) {
	manager := ConfigManager{
		KoanProvider:   getFileProvider(),
		WriterProvider: NewFileWriteCloserProvider(getConfigPath()),
		mutex:          sync.Mutex{},
	}
	err := manager.Load()
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

func (cm *ConfigManager) Load() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	config, err := readConfig(cm.KoanProvider)
	if err != nil {
		return err
	}
	cm.currentConfig = config
	return nil
}

func (cm *ConfigManager) Write() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	return writeConfig(cm.currentConfig, cm.WriterProvider.GetWriter())
}

func (cm *ConfigManager) GetConfig() *Config {
	return &cm.currentConfig
}

// SetEnvironment switches the target environment and persists the config.
func (cm *ConfigManager) SetEnvironment(environment string) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.currentConfig.Environment = environment
	slog.Info("Setting environment", "environment", environment)
	return writeConfig(cm.currentConfig, cm.WriterProvider.GetWriter())
}

func getFileProvider() koanf.Provider {
	return file.Provider(getConfigPath())
}

func getConfigPath() string {
	configPath := os.Getenv("AXELAR_DEPLOY_CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml" // Default value if the environment variable is not set
	}
	return configPath
}

type FileWriteCloserProvider struct {
	path string
}

func NewFileWriteCloserProvider(path string) *FileWriteCloserProvider {
	return &FileWriteCloserProvider{path: path}
}

func (f *FileWriteCloserProvider) GetWriter() WriteCloser {
	file, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		log.Fatalf("error opening file at %s: %v", f.path, err)
	}
	return file
}

func readConfig(provider koanf.Provider) (Config, error) {
	k := koanf.New(".")
	parser := yaml.Parser()

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, err
	}

	if err := k.Load(provider, parser); err != nil {
		return Config{}, err
	}

	err := k.Load(env.Provider("AXELAR_DEPLOY_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "AXELAR_DEPLOY_")), "__", ".", -1)
	}), nil)
	if err != nil {
		return Config{}, err
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return Config{}, err
	}

	if keyName, found := os.LookupEnv("KEY_NAME"); found {
		slog.Info("Setting chain_node.account_name from env var", "AccountName", keyName)
		config.ChainNode.AccountName = keyName
	}
	if nodeUrl, found := os.LookupEnv("NODE_URL"); found {
		slog.Info("Setting chain_node.url from env var", "Url", nodeUrl)
		config.ChainNode.Url = nodeUrl
	}
	return config, nil
}

func writeConfig(config Config, writer WriteCloser) error {
	k := koanf.New(".")
	parser := yaml.Parser()
	err := k.Load(structs.Provider(config, "koanf"), nil)
	if err != nil {
		slog.Error("error loading config", "error", err)
		return err
	}
	output, err := k.Marshal(parser)
	if err != nil {
		slog.Error("error marshalling config", "error", err)
		return err
	}
	_, err = writer.Write(output)
	if err != nil {
		slog.Error("error writing config", "error", err)
		return err
	}
	return nil
}
