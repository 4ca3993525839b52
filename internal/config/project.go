package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

const (
	defaultArtifactsDir   = "artifacts"
	defaultDeploymentsDir = "deployments"
	defaultExportPath     = "deployments.json"
	defaultNetwork        = "localhost"
	localhostRPC          = "http://127.0.0.1:8545"
)

// loadEnvFiles loads .env and .env.local into the process environment.
// Variables already set in the environment win.
func loadEnvFiles(projectRoot string) error {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return &domain.ConfigError{Field: "env file", Value: envFile, Err: err}
		}
	}
	return nil
}

// loadProjectConfig reads deploykit.toml, expands ${VAR} references and
// fills defaults. A missing file yields the defaults.
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	if err := loadEnvFiles(projectRoot); err != nil {
		return nil, err
	}

	cfg := &config.ProjectConfig{}
	path := filepath.Join(projectRoot, config.ProjectFileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, &domain.ConfigError{Field: config.ProjectFileName, Err: err}
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	applyDefaults(cfg)
	expandEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg *config.ProjectConfig) {
	if cfg.DefaultNetwork == "" {
		cfg.DefaultNetwork = defaultNetwork
	}
	if cfg.Paths.Artifacts == "" {
		cfg.Paths.Artifacts = defaultArtifactsDir
	}
	if cfg.Paths.Deployments == "" {
		cfg.Paths.Deployments = defaultDeploymentsDir
	}
	if cfg.Export.Path == "" {
		cfg.Export.Path = defaultExportPath
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if _, ok := cfg.Networks["localhost"]; !ok {
		cfg.Networks["localhost"] = config.NetworkConfig{URL: localhostRPC, ChainID: 31337}
	}
	if cfg.NamedAccounts == nil {
		cfg.NamedAccounts = map[string]map[string]any{
			"deployer": {"default": int64(0)},
		}
	}
}

func expandEnv(cfg *config.ProjectConfig) {
	for name, network := range cfg.Networks {
		network.URL = os.ExpandEnv(network.URL)
		accounts := make([]string, 0, len(network.Accounts))
		for _, acc := range network.Accounts {
			// Unset variables expand to "" and are dropped so a missing
			// key does not turn into a bogus signer.
			if expanded := os.ExpandEnv(acc); expanded != "" {
				accounts = append(accounts, expanded)
			}
		}
		network.Accounts = accounts
		cfg.Networks[name] = network
	}
	for role, values := range cfg.NamedAccounts {
		for key, v := range values {
			if s, ok := v.(string); ok {
				values[key] = os.ExpandEnv(s)
			}
		}
		cfg.NamedAccounts[role] = values
	}
}
