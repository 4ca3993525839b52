package config

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

const sampleProject = `
default_network = "anvil"

[paths]
artifacts = "out"

[export]
path = "build/addresses.json"
local_chain_id = 1337

[networks.anvil]
url = "http://127.0.0.1:8545"
chain_id = 1337

[networks.sepolia]
url = "${TEST_SEPOLIA_RPC}"
chain_id = 11155111
accounts = ["${TEST_DEPLOYER_KEY}", "${TEST_UNSET_KEY}"]
live = true
tags = ["USDC"]

[named_accounts.deployer]
default = 0
sepolia = "${TEST_SEPOLIA_DEPLOYER}"
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ProjectFileName), []byte(content), 0644))
	return dir
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("defaults without project file", func(t *testing.T) {
		cfg, err := loadProjectConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.DefaultNetwork)
		assert.Equal(t, "artifacts", cfg.Paths.Artifacts)
		assert.Equal(t, "deployments", cfg.Paths.Deployments)
		assert.Equal(t, "deployments.json", cfg.Export.Path)
		assert.Equal(t, uint64(31337), cfg.Networks["localhost"].ChainID)
		assert.Equal(t, int64(0), cfg.NamedAccounts["deployer"]["default"])
	})

	t.Run("expands env from .env files", func(t *testing.T) {
		dir := writeProject(t, sampleProject)
		env := "TEST_SEPOLIA_RPC=https://rpc.sepolia.example\n" +
			"TEST_DEPLOYER_KEY=0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80\n" +
			"TEST_SEPOLIA_DEPLOYER=0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644))
		for _, k := range []string{"TEST_SEPOLIA_RPC", "TEST_DEPLOYER_KEY", "TEST_SEPOLIA_DEPLOYER"} {
			t.Cleanup(func() { os.Unsetenv(k) })
		}

		cfg, err := loadProjectConfig(dir)
		require.NoError(t, err)

		sepolia := cfg.Networks["sepolia"]
		assert.Equal(t, "https://rpc.sepolia.example", sepolia.URL)
		assert.Equal(t, []string{"0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"}, sepolia.Accounts)
		assert.True(t, sepolia.Live)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", cfg.NamedAccounts["deployer"]["sepolia"])
		assert.Equal(t, "out", cfg.Paths.Artifacts)
		assert.Equal(t, uint64(1337), cfg.Export.LocalChainID)
	})

	t.Run("malformed project file", func(t *testing.T) {
		dir := writeProject(t, "default_network = [")
		_, err := loadProjectConfig(dir)

		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, config.ProjectFileName, cfgErr.Field)
	})
}

func TestProvider(t *testing.T) {
	dir := writeProject(t, sampleProject)

	v := viper.New()
	v.Set("project_root", dir)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "anvil", cfg.Network.Name)
	assert.Equal(t, uint64(1337), cfg.Network.ChainID)
	assert.Equal(t, "1337", cfg.LocalChainID)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.ArtifactsDir)
	assert.Equal(t, filepath.Join(dir, "deployments"), cfg.DeploymentsDir)
	assert.Equal(t, filepath.Join(dir, "build", "addresses.json"), cfg.ExportPath)
	assert.Equal(t, filepath.Join(dir, "build", "addresses.json.tmp"), cfg.TempExportPath())

	v.Set("network", "mainnet")
	_, err = Provider(v)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectProvider(t *testing.T) {
	dir := writeProject(t, sampleProject)

	v := viper.New()
	v.Set("project_root", dir)
	// sepolia has an unset RPC variable and is never resolved
	v.Set("network", "sepolia")

	cfg, err := ProjectProvider(v)
	require.NoError(t, err)
	assert.Nil(t, cfg.Network)
	assert.Equal(t, "1337", cfg.LocalChainID)
	assert.Equal(t, filepath.Join(dir, "build", "addresses.json"), cfg.ExportPath)
}

type fakeChain struct {
	id    *big.Int
	err   error
	calls *int
}

func (f fakeChain) ChainID(context.Context) (*big.Int, error) {
	*f.calls++
	return f.id, f.err
}

func (fakeChain) Close() {}

func TestNetworkResolver(t *testing.T) {
	ctx := context.Background()
	project := &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{
			"local":  {URL: "http://127.0.0.1:8545", ChainID: 31337},
			"remote": {URL: "http://rpc.example"},
			"broken": {URL: "http://broken.example"},
			"empty":  {},
		},
	}

	t.Run("configured chain id skips rpc", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), project)
		r.dial = func(context.Context, string) (chainIDFetcher, error) {
			t.Fatal("unexpected dial")
			return nil, nil
		}
		n, err := r.Resolve(ctx, "local")
		require.NoError(t, err)
		assert.Equal(t, "31337", n.ChainIDString())
	})

	t.Run("fetches and caches chain id", func(t *testing.T) {
		root := t.TempDir()
		calls := 0
		r := NewNetworkResolver(root, project)
		r.dial = func(context.Context, string) (chainIDFetcher, error) {
			return fakeChain{id: big.NewInt(10), calls: &calls}, nil
		}

		for range 2 {
			n, err := r.Resolve(ctx, "remote")
			require.NoError(t, err)
			assert.Equal(t, uint64(10), n.ChainID)
		}
		assert.Equal(t, 1, calls)
		assert.FileExists(t, filepath.Join(root, "cache", "chainIds.json"))

		// a fresh resolver reads the cache from disk
		again := NewNetworkResolver(root, project)
		again.dial = func(context.Context, string) (chainIDFetcher, error) {
			return nil, errors.New("offline")
		}
		n, err := again.Resolve(ctx, "remote")
		require.NoError(t, err)
		assert.Equal(t, uint64(10), n.ChainID)
	})

	t.Run("rpc failure", func(t *testing.T) {
		calls := 0
		r := NewNetworkResolver(t.TempDir(), project)
		r.dial = func(context.Context, string) (chainIDFetcher, error) {
			return fakeChain{err: errors.New("connection refused"), calls: &calls}, nil
		}
		_, err := r.Resolve(ctx, "broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := NewNetworkResolver(t.TempDir(), project).Resolve(ctx, "empty")
		var cfgErr *domain.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("names are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"broken", "empty", "local", "remote"}, NewNetworkResolver(t.TempDir(), project).Names())
	})
}

func TestDeployerKey(t *testing.T) {
	t.Run("missing and required", func(t *testing.T) {
		t.Setenv(DeployerKeyEnv, "")
		_, err := DeployerKey(true)
		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "error parsing .env file")
	})

	t.Run("missing and optional", func(t *testing.T) {
		t.Setenv(DeployerKeyEnv, "")
		key, err := DeployerKey(false)
		require.NoError(t, err)
		assert.Nil(t, key)
	})

	t.Run("malformed key", func(t *testing.T) {
		t.Setenv(DeployerKeyEnv, "0x1234")
		_, err := DeployerKey(false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing .env file")
		assert.NotContains(t, err.Error(), "0x1234")
	})

	t.Run("valid key with prefix", func(t *testing.T) {
		t.Setenv(DeployerKeyEnv, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
		key, err := DeployerKey(true)
		require.NoError(t, err)
		require.NotNil(t, key)
	})
}

func TestFindProjectRoot(t *testing.T) {
	dir := writeProject(t, "")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	root, err := FindProjectRoot()
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, want, got)
}
