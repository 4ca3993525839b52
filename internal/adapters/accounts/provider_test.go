package accounts

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

const (
	// well known dev node keys
	key0 = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	key1 = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

	addr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	addr1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeNode answers eth_accounts and counts calls
func fakeNode(t *testing.T, accounts []string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls.Add(1)

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if req.Method == "eth_accounts" {
			resp["result"] = accounts
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func runtimeConfig(network *config.Network, named map[string]map[string]any) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: network,
		Project: &config.ProjectConfig{NamedAccounts: named},
	}
}

func TestKeyring(t *testing.T) {
	t.Run("network accounts in order", func(t *testing.T) {
		cfg := runtimeConfig(&config.Network{Name: "sepolia", Accounts: []string{key0, key1, key0}}, nil)
		k, err := NewKeyring(cfg)
		require.NoError(t, err)

		require.Equal(t, 2, k.Len())
		assert.Equal(t, addr0, k.Addresses()[0].Hex())
		assert.Equal(t, addr1, k.Addresses()[1].Hex())

		key, err := k.Key(addr1)
		require.NoError(t, err)
		assert.Equal(t, addr1, crypto.PubkeyToAddress(key.PublicKey).Hex())

		_, err = k.Key("0x0000000000000000000000000000000000000001")
		assert.ErrorIs(t, err, domain.ErrNoSigner)
		_, err = k.Key("nope")
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("falls back to deployer key", func(t *testing.T) {
		t.Setenv("DEPLOYER_PRIVATE_KEY", key1)
		k, err := NewKeyring(runtimeConfig(&config.Network{Name: "localhost"}, nil))
		require.NoError(t, err)
		require.Equal(t, 1, k.Len())
		assert.Equal(t, addr1, k.Addresses()[0].Hex())
	})

	t.Run("rejects malformed network key", func(t *testing.T) {
		_, err := NewKeyring(runtimeConfig(&config.Network{Name: "sepolia", Accounts: []string{"0xdead"}}, nil))
		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "networks.sepolia.accounts[0]", cfgErr.Field)
	})
}

func TestProvider(t *testing.T) {
	ctx := context.Background()
	named := map[string]map[string]any{
		"deployer": {"default": int64(0)},
		"owner":    {"default": int64(1), "sepolia": "0x90F79bf6EB2c4f870365E785982E1f101E93b906"},
		"treasury": {"11155111": "0x15d34AAf54267DB7D7c367839AAf71A00a2C6A65"},
		"guardian": {"mainnet": "0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc"},
		"faraway":  {"default": int64(9)},
	}

	t.Run("keyring indexes and network overrides", func(t *testing.T) {
		network := &config.Network{Name: "sepolia", ChainID: 11155111}
		p := NewProvider(runtimeConfig(network, named), NewKeyringFromKeys(mustKey(t, key0), mustKey(t, key1)), discard)

		got, err := p.GetNamedAccounts(ctx)
		require.NoError(t, err)

		assert.Equal(t, addr0, got["deployer"])
		assert.Equal(t, "0x90F79bf6EB2c4f870365E785982E1f101E93b906", got["owner"])
		assert.Equal(t, "0x15d34AAf54267DB7D7c367839AAf71A00a2C6A65", got["treasury"])
		assert.NotContains(t, got, "guardian")
		assert.Equal(t, "#9", got["faraway"])
		assert.Equal(t, []string{"deployer", "faraway", "guardian", "owner", "treasury"}, p.Roles())
	})

	t.Run("node accounts without keys", func(t *testing.T) {
		srv, calls := fakeNode(t, []string{addr0, addr1})
		network := &config.Network{Name: "localhost", ChainID: 31337, RPCURL: srv.URL}
		p := NewProvider(runtimeConfig(network, named), NewKeyringFromKeys(), discard)

		got, err := p.GetNamedAccounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, addr0, got["deployer"])
		assert.Equal(t, addr1, got["owner"])

		_, err = p.GetNamedAccounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("unreachable node", func(t *testing.T) {
		srv, _ := fakeNode(t, nil)
		srv.Close()
		network := &config.Network{Name: "localhost", RPCURL: srv.URL}
		p := NewProvider(runtimeConfig(network, named), NewKeyringFromKeys(), discard)

		_, err := p.GetNamedAccounts(ctx)
		assert.Error(t, err)
	})
}

func mustKey(t *testing.T, hex string) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(hex[len(hex)-64:])
	require.NoError(t, err)
	return key
}
