package accounts

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// DefaultKey is the named_accounts entry used when neither the network
// name nor its chain id is listed.
const DefaultKey = "default"

// Provider resolves [named_accounts] for the active network. Integer
// values index the keyring, or the node's eth_accounts when no keys are
// configured. String values are used as they are.
type Provider struct {
	network *config.Network
	named   map[string]map[string]any
	keyring *Keyring
	log     *slog.Logger

	once     sync.Once
	accounts []common.Address
	err      error
}

// NewProvider creates a named account provider
func NewProvider(cfg *config.RuntimeConfig, keyring *Keyring, log *slog.Logger) *Provider {
	var named map[string]map[string]any
	if cfg.Project != nil {
		named = cfg.Project.NamedAccounts
	}
	return &Provider{
		network: cfg.Network,
		named:   named,
		keyring: keyring,
		log:     log,
	}
}

// Roles returns the configured role names, sorted
func (p *Provider) Roles() []string {
	roles := make([]string, 0, len(p.named))
	for role := range p.named {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// GetNamedAccounts resolves every role that has an entry for the network.
// Roles without one are left out.
func (p *Provider) GetNamedAccounts(ctx context.Context) (map[string]string, error) {
	if p.network == nil {
		return nil, fmt.Errorf("no active network")
	}

	out := make(map[string]string, len(p.named))
	for role, entries := range p.named {
		value, ok := p.entryFor(entries)
		if !ok {
			continue
		}
		resolved, err := p.resolve(ctx, role, value)
		if err != nil {
			return nil, err
		}
		out[role] = resolved
	}
	return out, nil
}

func (p *Provider) entryFor(entries map[string]any) (any, bool) {
	for _, key := range []string{p.network.Name, p.network.ChainIDString(), DefaultKey} {
		if v, ok := entries[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (p *Provider) resolve(ctx context.Context, role string, value any) (string, error) {
	var index int64
	switch v := value.(type) {
	case string:
		return v, nil
	case int64:
		index = v
	case int:
		index = int64(v)
	case float64:
		index = int64(v)
	default:
		return fmt.Sprint(v), nil
	}

	accounts, err := p.signerAccounts(ctx)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= int64(len(accounts)) {
		p.log.Debug("named account index out of range", "role", role, "index", index, "accounts", len(accounts))
		return "#" + strconv.FormatInt(index, 10), nil
	}
	return accounts[index].Hex(), nil
}

// signerAccounts returns the keyring addresses, or the node accounts when
// the keyring is empty. The node is asked once.
func (p *Provider) signerAccounts(ctx context.Context) ([]common.Address, error) {
	if p.keyring != nil && p.keyring.Len() > 0 {
		return p.keyring.Addresses(), nil
	}

	p.once.Do(func() {
		p.accounts, p.err = fetchAccounts(ctx, p.network.RPCURL)
	})
	return p.accounts, p.err
}

func fetchAccounts(ctx context.Context, url string) ([]common.Address, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer client.Close()

	var accounts []common.Address
	if err := client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return accounts, nil
}

// Ensure the provider implements the interface
var _ usecase.NamedAccountProvider = (*Provider)(nil)
