package config

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

// NetworkResolver resolves network names to configurations. Chain ids
// missing from the project file are fetched over RPC and cached on disk.
type NetworkResolver struct {
	projectRoot string
	project     *config.ProjectConfig
	cache       *NetworkCache
	mu          sync.RWMutex

	// dial is swapped in tests
	dial func(ctx context.Context, url string) (chainIDFetcher, error)
}

type chainIDFetcher interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	Networks  map[string]uint64 `json:"networks"` // name -> chainID
	RPCs      map[string]uint64 `json:"rpcs"`     // rpcURL -> chainID
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(projectRoot string, project *config.ProjectConfig) *NetworkResolver {
	r := &NetworkResolver{
		projectRoot: projectRoot,
		project:     project,
		dial: func(ctx context.Context, url string) (chainIDFetcher, error) {
			return ethclient.DialContext(ctx, url)
		},
	}
	r.loadCache()
	return r
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectRoot, cfg.Project)
}

// Names returns the configured network names, sorted.
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.project.Networks))
	for name := range r.project.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, name string) (*config.Network, error) {
	nc, ok := r.project.Networks[name]
	if !ok {
		return nil, fmt.Errorf("network %q not found in %s [networks]: %w", name, config.ProjectFileName, domain.ErrNotFound)
	}
	if nc.URL == "" {
		return nil, &domain.ConfigError{Field: "networks." + name + ".url", Reason: "empty rpc url"}
	}

	chainID := nc.ChainID
	if chainID == 0 {
		var err error
		chainID, err = r.chainID(ctx, name, nc.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", name, err)
		}
	}

	return &config.Network{
		Name:     name,
		RPCURL:   nc.URL,
		ChainID:  chainID,
		Accounts: nc.Accounts,
		Live:     nc.Live,
		Tags:     nc.Tags,
	}, nil
}

func (r *NetworkResolver) chainID(ctx context.Context, name, url string) (uint64, error) {
	r.mu.RLock()
	if id, ok := r.cache.Networks[name]; ok {
		r.mu.RUnlock()
		return id, nil
	}
	if id, ok := r.cache.RPCs[url]; ok {
		r.mu.RUnlock()
		return id, nil
	}
	r.mu.RUnlock()

	client, err := r.dial(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}
	if !id.IsUint64() || id.Sign() == 0 {
		return 0, domain.ErrInvalidChainID
	}

	r.updateCache(name, url, id.Uint64())
	return id.Uint64(), nil
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.projectRoot, "cache", "chainIds.json")
}

func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()
	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, r.cache); err != nil || r.cache.Networks == nil || r.cache.RPCs == nil {
		r.cache = newNetworkCache()
	}
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:  make(map[string]uint64),
		RPCs:      make(map[string]uint64),
		UpdatedAt: time.Now(),
	}
}

func (r *NetworkResolver) updateCache(name, url string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[name] = chainID
	r.cache.RPCs[url] = chainID
	r.cache.UpdatedAt = time.Now()

	// Cache is only a shortcut, failures to persist it are ignored
	_ = r.saveCache()
}

func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.cachePath(), data, 0644)
}
