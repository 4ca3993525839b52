package usecase

import (
	"context"

	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Active   string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	ChainID uint64
	RPCURL  string
	Live    bool
	Error   error
}

// ListNetworks is a use case for listing configured networks
type ListNetworks struct {
	resolver NetworkResolver
	cfg      *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		cfg:      cfg,
	}
}

// Run executes the use case. Networks that fail to resolve are reported
// with their error instead of failing the listing.
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.resolver.Names()

	result := &ListNetworksResult{Networks: make([]NetworkStatus, 0, len(names))}
	if uc.cfg.Network != nil {
		result.Active = uc.cfg.Network.Name
	}

	for _, name := range names {
		status := NetworkStatus{Name: name}

		info, err := uc.resolver.Resolve(ctx, name)
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = info.ChainID
			status.RPCURL = info.RPCURL
			status.Live = info.Live
		}

		result.Networks = append(result.Networks, status)
	}

	return result, nil
}
