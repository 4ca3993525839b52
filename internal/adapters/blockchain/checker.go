package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// checkTimeout bounds a single on-chain lookup
const checkTimeout = 5 * time.Second

// CheckerAdapter implements the BlockchainChecker interface using ethclient
type CheckerAdapter struct {
	dial func(ctx context.Context, url string) (*ethclient.Client, error)
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{dial: ethclient.DialContext}
}

// CheckDeploymentExists checks if a contract exists at the given address
func (c *CheckerAdapter) CheckDeploymentExists(ctx context.Context, network *config.Network, address string) (bool, string, error) {
	if !common.IsHexAddress(address) {
		return false, "", fmt.Errorf("%q: %w", address, domain.ErrInvalidAddress)
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client, err := c.connect(ctx, network)
	if err != nil {
		return false, "", err
	}
	defer client.Close()

	code, err := client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}
	if len(code) == 0 {
		return false, "no code at address", nil
	}
	return true, "", nil
}

// connect dials network and verifies its chain id
func (c *CheckerAdapter) connect(ctx context.Context, network *config.Network) (*ethclient.Client, error) {
	client, err := c.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	id, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && id.Uint64() != network.ChainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d: %w", network.ChainID, id.Uint64(), domain.ErrNetworkMismatch)
	}
	return client, nil
}

// Ensure the adapter implements the interface
var _ usecase.BlockchainChecker = (*CheckerAdapter)(nil)
